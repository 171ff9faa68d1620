// Package parser provides scanning and parsing of a small shell subset.
//
// # Usage
//
//	prog, err := parser.Parse("for f in $files\ndo\n  wc -l $f\ndone")
//	if err != nil {
//	    var perr *parser.ParseError
//	    errors.As(err, &perr) // perr.Pos locates the failure
//	}
//
// # Grammar Overview
//
//	program     → { statement [";" | NEWLINE] }
//	statement   → conditional | loop | function | assignment | pipeline
//	conditional → "if" condition [sep] "then" block ["else" block] "fi"
//	loop        → "for" WORD "in" expr [sep] "do" block "done"
//	            | "while" condition [sep] "do" block "done"
//	function    → "function" WORD "(" ")" "{" block "}"
//	assignment  → WORD "=" expr
//	pipeline    → command { "|" command }
//	command     → WORD { WORD | QUOTED_STRING | VARIABLE | substitution }
//	condition   → command | expr
//	expr        → WORD | QUOTED_STRING | VARIABLE | substitution
//	substitution→ "$(" block ")"
//
// The top level is lenient: tokens that cannot start a statement are
// skipped. Blocks are strict and fail on the first unexpected token.
package parser

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/token"
)

// Parser parses shell script source into a core.Program.
// A Parser is single use and not safe for concurrent use.
type Parser struct {
	src    string
	tokens []token.Token // always ends with EOF
	pos    int           // index of the current token
	prev   token.Token   // last consumed token

	comments []*token.Comment
	warnings []core.Warning

	depth    int
	maxDepth int
	logger   *slog.Logger
}

// NewParser tokenizes source and returns a parser positioned on the first
// token.
func NewParser(source string, opts ...Option) *Parser {
	lex := NewLexer(source)
	p := &Parser{
		src:      source,
		tokens:   lex.All(),
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.DiscardHandler),
	}
	p.comments = lex.Comments
	p.warnings = lex.Warnings
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses source and returns the program.
func Parse(source string) (*core.Program, error) {
	return NewParser(source).Parse()
}

// ParseWithOptions parses source with the given options.
func ParseWithOptions(source string, opts ...Option) (*core.Program, error) {
	return NewParser(source, opts...).Parse()
}

// Parse runs the parser over its whole token stream.
func (p *Parser) Parse() (prog *core.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			prog = nil
			perr := &ParseError{Message: fmt.Sprintf(ErrInternal, r), Cause: cause}
			if len(p.tokens) > 0 {
				pos := p.cur().Pos
				perr.Pos = &pos
			}
			err = perr
		}
	}()

	prog, err = p.parseProgram()
	if err != nil {
		return nil, err
	}
	prog.Comments = p.comments
	prog.Warnings = p.warnings
	return prog, nil
}

// ---------- Token Helpers ----------

// cur returns the current token. Past the end it keeps returning EOF.
func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

// peek returns the token after the current one.
func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

// advance consumes the current token and returns it. EOF is never consumed.
func (p *Parser) advance() token.Token {
	tok := p.cur()
	if tok.Type != token.EOF {
		p.prev = tok
		p.pos++
	}
	return tok
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.cur().Type == t
}

// checkAny returns true if the current token is any of the given types.
func (p *Parser) checkAny(types ...token.TokenType) bool {
	return p.cur().IsOneOf(types...)
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

// matchAny consumes the current token if it matches any of the given types.
func (p *Parser) matchAny(types ...token.TokenType) bool {
	if p.checkAny(types...) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of type t or fails with "Expected <what>".
func (p *Parser) expect(t token.TokenType, what string) (token.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorf(ErrExpected, what)
}

// expectWord consumes a WORD whose literal is exactly text.
func (p *Parser) expectWord(text string) error {
	if tok := p.cur(); tok.Type == token.WORD && tok.Literal == text {
		p.advance()
		return nil
	}
	return p.errorf(ErrExpected, "'"+text+"'")
}

// errorf builds a ParseError located at the current token.
func (p *Parser) errorf(format string, args ...any) error {
	pos := p.cur().Pos
	return &ParseError{Message: fmt.Sprintf(format, args...), Pos: &pos}
}

// span returns node info covering start through the last consumed token.
func (p *Parser) span(start token.Position) core.NodeInfo {
	return core.NodeInfo{Span: start.Through(p.prev.Pos)}
}

// skipSeparators skips newlines, semicolons and comments.
func (p *Parser) skipSeparators() {
	for p.matchAny(token.NEWLINE, token.SEMICOLON, token.COMMENT) {
	}
}

// skipNewlines skips newlines only.
func (p *Parser) skipNewlines() {
	for p.match(token.NEWLINE) {
	}
}

// enter and leave bound the nesting depth of blocks.
func (p *Parser) enter() error {
	if p.depth >= p.maxDepth {
		return p.errorf(ErrTooDeep, p.maxDepth)
	}
	p.depth++
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// ---------- Statement Drivers ----------

// parseProgram is the lenient top-level driver. A token that starts no
// statement is dropped so the loop always makes progress.
func (p *Parser) parseProgram() (*core.Program, error) {
	prog := &core.Program{
		NodeInfo: core.NodeInfo{Span: token.Position{Line: 1, Column: 1, Offset: 0, End: len(p.src)}},
		Body:     []core.Stmt{},
	}

	for !p.check(token.EOF) {
		if p.match(token.NEWLINE) {
			continue
		}

		before := p.pos
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			prog.Body = append(prog.Body, stmt)
			p.matchAny(token.SEMICOLON, token.NEWLINE)
			continue
		}

		if p.pos == before {
			tok := p.advance()
			p.logger.Debug("skipping token", "token", tok.String(), "pos", tok.Pos.String())
		}
	}

	return prog, nil
}

// parseBlock is the strict driver for nested bodies. It stops in front of
// any of the terminators and fails with "Expected <want>" at EOF.
func (p *Parser) parseBlock(want string, terms ...token.TokenType) ([]core.Stmt, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	stmts := []core.Stmt{}
	for {
		switch {
		case p.checkAny(terms...):
			return stmts, nil
		case p.check(token.EOF):
			return nil, p.errorf(ErrExpected, want)
		case p.matchAny(token.NEWLINE, token.SEMICOLON, token.COMMENT):
			continue
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt == nil {
			return nil, p.errorf(ErrUnexpectedToken, p.cur())
		}
		stmts = append(stmts, stmt)
	}
}

// parseStatement dispatches on the current token. It returns a nil
// statement for comments, EOF and tokens that cannot start a statement.
func (p *Parser) parseStatement() (core.Stmt, error) {
	switch p.cur().Type {
	case token.COMMENT:
		p.advance()
		return nil, nil
	case token.EOF:
		return nil, nil
	case token.IF:
		return p.parseConditional()
	case token.FOR, token.WHILE:
		return p.parseLoop()
	case token.FUNCTION:
		return p.parseFunction()
	case token.WORD:
		if next := p.peek(); next.Type == token.WORD && next.Literal == "=" {
			return p.parseAssignment()
		}
		return p.parsePipeline()
	}
	return nil, nil
}
