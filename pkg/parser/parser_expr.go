package parser

import (
	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/token"
)

// parsePipeline parses:
//
//	command { "|" [newlines] command }
//
// A single command is returned as *core.Command, never as a one-element
// *core.Pipeline.
func (p *Parser) parsePipeline() (core.Stmt, error) {
	start := p.cur().Pos

	first, err := p.parseCommand()
	if err != nil {
		return nil, err
	}
	if !p.check(token.PIPE) {
		return first, nil
	}

	cmds := []*core.Command{first}
	for p.match(token.PIPE) {
		p.skipNewlines()
		cmd, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}

	return &core.Pipeline{NodeInfo: p.span(start), Commands: cmds}, nil
}

// parseCommand parses a command name followed by a greedy run of arguments.
// Args keeps the raw text of each argument and Words its typed form.
func (p *Parser) parseCommand() (*core.Command, error) {
	name, err := p.expect(token.WORD, "command name")
	if err != nil {
		return nil, err
	}

	cmd := &core.Command{Name: name.Literal}
	for p.checkAny(token.WORD, token.QUOTED_STRING, token.VARIABLE) {
		start := p.cur().Pos
		word, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		cmd.Args = append(cmd.Args, p.argText(word, start))
		cmd.Words = append(cmd.Words, word)
	}

	cmd.NodeInfo = p.span(name.Pos)
	return cmd, nil
}

// argText renders an argument the way a command sees it before expansion.
func (p *Parser) argText(word core.Expr, start token.Position) string {
	switch w := word.(type) {
	case *core.Literal:
		return w.Value
	case *core.Variable:
		if w.Braced {
			return "${" + w.Name + "}"
		}
		return "$" + w.Name
	default:
		return p.src[start.Offset:p.prev.Pos.End]
	}
}

// parseCondition parses the condition of an if or while. A word followed
// directly by an argument or a pipe is a command; anything else is a single
// expression.
func (p *Parser) parseCondition() (core.Expr, error) {
	if p.check(token.WORD) && p.peek().IsOneOf(token.WORD, token.QUOTED_STRING, token.VARIABLE, token.PIPE) {
		start := p.cur().Pos
		cmd, err := p.parsePipeline()
		if err != nil {
			return nil, err
		}
		return &core.CommandExpr{NodeInfo: p.span(start), Cmd: cmd}, nil
	}
	return p.parseExpression()
}

// parseExpression parses a literal, a variable or a command substitution.
func (p *Parser) parseExpression() (core.Expr, error) {
	tok := p.cur()
	switch tok.Type {
	case token.WORD:
		p.advance()
		return &core.Literal{NodeInfo: p.span(tok.Pos), Value: tok.Literal}, nil
	case token.QUOTED_STRING:
		p.advance()
		return &core.Literal{NodeInfo: p.span(tok.Pos), Value: tok.Literal, Quoted: true}, nil
	case token.VARIABLE:
		if p.atSubstitution() {
			return p.parseSubstitution()
		}
		p.advance()
		return &core.Variable{NodeInfo: p.span(tok.Pos), Name: tok.Literal, Braced: isBraced(tok)}, nil
	}
	return nil, p.errorf(ErrExpected, "expression")
}

// atSubstitution reports whether the cursor sits on "$(": a bare "$" with an
// adjacent "(".
func (p *Parser) atSubstitution() bool {
	tok, next := p.cur(), p.peek()
	return tok.Type == token.VARIABLE && tok.Literal == "" && tok.Pos.Len() == 1 &&
		next.Type == token.LPAREN && next.Pos.Offset == tok.Pos.End
}

// parseSubstitution parses:
//
//	"$(" block ")"
func (p *Parser) parseSubstitution() (core.Expr, error) {
	start := p.advance().Pos // $
	p.advance()              // (

	body, err := p.parseBlock("')'", token.RPAREN)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}

	return &core.CommandSubstitution{NodeInfo: p.span(start), Body: body}, nil
}

// isBraced reports whether a VARIABLE token was written as ${NAME}. The
// braced form spans more source bytes than "$" plus the name.
func isBraced(tok token.Token) bool {
	return tok.Pos.Len() > len(tok.Literal)+1
}
