package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/token"
)

// Lexer tokenizes shell script input.
//
// The lexer walks the input byte by byte with one byte of lookahead. Every
// call to NextToken consumes at least one byte until EOF, so scanning is
// bounded by the input length.
type Lexer struct {
	input string
	pos   int  // offset of ch in input; len(input) at EOF
	ch    byte // current char under examination, 0 at EOF
	line  int  // line of ch (1-based)
	col   int  // column of ch (1-based)

	// Comments collected during lexing (for the formatter)
	Comments []*token.Comment

	// Warnings records lenient recoveries such as unterminated quotes.
	Warnings []core.Warning
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   1,
	}
	if len(input) > 0 {
		l.ch = input[0]
	}
	return l
}

// atEOF reports whether the cursor has consumed the whole input.
// NUL bytes inside the input are not treated as EOF.
func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.atEOF() {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
	if l.atEOF() {
		l.ch = 0
		return
	}
	l.ch = l.input[l.pos]
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

// currentPos returns the position of the current character as a zero-width
// span.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
		End:    l.pos,
	}
}

// finish closes a token that started at start: its span ends at the cursor.
func (l *Lexer) finish(t token.TokenType, literal string, start token.Position) token.Token {
	start.End = l.pos
	return token.Token{Type: t, Literal: literal, Pos: start}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	start := l.currentPos()
	if l.atEOF() {
		return l.finish(token.EOF, "", start)
	}

	switch l.ch {
	case '#':
		text := l.readComment()
		return l.finish(token.COMMENT, text, start)
	case '\n':
		l.readChar()
		return l.finish(token.NEWLINE, "\n", start)
	case '|':
		return l.readOperator(start, '|', token.PIPE, token.OR)
	case '&':
		return l.readOperator(start, '&', token.AMPERSAND, token.AND)
	case '>':
		return l.readOperator(start, '>', token.REDIRECT_OUT, token.REDIRECT_APPEND)
	case '<':
		return l.single(start, token.REDIRECT_IN)
	case ';':
		return l.single(start, token.SEMICOLON)
	case '(':
		return l.single(start, token.LPAREN)
	case ')':
		return l.single(start, token.RPAREN)
	case '{':
		return l.single(start, token.LBRACE)
	case '}':
		return l.single(start, token.RBRACE)
	case '"', '\'':
		text := l.readQuoted(start)
		return l.finish(token.QUOTED_STRING, text, start)
	case '$':
		name := l.readVariable(start)
		return l.finish(token.VARIABLE, name, start)
	}

	if isWordChar(l.ch) {
		word := l.readWord()
		return l.finish(token.LookupWord(word), word, start)
	}

	// Any other byte becomes a one-character word so the scanner always
	// makes progress.
	ch := l.ch
	l.readChar()
	return l.finish(token.WORD, string(ch), start)
}

// single consumes one operator character.
func (l *Lexer) single(start token.Position, t token.TokenType) token.Token {
	l.readChar()
	return l.finish(t, t.String(), start)
}

// readOperator consumes an operator that doubles into a two-character form
// when the next character repeats it: | ||, & &&, > >>.
func (l *Lexer) readOperator(start token.Position, ch byte, one, two token.TokenType) token.Token {
	if l.peekChar() == ch {
		l.readChar()
		l.readChar()
		return l.finish(two, two.String(), start)
	}
	return l.single(start, one)
}

// skipWhitespace skips spaces and tabs. Newlines are significant.
func (l *Lexer) skipWhitespace() {
	for !l.atEOF() && (l.ch == ' ' || l.ch == '\t') {
		l.readChar()
	}
}

// readComment reads a "#" comment up to, but not including, the line break.
func (l *Lexer) readComment() string {
	start := l.currentPos()
	l.readChar() // skip '#'
	textStart := l.pos
	for !l.atEOF() && l.ch != '\n' {
		l.readChar()
	}
	text := l.input[textStart:l.pos]

	start.End = l.pos
	l.Comments = append(l.Comments, &token.Comment{Text: text, Pos: start})
	return text
}

// readQuoted reads a single- or double-quoted string.
// Both quote styles treat '\' as an escape that passes the next character
// through literally. An unterminated string runs to end of input.
func (l *Lexer) readQuoted(start token.Position) string {
	quote := l.ch
	l.readChar() // skip opening quote

	var result strings.Builder
	for !l.atEOF() && l.ch != quote {
		if l.ch == '\\' {
			l.readChar() // skip escape
			if l.atEOF() {
				break
			}
		}
		result.WriteByte(l.ch)
		l.readChar()
	}

	if l.atEOF() {
		l.warn(start, "unterminated quoted string")
	} else {
		l.readChar() // skip closing quote
	}
	return result.String()
}

// readVariable reads $NAME or ${NAME} and returns NAME.
func (l *Lexer) readVariable(start token.Position) string {
	l.readChar() // skip '$'

	if l.ch == '{' && !l.atEOF() {
		l.readChar() // skip '{'
		nameStart := l.pos
		for !l.atEOF() && l.ch != '}' {
			l.readChar()
		}
		name := l.input[nameStart:l.pos]
		if l.atEOF() {
			l.warn(start, "unterminated variable")
		} else {
			l.readChar() // skip '}'
		}
		return name
	}

	return l.readWord()
}

// readWord reads a run of word characters.
func (l *Lexer) readWord() string {
	start := l.pos
	for !l.atEOF() && isWordChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) warn(start token.Position, msg string) {
	start.End = l.pos
	l.Warnings = append(l.Warnings, core.Warning{Message: msg, Pos: start})
}

// isWordChar returns true if ch can appear in an unquoted word: letters,
// digits, '_', '.', '/', '-'. Bytes of multi-byte UTF-8 sequences count as
// letters so non-ASCII words stay in one token.
func isWordChar(ch byte) bool {
	return ch >= utf8.RuneSelf ||
		(ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '_' || ch == '.' || ch == '/' || ch == '-'
}

// All returns every remaining token, ending with EOF.
func (l *Lexer) All() []token.Token {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

// Tokenize returns all tokens from the input. The last token is always EOF.
func Tokenize(input string) []token.Token {
	return NewLexer(input).All()
}
