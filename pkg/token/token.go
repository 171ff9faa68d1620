// Package token defines the token types for shell script scanning.
//
// Reserved words are WORD-shaped lexemes reclassified through a fixed table.
// The lookup is context free: "if" is always IF, even where a plain word
// was intended.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType reads clearly at call sites
type TokenType int32

//nolint:revive // ALL_CAPS names mirror the shell grammar terminals
const (
	// Special tokens
	EOF TokenType = iota
	NEWLINE
	COMMENT

	// Literals
	WORD          // ls, -la, ./bin/run
	VARIABLE      // $NAME or ${NAME}
	QUOTED_STRING // "a b" or 'a b'

	// Operators
	PIPE            // |
	OR              // ||
	AMPERSAND       // &
	AND             // &&
	REDIRECT_OUT    // >
	REDIRECT_APPEND // >>
	REDIRECT_IN     // <
	SEMICOLON       // ;
	LPAREN          // (
	RPAREN          // )
	LBRACE          // {
	RBRACE          // }

	// Keywords
	IF
	THEN
	ELSE
	FI
	FOR
	WHILE
	DO
	DONE
	FUNCTION
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// IsKeyword reports whether t is a reserved-word token type.
func (t TokenType) IsKeyword() bool {
	return t >= IF && t <= FUNCTION
}

// IsOperator reports whether t is a punctuation operator.
func (t TokenType) IsOperator() bool {
	return t >= PIPE && t <= RBRACE
}

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	NEWLINE: "NEWLINE",
	COMMENT: "COMMENT",

	WORD:          "WORD",
	VARIABLE:      "VARIABLE",
	QUOTED_STRING: "QUOTED_STRING",

	PIPE:            "|",
	OR:              "||",
	AMPERSAND:       "&",
	AND:             "&&",
	REDIRECT_OUT:    ">",
	REDIRECT_APPEND: ">>",
	REDIRECT_IN:     "<",
	SEMICOLON:       ";",
	LPAREN:          "(",
	RPAREN:          ")",
	LBRACE:          "{",
	RBRACE:          "}",

	IF:       "if",
	THEN:     "then",
	ELSE:     "else",
	FI:       "fi",
	FOR:      "for",
	WHILE:    "while",
	DO:       "do",
	DONE:     "done",
	FUNCTION: "function",
}

// keywords maps reserved words to their token types. Matching is exact and
// case sensitive.
var keywords = map[string]TokenType{
	"if":       IF,
	"then":     THEN,
	"else":     ELSE,
	"fi":       FI,
	"for":      FOR,
	"while":    WHILE,
	"do":       DO,
	"done":     DONE,
	"function": FUNCTION,
}

// LookupWord returns the keyword token type for word, or WORD if it is not
// a reserved word.
func LookupWord(word string) TokenType {
	if t, ok := keywords[word]; ok {
		return t
	}
	return WORD
}

// Keywords returns the reserved words in declaration order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for t := IF; t <= FUNCTION; t++ {
		out = append(out, tokenNames[t])
	}
	return out
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Is reports whether the token has type t.
func (t Token) Is(tt TokenType) bool {
	return t.Type == tt
}

// IsOneOf reports whether the token matches any of the given types.
func (t Token) IsOneOf(types ...TokenType) bool {
	for _, tt := range types {
		if t.Type == tt {
			return true
		}
	}
	return false
}

func (t Token) String() string {
	switch t.Type {
	case EOF, NEWLINE:
		return t.Type.String()
	case WORD, VARIABLE, QUOTED_STRING, COMMENT:
		return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
	default:
		return fmt.Sprintf("%q", t.Type.String())
	}
}
