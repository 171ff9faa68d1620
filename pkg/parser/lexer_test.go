package parser_test

import (
	"testing"

	"github.com/leapstack-labs/leapsh/pkg/parser"
	"github.com/leapstack-labs/leapsh/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tok struct {
	typ token.TokenType
	lit string
}

func lexed(input string) []tok {
	var out []tok
	for _, t := range parser.Tokenize(input) {
		out = append(out, tok{t.Type, t.Literal})
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tok
	}{
		{
			name:  "empty input",
			input: "",
			want:  []tok{{token.EOF, ""}},
		},
		{
			name:  "pipeline",
			input: "ls -la | grep foo",
			want: []tok{
				{token.WORD, "ls"}, {token.WORD, "-la"}, {token.PIPE, "|"},
				{token.WORD, "grep"}, {token.WORD, "foo"}, {token.EOF, ""},
			},
		},
		{
			name:  "two character operators",
			input: "a || b && c >> f",
			want: []tok{
				{token.WORD, "a"}, {token.OR, "||"}, {token.WORD, "b"}, {token.AND, "&&"},
				{token.WORD, "c"}, {token.REDIRECT_APPEND, ">>"}, {token.WORD, "f"}, {token.EOF, ""},
			},
		},
		{
			name:  "single character operators",
			input: "> < ; & ( ) { } |",
			want: []tok{
				{token.REDIRECT_OUT, ">"}, {token.REDIRECT_IN, "<"}, {token.SEMICOLON, ";"},
				{token.AMPERSAND, "&"}, {token.LPAREN, "("}, {token.RPAREN, ")"},
				{token.LBRACE, "{"}, {token.RBRACE, "}"}, {token.PIPE, "|"}, {token.EOF, ""},
			},
		},
		{
			name:  "comment excludes hash and newline",
			input: "# hello\nls",
			want: []tok{
				{token.COMMENT, " hello"}, {token.NEWLINE, "\n"}, {token.WORD, "ls"}, {token.EOF, ""},
			},
		},
		{
			name:  "quoted strings",
			input: `echo "a b" 'c\'d'`,
			want: []tok{
				{token.WORD, "echo"}, {token.QUOTED_STRING, "a b"}, {token.QUOTED_STRING, "c'd"}, {token.EOF, ""},
			},
		},
		{
			name:  "escape inside double quotes",
			input: `"say \"hi\""`,
			want:  []tok{{token.QUOTED_STRING, `say "hi"`}, {token.EOF, ""}},
		},
		{
			name:  "variables",
			input: "$HOME ${USER} $",
			want: []tok{
				{token.VARIABLE, "HOME"}, {token.VARIABLE, "USER"}, {token.VARIABLE, ""}, {token.EOF, ""},
			},
		},
		{
			name:  "command substitution opener",
			input: "$(date)",
			want: []tok{
				{token.VARIABLE, ""}, {token.LPAREN, "("}, {token.WORD, "date"}, {token.RPAREN, ")"}, {token.EOF, ""},
			},
		},
		{
			name:  "keywords",
			input: "if then else fi for while do done function",
			want: []tok{
				{token.IF, "if"}, {token.THEN, "then"}, {token.ELSE, "else"}, {token.FI, "fi"},
				{token.FOR, "for"}, {token.WHILE, "while"}, {token.DO, "do"}, {token.DONE, "done"},
				{token.FUNCTION, "function"}, {token.EOF, ""},
			},
		},
		{
			name:  "keyword match is exact",
			input: "iff Fi done_",
			want:  []tok{{token.WORD, "iff"}, {token.WORD, "Fi"}, {token.WORD, "done_"}, {token.EOF, ""}},
		},
		{
			name:  "fallback single character words",
			input: "name=john",
			want:  []tok{{token.WORD, "name"}, {token.WORD, "="}, {token.WORD, "john"}, {token.EOF, ""}},
		},
		{
			name:  "word characters",
			input: "./bin/run-all_1.sh",
			want:  []tok{{token.WORD, "./bin/run-all_1.sh"}, {token.EOF, ""}},
		},
		{
			name:  "non ascii word",
			input: "echo héllo",
			want:  []tok{{token.WORD, "echo"}, {token.WORD, "héllo"}, {token.EOF, ""}},
		},
		{
			name:  "tabs are whitespace",
			input: "a\tb",
			want:  []tok{{token.WORD, "a"}, {token.WORD, "b"}, {token.EOF, ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lexed(tt.input))
		})
	}
}

func TestTokenize_Positions(t *testing.T) {
	toks := parser.Tokenize("ls\n  cat")
	require.Len(t, toks, 4)

	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0, End: 2}, toks[0].Pos)
	assert.Equal(t, token.Position{Line: 1, Column: 3, Offset: 2, End: 3}, toks[1].Pos)
	assert.Equal(t, token.Position{Line: 2, Column: 3, Offset: 5, End: 8}, toks[2].Pos)
	assert.Equal(t, token.Position{Line: 2, Column: 6, Offset: 8, End: 8}, toks[3].Pos)
}

func TestTokenize_SpansCoverDelimiters(t *testing.T) {
	toks := parser.Tokenize(`"ab" ${x} >>`)
	require.Len(t, toks, 4)

	assert.Equal(t, 0, toks[0].Pos.Offset)
	assert.Equal(t, 4, toks[0].Pos.End, "quoted span includes both quotes")
	assert.Equal(t, 5, toks[1].Pos.Offset)
	assert.Equal(t, 9, toks[1].Pos.End, "braced variable span includes braces")
	assert.Equal(t, 2, toks[2].Pos.Len())
}

func TestTokenize_Unterminated(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		literal string
		warning string
	}{
		{"quote", `echo "abc`, "abc", "unterminated quoted string"},
		{"single quote", `echo 'abc`, "abc", "unterminated quoted string"},
		{"brace", "echo ${abc", "abc", "unterminated variable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lex := parser.NewLexer(tt.input)
			toks := lex.All()
			require.Len(t, toks, 3)
			assert.Equal(t, tt.literal, toks[1].Literal)
			assert.Equal(t, token.EOF, toks[2].Type)

			require.Len(t, lex.Warnings, 1)
			assert.Equal(t, tt.warning, lex.Warnings[0].Message)
			assert.Equal(t, 6, lex.Warnings[0].Pos.Column)
		})
	}
}

func TestTokenize_CollectsComments(t *testing.T) {
	lex := parser.NewLexer("# first\nls # second\n")
	lex.All()

	require.Len(t, lex.Comments, 2)
	assert.Equal(t, " first", lex.Comments[0].Text)
	assert.Equal(t, 1, lex.Comments[0].Line())
	assert.Equal(t, " second", lex.Comments[1].Text)
	assert.Equal(t, 2, lex.Comments[1].Line())
	assert.Equal(t, 4, lex.Comments[1].Pos.Column)
}

func TestTokenize_Idempotent(t *testing.T) {
	input := "for x in $list\ndo\n  echo \"$x\" | wc -l # count\ndone"
	assert.Equal(t, parser.Tokenize(input), parser.Tokenize(input))
}

func TestTokenize_AlwaysTerminates(t *testing.T) {
	inputs := []string{
		"\x00\r\xff",
		"$$$$",
		"${",
		`"\`,
		"&&&|||>>>",
		"#",
	}
	for _, input := range inputs {
		toks := parser.Tokenize(input)
		require.NotEmpty(t, toks)
		assert.Equal(t, token.EOF, toks[len(toks)-1].Type, "input %q", input)
		assert.LessOrEqual(t, len(toks), len(input)+1, "input %q", input)
	}
}
