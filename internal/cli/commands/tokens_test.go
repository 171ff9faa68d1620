package commands

import (
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/leapsh/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_JSON(t *testing.T) {
	res := execute(t, NewTokensCommand(), "ls | wc -l\n", "-o", "json")
	require.NoError(t, res.Err)

	var toks []TokenInfo
	require.NoError(t, json.Unmarshal([]byte(res.Out), &toks))

	types := make([]string, 0, len(toks))
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []string{"WORD", "|", "WORD", "WORD", "NEWLINE", "EOF"}, types)

	assert.Equal(t, TokenInfo{Type: "WORD", Literal: "wc", Line: 1, Column: 6, Offset: 5, End: 7}, toks[2])
}

func TestTokens_Table(t *testing.T) {
	path := testutil.WriteScript(t, "a.sh", "x=$(pwd)\n")

	res := execute(t, NewTokensCommand(), "", path)
	require.NoError(t, res.Err)

	for _, want := range []string{"TYPE", "LITERAL", "SPAN", "VARIABLE", `"x"`, `\n`, "EOF", "1:1", "0-1"} {
		assert.Contains(t, res.Out, want)
	}
	testutil.AssertNoANSI(t, res.Out)
}

func TestTokens_Warnings(t *testing.T) {
	res := execute(t, NewTokensCommand(), "echo ${name", "-o", "json")
	require.NoError(t, res.Err)
	assert.Contains(t, res.ErrOut, "unterminated variable")
}

func TestTokens_TooManyArgs(t *testing.T) {
	res := execute(t, NewTokensCommand(), "", "a.sh", "b.sh")
	assert.Error(t, res.Err)
}

func TestTokens_MissingFile(t *testing.T) {
	res := execute(t, NewTokensCommand(), "", "does-not-exist.sh")
	assert.Error(t, res.Err)
}
