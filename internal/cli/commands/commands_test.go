package commands

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapsh/internal/cli/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// result captures one command execution.
type result struct {
	Out    string
	ErrOut string
	Err    error
}

// execute runs cmd from an empty working directory.
func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) result {
	t.Helper()
	return executeIn(t, t.TempDir(), cmd, stdin, args...)
}

// executeIn runs cmd in dir under a minimal root carrying the global flags,
// with stdin as standard input and a fresh configuration.
func executeIn(t *testing.T, dir string, cmd *cobra.Command, stdin string, args ...string) result {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	t.Chdir(dir)

	root := &cobra.Command{Use: "leapsh", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().StringP("output", "o", config.DefaultOutput, "")
	root.PersistentFlags().BoolP("verbose", "v", false, "")
	root.AddCommand(cmd)

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{cmd.Name()}, args...))

	err := root.Execute()
	return result{Out: out.String(), ErrOut: errOut.String(), Err: err}
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewParseCommand(), "parse [file|dir|-]...", []string{"max-depth"}},
		{NewTokensCommand(), "tokens [file|-]", nil},
		{NewFmtCommand(), "fmt [file|dir|-]...", []string{"write", "check", "indent"}},
		{NewLintCommand(), "lint [file|dir|-]...", []string{"disable", "severity", "watch", "debounce"}},
		{NewRulesCommand(), "rules [rule-id]", []string{"group", "long"}},
		{NewReplCommand(), "repl", []string{"history"}},
		{NewLSPCommand(), "lsp", nil},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			assert.NotEmpty(t, tt.cmd.Long, "Long should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestLSPCommand_ShutdownExit(t *testing.T) {
	frame := func(body string) string {
		return "Content-Length: " + strconv.Itoa(len(body)) + "\r\n\r\n" + body
	}
	in := frame(`{"jsonrpc":"2.0","id":1,"method":"shutdown"}`) + frame(`{"jsonrpc":"2.0","method":"exit"}`)

	res := execute(t, NewLSPCommand(), in)
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "Content-Length:")
	assert.Contains(t, res.Out, `"id":1`)
}
