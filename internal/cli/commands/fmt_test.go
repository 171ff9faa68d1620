package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapsh/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	uglyScript     = "if test -f x;then echo   hi;fi\n"
	formattedUgly  = "if test -f x; then\n  echo hi\nfi\n"
	formattedUgly4 = "if test -f x; then\n    echo hi\nfi\n"
)

func TestFmt_Stdout(t *testing.T) {
	res := execute(t, NewFmtCommand(), uglyScript)
	require.NoError(t, res.Err)
	assert.Equal(t, formattedUgly, res.Out)
}

func TestFmt_IndentFlag(t *testing.T) {
	res := execute(t, NewFmtCommand(), uglyScript, "--indent", "4")
	require.NoError(t, res.Err)
	assert.Equal(t, formattedUgly4, res.Out)
}

func TestFmt_IndentFromConfigFile(t *testing.T) {
	dir := testutil.SetupScriptDir(t, map[string]string{
		"leapsh.yaml": "format:\n  indent: 4\n",
	})

	res := executeIn(t, dir, NewFmtCommand(), uglyScript)
	require.NoError(t, res.Err)
	assert.Equal(t, formattedUgly4, res.Out)
}

func TestFmt_InvalidIndent(t *testing.T) {
	res := execute(t, NewFmtCommand(), uglyScript, "--indent", "0")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "format.indent")
}

func TestFmt_Write(t *testing.T) {
	dir := testutil.SetupScriptDir(t, map[string]string{
		"ugly.sh": uglyScript,
		"done.sh": formattedUgly,
	})
	ugly := filepath.Join(dir, "ugly.sh")
	require.NoError(t, os.Chmod(ugly, 0o755))

	res := execute(t, NewFmtCommand(), "", "-w", dir)
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "Formatted 1 of 2 file(s)")

	assert.Equal(t, formattedUgly, testutil.ReadFile(t, ugly))
	assert.Equal(t, formattedUgly, testutil.ReadFile(t, filepath.Join(dir, "done.sh")))

	info, err := os.Stat(ugly)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm(), "mode is preserved")
}

func TestFmt_Check(t *testing.T) {
	dir := testutil.SetupScriptDir(t, map[string]string{
		"ugly.sh": uglyScript,
		"done.sh": formattedUgly,
	})

	res := execute(t, NewFmtCommand(), "", "--check", dir)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "1 file(s) not formatted")
	assert.Contains(t, res.Out, "ugly.sh")
	assert.NotContains(t, res.Out, "done.sh")
	assert.Equal(t, uglyScript, testutil.ReadFile(t, filepath.Join(dir, "ugly.sh")), "check never writes")

	res = execute(t, NewFmtCommand(), "", "--check", filepath.Join(dir, "done.sh"))
	assert.NoError(t, res.Err)
}

func TestFmt_ParseError(t *testing.T) {
	res := execute(t, NewFmtCommand(), testutil.BrokenScript)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "<stdin>")
}
