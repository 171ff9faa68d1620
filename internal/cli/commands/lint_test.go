package commands

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leapsh/internal/cli/testutil"
	"github.com/leapstack-labs/leapsh/internal/workspace"
	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lintJSON(t *testing.T, res result) LintReport {
	t.Helper()
	var report LintReport
	require.NoError(t, json.Unmarshal([]byte(res.Out), &report), "output: %s", res.Out)
	return report
}

func ruleIDs(report LintReport) []string {
	var ids []string
	for _, f := range report.Files {
		for _, d := range f.Diagnostics {
			ids = append(ids, d.RuleID)
		}
	}
	return ids
}

func TestLint_Clean(t *testing.T) {
	dir := testutil.SetupScriptDir(t, map[string]string{"deploy.sh": testutil.CleanScript})

	res := executeIn(t, dir, NewLintCommand(), "")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Out, "No lint issues found in 1 file(s)")
	testutil.AssertNoANSI(t, res.Out)
}

func TestLint_ReportsIssues(t *testing.T) {
	path := testutil.WriteScript(t, "messy.sh", testutil.MessyScript)

	res := execute(t, NewLintCommand(), "", path)
	require.ErrorIs(t, res.Err, ErrLintIssues)

	assert.Contains(t, res.Out, "messy.sh")
	assert.Contains(t, res.Out, "SH002")
	assert.Contains(t, res.Out, "Summary:")
	assert.Contains(t, res.Out, "1 errors")
}

func TestLint_JSON(t *testing.T) {
	dir := testutil.SetupScriptDir(t, map[string]string{
		"b_messy.sh":  testutil.MessyScript,
		"a_broken.sh": testutil.BrokenScript,
		"clean.sh":    testutil.CleanScript,
	})

	res := execute(t, NewLintCommand(), "", "-o", "json", dir)
	require.ErrorIs(t, res.Err, ErrLintIssues)

	report := lintJSON(t, res)
	assert.Equal(t, 3, report.Summary.FilesAnalyzed)
	require.Len(t, report.Files, 2, "clean files are omitted")
	assert.Equal(t, "a_broken.sh", filepath.Base(report.Files[0].Path), "files are sorted by path")
	assert.Equal(t, "b_messy.sh", filepath.Base(report.Files[1].Path))

	broken := report.Files[0].Diagnostics
	require.Len(t, broken, 1)
	assert.Equal(t, workspace.SyntaxRuleID, broken[0].RuleID)
	assert.Equal(t, core.SeverityError, broken[0].Severity)
	assert.Equal(t, "Expected 'fi'", broken[0].Message)
	assert.Equal(t, 2, broken[0].Pos.Line)

	ids := ruleIDs(report)
	for _, want := range []string{"SH001", "SH002", "SH004", "SH005"} {
		assert.Contains(t, ids, want)
	}
	assert.Equal(t, len(ids), report.Summary.TotalIssues)
	assert.Equal(t, report.Summary.TotalIssues,
		report.Summary.Errors+report.Summary.Warnings+report.Summary.Info+report.Summary.Hints)
}

func TestLint_SeverityAndDisableFlags(t *testing.T) {
	path := testutil.WriteScript(t, "messy.sh", testutil.MessyScript)

	res := execute(t, NewLintCommand(), "", "-o", "json", "--severity", "error", path)
	require.ErrorIs(t, res.Err, ErrLintIssues)
	assert.Equal(t, []string{"SH002"}, ruleIDs(lintJSON(t, res)))

	res = execute(t, NewLintCommand(), "", "-o", "json", "--severity", "error", "--disable", "sh002", path)
	require.NoError(t, res.Err)
	report := lintJSON(t, res)
	assert.Empty(t, report.Files)
	assert.Zero(t, report.Summary.TotalIssues)
}

func TestLint_ConfigFile(t *testing.T) {
	dir := testutil.SetupScriptDir(t, map[string]string{
		"leapsh.yaml": "lint:\n  disable: [SH001, SH004, SH005]\n  severity:\n    SH002: warning\n",
		"messy.sh":    testutil.MessyScript,
	})

	res := executeIn(t, dir, NewLintCommand(), "", "-o", "json")
	require.ErrorIs(t, res.Err, ErrLintIssues)

	report := lintJSON(t, res)
	require.Equal(t, []string{"SH002"}, ruleIDs(report))
	assert.Equal(t, core.SeverityWarning, report.Files[0].Diagnostics[0].Severity)
}

func TestLint_ScanWarnings(t *testing.T) {
	res := execute(t, NewLintCommand(), "echo \"open\n", "-o", "json", "-")
	require.ErrorIs(t, res.Err, ErrLintIssues)

	report := lintJSON(t, res)
	require.Len(t, report.Files, 1)
	assert.Equal(t, "<stdin>", report.Files[0].Path)
	assert.Equal(t, []string{workspace.ScanRuleID}, ruleIDs(report))

	res = execute(t, NewLintCommand(), "echo \"open\n", "--disable", "scan", "-")
	assert.NoError(t, res.Err)
}

func TestLint_SyntaxFindingFollowsConfig(t *testing.T) {
	broken := "if a; then echo \"open\n"

	res := execute(t, NewLintCommand(), broken, "-o", "json", "-")
	require.ErrorIs(t, res.Err, ErrLintIssues)
	assert.Equal(t, []string{workspace.SyntaxRuleID, workspace.ScanRuleID}, ruleIDs(lintJSON(t, res)))

	res = execute(t, NewLintCommand(), broken, "-o", "json", "--disable", "Syntax", "-")
	require.ErrorIs(t, res.Err, ErrLintIssues)
	assert.Equal(t, []string{workspace.ScanRuleID}, ruleIDs(lintJSON(t, res)))

	res = execute(t, NewLintCommand(), broken, "--disable", "syntax", "--disable", "scan", "-")
	assert.NoError(t, res.Err)
}

func TestLint_WatchRejectsStdin(t *testing.T) {
	res := execute(t, NewLintCommand(), "", "--watch", "-")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "stdin")
}

func TestBuildLintReport(t *testing.T) {
	results := []workspace.Result{
		workspace.ParseFile(workspace.File{Path: "z.sh", Source: "function f() { echo a; }\nfunction f() { echo b; }\n"}),
		workspace.ParseFile(workspace.File{Path: "a.sh", Source: "if a; then\n"}),
		workspace.ParseFile(workspace.File{Path: "m.sh", Source: "echo ok\n"}),
	}

	report := buildLintReport(results, lint.NewAnalyzer(nil), lint.NewConfig())

	assert.Equal(t, 3, report.Summary.FilesAnalyzed)
	require.Len(t, report.Files, 2)
	assert.Equal(t, "a.sh", report.Files[0].Path)
	assert.Equal(t, "z.sh", report.Files[1].Path)
	assert.Equal(t, 2, report.Summary.Errors)
}

func TestRenderLintReport_Text(t *testing.T) {
	tr := testutil.NewTestRendererText()
	report := &LintReport{
		Files: []LintFileResult{{
			Path: "a.sh",
			Diagnostics: []lint.Diagnostic{
				{RuleID: "SH005", Severity: core.SeverityHint, Message: "Variable x is never used"},
			},
		}},
		Summary: LintSummary{FilesAnalyzed: 4, TotalIssues: 1, Hints: 1},
	}

	require.NoError(t, renderLintReport(tr.Renderer, report))
	out := tr.Output()
	assert.Contains(t, out, "a.sh\n")
	assert.Contains(t, out, "SH005")
	assert.Contains(t, out, "Variable x is never used")
	assert.Contains(t, out, "  -  ", "diagnostics without a position show a dash")
	assert.Contains(t, out, "Summary: 1 issues, 1 hints in 4 files")
	assert.Empty(t, tr.ErrorOutput())
}
