package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapsh/internal/cli/output"
	"github.com/leapstack-labs/leapsh/internal/workspace"
	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/lint"
	_ "github.com/leapstack-labs/leapsh/pkg/lint/rules" // register rules
	"github.com/spf13/cobra"
)

// ErrLintIssues is returned when lint reports at least one diagnostic.
var ErrLintIssues = errors.New("lint issues found")

// LintOptions holds options for the lint command.
type LintOptions struct {
	Watch bool
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [file|dir|-]...",
		Short: "Run lint rules on scripts",
		Long: `Analyze scripts for likely mistakes.

Every script is parsed and checked against the registered rules. Syntax
errors and scanner warnings (such as an unterminated quote) are reported
alongside rule findings. Rules can be configured in leapsh.yaml.

The command fails when any finding at or above the minimum severity is
reported.`,
		Example: `  # Lint the current directory
  leapsh lint

  # Output as JSON
  leapsh lint -o json scripts/

  # Disable specific rules
  leapsh lint --disable SH004,SH005

  # Only report errors
  leapsh lint --severity error

  # Re-lint whenever a script changes
  leapsh lint --watch .`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	cmd.Flags().StringSlice("disable", nil, "Rule IDs to disable")
	cmd.Flags().String("severity", "", "Minimum severity: error, warning, info, hint")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-run when scripts change")
	cmd.Flags().Duration("debounce", 0, "Quiet period before re-running in watch mode")

	_ = cmd.RegisterFlagCompletionFunc("severity", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"error", "warning", "info", "hint"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("disable", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		ids := make([]string, 0, lint.Count())
		for _, rule := range lint.GetAll() {
			ids = append(ids, rule.ID+"\t"+rule.Name)
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	lintCfg, err := cmdCtx.Cfg.Lint.ToLint()
	if err != nil {
		return err
	}
	analyzer := lint.NewAnalyzer(lintCfg)

	if len(args) == 0 {
		args = []string{"."}
	}

	if opts.Watch {
		if slices.Contains(args, workspace.Stdin) {
			return fmt.Errorf("--watch cannot read from stdin")
		}
		return watchLint(cmd.Context(), cmdCtx, analyzer, lintCfg, args)
	}

	report, err := lintArgs(cmd.Context(), cmdCtx, analyzer, lintCfg, args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if err := renderLintReport(cmdCtx.Renderer, report); err != nil {
		return err
	}
	if report.Summary.TotalIssues > 0 {
		return ErrLintIssues
	}
	return nil
}

// LintFileResult holds lint results for a single file.
type LintFileResult struct {
	Path        string            `json:"path" yaml:"path"`
	Diagnostics []lint.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

// LintSummary counts findings by severity.
type LintSummary struct {
	FilesAnalyzed int `json:"files_analyzed" yaml:"files_analyzed"`
	TotalIssues   int `json:"total_issues" yaml:"total_issues"`
	Errors        int `json:"errors" yaml:"errors"`
	Warnings      int `json:"warnings" yaml:"warnings"`
	Info          int `json:"info" yaml:"info"`
	Hints         int `json:"hints" yaml:"hints"`
}

// LintReport is the structured output of a lint run.
type LintReport struct {
	Files   []LintFileResult `json:"files" yaml:"files"`
	Summary LintSummary      `json:"summary" yaml:"summary"`
}

func lintArgs(ctx context.Context, cmdCtx *CommandContext, analyzer *lint.Analyzer, lintCfg *lint.Config, args []string, stdin io.Reader) (*LintReport, error) {
	results, err := cmdCtx.parseArgs(ctx, args, stdin, 0)
	if err != nil {
		return nil, err
	}
	return buildLintReport(results, analyzer, lintCfg), nil
}

// buildLintReport runs the analyzer over parse results. Syntax errors and
// scanner warnings become diagnostics under pseudo rule IDs.
func buildLintReport(results []workspace.Result, analyzer *lint.Analyzer, lintCfg *lint.Config) *LintReport {
	report := &LintReport{Files: []LintFileResult{}}
	report.Summary.FilesAnalyzed = len(results)

	for _, res := range results {
		diags := workspace.Diagnostics(res, analyzer, lintCfg)
		if len(diags) == 0 {
			continue
		}
		report.Files = append(report.Files, LintFileResult{Path: res.Name(), Diagnostics: diags})
		for _, d := range diags {
			report.Summary.TotalIssues++
			switch d.Severity {
			case core.SeverityError:
				report.Summary.Errors++
			case core.SeverityWarning:
				report.Summary.Warnings++
			case core.SeverityInfo:
				report.Summary.Info++
			case core.SeverityHint:
				report.Summary.Hints++
			}
		}
	}

	slices.SortFunc(report.Files, func(a, b LintFileResult) int {
		return strings.Compare(a.Path, b.Path)
	})
	return report
}

func renderLintReport(r *output.Renderer, report *LintReport) error {
	if ok, err := r.Structured(report); ok {
		return err
	}

	if report.Summary.TotalIssues == 0 {
		r.Success(fmt.Sprintf("No lint issues found in %d file(s)", report.Summary.FilesAnalyzed))
		return nil
	}

	styles := r.Styles()
	for _, res := range report.Files {
		r.Println(styles.Path.Render(res.Path))
		for _, d := range res.Diagnostics {
			loc := "-"
			if d.Pos.Line > 0 {
				loc = d.Pos.String()
			}
			r.Printf("  %s  %s  %s  %s\n",
				styles.Muted.Render(fmt.Sprintf("%-6s", loc)),
				styles.Severity(d.Severity).Render(fmt.Sprintf("%-7s", d.Severity)),
				styles.Bold.Render(d.RuleID),
				d.Message,
			)
		}
		r.Println("")
	}

	s := report.Summary
	summaryParts := []string{fmt.Sprintf("%d issues", s.TotalIssues)}
	if s.Errors > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d errors", s.Errors))
	}
	if s.Warnings > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d warnings", s.Warnings))
	}
	if s.Info > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d info", s.Info))
	}
	if s.Hints > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d hints", s.Hints))
	}
	r.Printf("Summary: %s in %d files\n", strings.Join(summaryParts, ", "), s.FilesAnalyzed)
	return nil
}

// watchLint lints args once, then again for every batch of changed files
// until the context is cancelled.
func watchLint(ctx context.Context, cmdCtx *CommandContext, analyzer *lint.Analyzer, lintCfg *lint.Config, args []string) error {
	r := cmdCtx.Renderer
	run := func(paths []string) {
		report, err := lintArgs(ctx, cmdCtx, analyzer, lintCfg, paths, nil)
		if err != nil {
			r.Error(err.Error())
			return
		}
		if err := renderLintReport(r, report); err != nil {
			r.Error(err.Error())
		}
	}

	run(args)

	watcher, err := workspace.NewWatcher(args, cmdCtx.Cfg.Watch.Debounce, cmdCtx.Logger)
	if err != nil {
		return err
	}
	r.Muted("Watching for changes. Press Ctrl+C to stop.")
	return watcher.Run(ctx, func(changed []string) {
		r.Println("")
		r.Muted(fmt.Sprintf("Change detected: %s", strings.Join(changed, ", ")))
		run(changed)
	})
}
