package workspace

import (
	"errors"

	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/lint"
	"github.com/leapstack-labs/leapsh/pkg/parser"
)

// Pseudo rule IDs for findings that do not come from a lint rule. They can
// be disabled or re-ranked in the lint config like any rule.
const (
	SyntaxRuleID = "syntax"
	ScanRuleID   = "scan"
)

// Diagnostics returns every finding for a parse result. A failed parse
// yields the syntax error followed by the scanner warnings of a fresh
// scan, since the program is lost. Otherwise the result holds the
// program's scanner warnings followed by the analyzer's output.
func Diagnostics(res Result, analyzer *lint.Analyzer, cfg *lint.Config) []lint.Diagnostic {
	if cfg == nil {
		cfg = lint.NewConfig()
	}
	if res.Err != nil {
		var diags []lint.Diagnostic
		if d, ok := syntaxFinding(res.Err, cfg); ok {
			diags = append(diags, d)
		}
		lex := parser.NewLexer(res.Source)
		lex.All()
		return append(diags, ScanDiagnostics(lex.Warnings, cfg)...)
	}

	diags := ScanDiagnostics(res.Program.Warnings, cfg)
	return append(diags, analyzer.Analyze(res.Program)...)
}

// syntaxFinding applies the config to the diagnostic for a parse failure.
func syntaxFinding(err error, cfg *lint.Config) (lint.Diagnostic, bool) {
	sev := cfg.GetSeverity(SyntaxRuleID, core.SeverityError)
	if cfg.IsDisabled(SyntaxRuleID) || !cfg.Reports(sev) {
		return lint.Diagnostic{}, false
	}
	d := SyntaxDiagnostic(err)
	d.Severity = sev
	return d, true
}

// ScanDiagnostics converts scanner warnings to diagnostics at warning
// severity unless the config re-ranks or disables them.
func ScanDiagnostics(warnings []core.Warning, cfg *lint.Config) []lint.Diagnostic {
	sev := cfg.GetSeverity(ScanRuleID, core.SeverityWarning)
	if cfg.IsDisabled(ScanRuleID) || !cfg.Reports(sev) {
		return nil
	}
	diags := make([]lint.Diagnostic, 0, len(warnings))
	for _, w := range warnings {
		diags = append(diags, lint.Diagnostic{RuleID: ScanRuleID, Severity: sev, Message: w.Message, Pos: w.Pos})
	}
	return diags
}

// SyntaxDiagnostic converts a parse failure to an error diagnostic located
// at the failing token.
func SyntaxDiagnostic(err error) lint.Diagnostic {
	d := lint.Diagnostic{RuleID: SyntaxRuleID, Severity: core.SeverityError, Message: err.Error()}
	var perr *parser.ParseError
	if errors.As(err, &perr) {
		d.Message = perr.Message
		if perr.Pos != nil {
			d.Pos = *perr.Pos
		}
	}
	return d
}
