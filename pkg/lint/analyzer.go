package lint

import (
	"sort"

	"github.com/leapstack-labs/leapsh/pkg/core"
)

// Analyzer runs registered lint rules against parsed programs.
type Analyzer struct {
	config *Config
	rules  []RuleDef // nil means the global registry
}

// NewAnalyzer creates a new analyzer with optional configuration.
func NewAnalyzer(config *Config) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	return &Analyzer{config: config}
}

// NewAnalyzerWithRules creates an analyzer over an explicit rule set
// instead of the global registry.
func NewAnalyzerWithRules(config *Config, rules ...RuleDef) *Analyzer {
	a := NewAnalyzer(config)
	a.rules = rules
	return a
}

// Analyze runs every enabled rule against prog. Diagnostics come back
// ordered by position, then rule ID.
func (a *Analyzer) Analyze(prog *core.Program) []Diagnostic {
	if prog == nil {
		return nil
	}

	rules := a.rules
	if rules == nil {
		rules = GetAll()
	}

	var diagnostics []Diagnostic
	for _, rule := range rules {
		if a.config.IsDisabled(rule.ID) || rule.Check == nil {
			continue
		}

		for _, d := range rule.Check(prog) {
			d.Severity = a.config.GetSeverity(rule.ID, d.Severity)
			if a.config.Reports(d.Severity) {
				diagnostics = append(diagnostics, d)
			}
		}
	}

	sort.SliceStable(diagnostics, func(i, j int) bool {
		if diagnostics[i].Pos.Offset != diagnostics[j].Pos.Offset {
			return diagnostics[i].Pos.Offset < diagnostics[j].Pos.Offset
		}
		return diagnostics[i].RuleID < diagnostics[j].RuleID
	})
	return diagnostics
}
