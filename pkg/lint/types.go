package lint

import (
	"fmt"

	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/token"
)

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition. Rules are stateless: all
// context comes through the Check function's argument.
type RuleDef struct {
	ID          string        // Unique identifier, e.g., "SH001"
	Name        string        // Human-readable name, e.g., "structure.empty-body"
	Group       string        // Category, e.g., "structure", "convention"
	Description string        // Human-readable description
	Severity    core.Severity // Default severity
	Check       CheckFunc     // The check function

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// CheckFunc analyzes a program and returns diagnostics.
type CheckFunc func(prog *core.Program) []Diagnostic

// Info returns the rule's metadata for documentation and tooling.
func (r RuleDef) Info() core.RuleInfo {
	return core.RuleInfo{
		ID:              r.ID,
		Name:            r.Name,
		Group:           r.Group,
		Description:     r.Description,
		DefaultSeverity: r.Severity,
		Rationale:       r.Rationale,
		BadExample:      r.BadExample,
		GoodExample:     r.GoodExample,
	}
}

// Diagnosef builds a diagnostic for this rule at the position of node,
// using the rule's default severity.
func (r RuleDef) Diagnosef(node core.Node, format string, args ...any) Diagnostic {
	return Diagnostic{
		RuleID:   r.ID,
		Severity: r.Severity,
		Message:  fmt.Sprintf(format, args...),
		Pos:      node.Pos(),
	}
}

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string         `json:"rule_id" yaml:"rule_id"`
	Severity core.Severity  `json:"severity" yaml:"severity"`
	Message  string         `json:"message" yaml:"message"`
	Pos      token.Position `json:"pos" yaml:"pos"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s [%s] %s", d.Pos, d.Severity, d.RuleID, d.Message)
}
