package structure

import (
	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/lint"
	"github.com/leapstack-labs/leapsh/pkg/lint/internal/ast"
)

func init() {
	// Assigned here rather than in the literal to break the
	// ConstantCondition <-> checkConstantCondition initialization cycle.
	ConstantCondition.Check = checkConstantCondition
	lint.Register(ConstantCondition)
}

// ConstantCondition flags if and while conditions that are a bare word
// rather than a command or a variable. The always-true and always-false
// builtins are deliberate and exempt.
var ConstantCondition = lint.RuleDef{
	ID:          "SH004",
	Name:        "structure.constant-condition",
	Group:       "structure",
	Description: "Condition is a constant word.",
	Severity:    core.SeverityInfo,

	Rationale: `A bare word condition never changes between runs. It is often a
command whose arguments were forgotten, or a variable missing its "$".
The builtins true, false and ":" are intentional and not reported.`,

	BadExample: `while running; do
  work
done`,

	GoodExample: `while $running; do
  work
done`,
}

// intentionalConstants are condition words written on purpose, as in an
// endless "while true" loop.
var intentionalConstants = map[string]bool{
	"true":  true,
	"false": true,
	":":     true,
}

func checkConstantCondition(prog *core.Program) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, cond := range ast.Conditions(prog) {
		lit, ok := cond.(*core.Literal)
		if !ok || lit.Quoted || intentionalConstants[lit.Value] {
			continue
		}
		diags = append(diags, ConstantCondition.Diagnosef(lit, "condition is the constant word %q", lit.Value))
	}
	return diags
}
