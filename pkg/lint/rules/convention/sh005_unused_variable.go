package convention

import (
	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/lint"
	"github.com/leapstack-labs/leapsh/pkg/lint/internal/ast"
)

func init() {
	// Assigned here rather than in the literal to break the
	// UnusedVariable <-> checkUnusedVariable initialization cycle.
	UnusedVariable.Check = checkUnusedVariable
	lint.Register(UnusedVariable)
}

// UnusedVariable flags assigned variables that are never read.
var UnusedVariable = lint.RuleDef{
	ID:          "SH005",
	Name:        "convention.unused-variable",
	Group:       "convention",
	Description: "Variable is assigned but never referenced.",
	Severity:    core.SeverityHint,

	Rationale: `Unused assignments are dead code or a sign of a misspelled
reference elsewhere in the script.`,

	BadExample: `out=build
make`,

	GoodExample: `out=build
make OUT=$out`,
}

func checkUnusedVariable(prog *core.Program) []lint.Diagnostic {
	refs := ast.References(prog)
	reported := make(map[string]bool)

	var diags []lint.Diagnostic
	for _, b := range ast.Bindings(prog) {
		if _, isAssign := b.Node.(*core.Assignment); !isAssign {
			continue
		}
		if refs[b.Name] || reported[b.Name] {
			continue
		}
		reported[b.Name] = true
		diags = append(diags, UnusedVariable.Diagnosef(b.Node, "variable %q is assigned but never used", b.Name))
	}
	return diags
}
