package structure

import (
	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/lint"
)

func init() {
	// Assigned here rather than in the literal to break the
	// EmptyBody <-> checkEmptyBody initialization cycle.
	EmptyBody.Check = checkEmptyBody
	lint.Register(EmptyBody)
}

// EmptyBody flags compound statements whose body has no statements.
var EmptyBody = lint.RuleDef{
	ID:          "SH001",
	Name:        "structure.empty-body",
	Group:       "structure",
	Description: "Body of an if, else, loop or function contains no statements.",
	Severity:    core.SeverityWarning,

	Rationale: `An empty body usually means code was deleted or never written. The
construct still runs its condition, which may hide a mistake.`,

	BadExample: `if test -f lock; then
fi`,

	GoodExample: `if test -f lock; then
  rm lock
fi`,

	Fix: "Add the missing statements or remove the construct.",
}

func checkEmptyBody(prog *core.Program) []lint.Diagnostic {
	var diags []lint.Diagnostic
	core.Inspect(prog, func(n core.Node) bool {
		switch n := n.(type) {
		case *core.Conditional:
			if len(n.Then) == 0 {
				diags = append(diags, EmptyBody.Diagnosef(n, "if statement has an empty then body"))
			}
			if n.HasElse() && len(n.Else) == 0 {
				diags = append(diags, EmptyBody.Diagnosef(n, "if statement has an empty else body"))
			}
		case *core.Loop:
			if len(n.Body) == 0 {
				diags = append(diags, EmptyBody.Diagnosef(n, "%s loop has an empty body", n.Kind))
			}
		case *core.FunctionDecl:
			if len(n.Body) == 0 {
				diags = append(diags, EmptyBody.Diagnosef(n, "function %q has an empty body", n.Name))
			}
		}
		return true
	})
	return diags
}
