package convention

import (
	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/lint"
	"github.com/leapstack-labs/leapsh/pkg/lint/internal/ast"
)

func init() {
	// Assigned here rather than in the literal to break the
	// VariableShadowsFunction <-> checkVariableShadowsFunction initialization cycle.
	VariableShadowsFunction.Check = checkVariableShadowsFunction
	lint.Register(VariableShadowsFunction)
}

// VariableShadowsFunction flags variables named after a declared function.
var VariableShadowsFunction = lint.RuleDef{
	ID:          "SH003",
	Name:        "convention.variable-shadows-function",
	Group:       "convention",
	Description: "Variable has the same name as a declared function.",
	Severity:    core.SeverityWarning,

	Rationale: `Sharing a name between a function and a variable makes it unclear
whether "name" or "$name" was meant at each use.`,

	BadExample: `function deploy() { rsync -a dist/ host:; }
deploy=prod`,

	GoodExample: `function deploy() { rsync -a dist/ host:; }
target=prod`,

	Fix: "Rename the variable.",
}

func checkVariableShadowsFunction(prog *core.Program) []lint.Diagnostic {
	fns := make(map[string]bool)
	for _, fn := range core.Functions(prog) {
		fns[fn.Name] = true
	}
	if len(fns) == 0 {
		return nil
	}

	var diags []lint.Diagnostic
	for _, b := range ast.Bindings(prog) {
		if fns[b.Name] {
			diags = append(diags, VariableShadowsFunction.Diagnosef(b.Node,
				"variable %q has the same name as a function", b.Name))
		}
	}
	return diags
}
