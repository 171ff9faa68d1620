package structure

import (
	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/lint"
)

func init() {
	// Assigned here rather than in the literal to break the
	// DuplicateFunction <-> checkDuplicateFunction initialization cycle.
	DuplicateFunction.Check = checkDuplicateFunction
	lint.Register(DuplicateFunction)
}

// DuplicateFunction flags a function name declared more than once.
var DuplicateFunction = lint.RuleDef{
	ID:          "SH002",
	Name:        "structure.duplicate-function",
	Group:       "structure",
	Description: "Function is declared more than once.",
	Severity:    core.SeverityError,

	Rationale: `A later declaration silently replaces the earlier one, so calls made
before and after the second declaration run different code.`,

	BadExample: `function build() { make; }
function build() { make all; }`,

	GoodExample: `function build() { make; }
function build_all() { make all; }`,
}

func checkDuplicateFunction(prog *core.Program) []lint.Diagnostic {
	var diags []lint.Diagnostic
	first := make(map[string]*core.FunctionDecl)
	for _, fn := range core.Functions(prog) {
		if prev, ok := first[fn.Name]; ok {
			diags = append(diags, DuplicateFunction.Diagnosef(fn,
				"function %q is already declared at line %d", fn.Name, prev.Pos().Line))
			continue
		}
		first[fn.Name] = fn
	}
	return diags
}
