// Package ast provides tree queries shared by lint rules.
package ast

import "github.com/leapstack-labs/leapsh/pkg/core"

// Binding is a name introduced by an assignment or a for loop.
type Binding struct {
	Name string
	Node core.Node // *core.Assignment or *core.Loop
}

// Bindings returns every assignment and for-loop variable in source order.
func Bindings(prog *core.Program) []Binding {
	var out []Binding
	core.Inspect(prog, func(n core.Node) bool {
		switch n := n.(type) {
		case *core.Assignment:
			out = append(out, Binding{Name: n.Name, Node: n})
		case *core.Loop:
			if n.Kind == core.LoopFor {
				out = append(out, Binding{Name: n.Variable, Node: n})
			}
		}
		return true
	})
	return out
}

// References returns the set of variable names read anywhere in prog.
func References(prog *core.Program) map[string]bool {
	refs := make(map[string]bool)
	core.Inspect(prog, func(n core.Node) bool {
		if v, ok := n.(*core.Variable); ok {
			refs[v.Name] = true
		}
		return true
	})
	return refs
}

// Conditions returns the condition of every if and while statement.
func Conditions(prog *core.Program) []core.Expr {
	var out []core.Expr
	core.Inspect(prog, func(n core.Node) bool {
		switch n := n.(type) {
		case *core.Conditional:
			out = append(out, n.Condition)
		case *core.Loop:
			if n.Kind == core.LoopWhile {
				out = append(out, n.Condition)
			}
		}
		return true
	})
	return out
}
