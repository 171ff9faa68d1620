package core

// Inspect traverses a tree depth-first and calls fn for each node.
// If fn returns false, the children of that node are skipped.
func Inspect(node Node, fn func(node Node) bool) {
	if node == nil || isNilNode(node) {
		return
	}
	if !fn(node) {
		return
	}
	inspectChildren(node, fn)
}

func inspectChildren(node Node, fn func(node Node) bool) {
	switch n := node.(type) {
	case *Program:
		inspectStmts(n.Body, fn)

	case *Command:
		for _, w := range n.Words {
			Inspect(w, fn)
		}

	case *Pipeline:
		for _, c := range n.Commands {
			Inspect(c, fn)
		}

	case *Conditional:
		Inspect(n.Condition, fn)
		inspectStmts(n.Then, fn)
		inspectStmts(n.Else, fn)

	case *Loop:
		Inspect(n.Condition, fn)
		Inspect(n.Iterable, fn)
		inspectStmts(n.Body, fn)

	case *FunctionDecl:
		inspectStmts(n.Body, fn)

	case *Assignment:
		Inspect(n.Value, fn)

	case *CommandSubstitution:
		inspectStmts(n.Body, fn)

	case *CommandExpr:
		Inspect(n.Cmd, fn)

	case *Literal, *Variable:
		// leaves
	}
}

func inspectStmts(stmts []Stmt, fn func(node Node) bool) {
	for _, s := range stmts {
		Inspect(s, fn)
	}
}

// isNilNode catches typed nil pointers stored in a Node interface.
func isNilNode(node Node) bool {
	switch n := node.(type) {
	case *Program:
		return n == nil
	case *Command:
		return n == nil
	case *Pipeline:
		return n == nil
	case *Conditional:
		return n == nil
	case *Loop:
		return n == nil
	case *FunctionDecl:
		return n == nil
	case *Assignment:
		return n == nil
	case *Literal:
		return n == nil
	case *Variable:
		return n == nil
	case *CommandSubstitution:
		return n == nil
	case *CommandExpr:
		return n == nil
	}
	return false
}

// Functions returns every function declaration in the tree, including
// nested ones, in source order.
func Functions(prog *Program) []*FunctionDecl {
	var out []*FunctionDecl
	Inspect(prog, func(n Node) bool {
		if fn, ok := n.(*FunctionDecl); ok {
			out = append(out, fn)
		}
		return true
	})
	return out
}

// StmtKind returns a short name for the concrete statement type.
func StmtKind(s Stmt) string {
	switch s.(type) {
	case *Command:
		return "command"
	case *Pipeline:
		return "pipeline"
	case *Conditional:
		return "if"
	case *Loop:
		return "loop"
	case *FunctionDecl:
		return "function"
	case *Assignment:
		return "assignment"
	default:
		return "unknown"
	}
}
