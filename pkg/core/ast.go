package core

import "github.com/leapstack-labs/leapsh/pkg/token"

// Node is the base interface for all syntax tree nodes.
type Node interface {
	// Pos returns the span covered by the node, from its first token to the
	// end of its last consumed token.
	Pos() token.Position
}

// Expr is a marker interface for expression nodes.
// The set is closed: *Literal, *Variable, *CommandSubstitution, *CommandExpr.
type Expr interface {
	Node
	exprNode() // Marker method to distinguish expressions
}

// Stmt is a marker interface for statement nodes.
// The set is closed: *Command, *Pipeline, *Conditional, *Loop,
// *FunctionDecl, *Assignment. Pipeline parsing yields a bare *Command when
// only one command is present, so consumers must switch on the concrete type.
type Stmt interface {
	Node
	stmtNode() // Marker method to distinguish statements
}

// NodeInfo carries the source span shared by every node.
type NodeInfo struct {
	Span token.Position
}

// Pos implements Node.
func (n NodeInfo) Pos() token.Position { return n.Span }

// Program is the root of a parsed script.
type Program struct {
	NodeInfo
	Body []Stmt

	// Comments holds every comment in source order. Comments never produce
	// statements.
	Comments []*token.Comment

	// Warnings holds lenient-scan findings such as unterminated quotes.
	Warnings []Warning
}

// Warning is a non-fatal finding recorded while scanning.
type Warning struct {
	Message string
	Pos     token.Position
}
