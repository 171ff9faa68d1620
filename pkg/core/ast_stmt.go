package core

import "github.com/leapstack-labs/leapsh/pkg/token"

// ---------- Statement Types ----------

// Command is a simple command: a name followed by raw argument text.
type Command struct {
	NodeInfo
	Name string
	Args []string

	// Words is the typed view of Args, one entry per argument: a *Literal for
	// WORD and QUOTED_STRING tokens, a *Variable for VARIABLE tokens.
	Words []Expr
}

func (*Command) stmtNode() {}

// Pipeline is two or more commands joined by '|'.
type Pipeline struct {
	NodeInfo
	Commands []*Command
}

func (*Pipeline) stmtNode() {}

// Conditional represents if/then/else/fi.
type Conditional struct {
	NodeInfo
	Condition Expr
	Then      []Stmt
	Else      []Stmt         // nil when there is no else branch
	ElsePos   token.Position // else keyword; zero without an else branch
}

func (*Conditional) stmtNode() {}

// HasElse reports whether the conditional has an else branch.
func (c *Conditional) HasElse() bool {
	return c.Else != nil
}

// LoopKind distinguishes for and while loops.
type LoopKind string

// LoopKind constants.
const (
	LoopFor   LoopKind = "for"
	LoopWhile LoopKind = "while"
)

// Loop represents "for NAME in EXPR do ... done" and "while EXPR do ... done".
// A for loop sets Variable and Iterable; a while loop sets Condition.
type Loop struct {
	NodeInfo
	Kind      LoopKind
	Condition Expr
	Variable  string
	Iterable  Expr
	Body      []Stmt
}

func (*Loop) stmtNode() {}

// FunctionDecl represents "function NAME() { ... }".
type FunctionDecl struct {
	NodeInfo
	Name string
	Body []Stmt
}

func (*FunctionDecl) stmtNode() {}

// Assignment represents "NAME=VALUE".
type Assignment struct {
	NodeInfo
	Name  string
	Value Expr
}

func (*Assignment) stmtNode() {}
