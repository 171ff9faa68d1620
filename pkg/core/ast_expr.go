package core

// ---------- Expression Types ----------

// Literal is a bare or quoted word.
type Literal struct {
	NodeInfo
	Value  string
	Quoted bool
}

func (*Literal) exprNode() {}

// Variable is a $NAME or ${NAME} reference.
type Variable struct {
	NodeInfo
	Name   string
	Braced bool
}

func (*Variable) exprNode() {}

// CommandSubstitution represents $( ... ).
type CommandSubstitution struct {
	NodeInfo
	Body []Stmt
}

func (*CommandSubstitution) exprNode() {}

// CommandExpr is a command used in condition position, as in
// "if test -f file". Cmd is a *Command or a *Pipeline.
type CommandExpr struct {
	NodeInfo
	Cmd Stmt
}

func (*CommandExpr) exprNode() {}
