package format

import (
	"github.com/leapstack-labs/leapsh/pkg/core"
)

// Options controls script formatting.
type Options struct {
	// Indent is the number of spaces per nesting level. Zero means
	// DefaultIndent.
	Indent int
}

// Program formats a parsed program as canonical script text. Comments
// recorded on the program are kept: each is printed before the statement
// that follows it, or at the end of the line of a simple statement it
// trails.
func Program(prog *core.Program, opts Options) string {
	if prog == nil {
		return ""
	}
	p := newPrinter(opts.Indent)
	p.comments = &commentQueue{comments: prog.Comments}
	p.formatBody(prog.Body, prog.Pos().End)
	p.formatComments(p.comments.rest())
	return p.String()
}

// Stmt formats a single statement without comments.
func Stmt(stmt core.Stmt, opts Options) string {
	p := newPrinter(opts.Indent)
	p.comments = &commentQueue{}
	p.formatStmt(stmt)
	return p.String()
}

// Expr formats an expression as it would appear in a script.
func Expr(expr core.Expr) string {
	p := newPrinter(DefaultIndent)
	p.comments = &commentQueue{}
	p.formatExpr(expr)
	return p.output.String()
}
