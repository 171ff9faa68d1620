package format

import (
	"strings"

	"github.com/leapstack-labs/leapsh/pkg/core"
)

func (p *Printer) formatExpr(expr core.Expr) {
	switch e := expr.(type) {
	case *core.Literal:
		if e.Quoted {
			p.write(quote(e.Value))
		} else {
			p.write(e.Value)
		}
	case *core.Variable:
		if e.Braced {
			p.write("${" + e.Name + "}")
		} else {
			p.write("$" + e.Name)
		}
	case *core.CommandSubstitution:
		p.write("$(")
		p.formatList(len(e.Body), func(i int) {
			p.formatInline(e.Body[i])
		}, "; ")
		p.write(")")
	case *core.CommandExpr:
		p.formatInline(e.Cmd)
	}
}

// formatInline prints a statement on the current line. Compound
// statements inside a substitution are printed with ";" separators.
func (p *Printer) formatInline(stmt core.Stmt) {
	switch s := stmt.(type) {
	case *core.Conditional:
		p.write("if ")
		p.formatExpr(s.Condition)
		p.write("; then ")
		p.formatInlineBody(s.Then)
		if s.HasElse() {
			p.write("else ")
			p.formatInlineBody(s.Else)
		}
		p.write("fi")
	case *core.Loop:
		if s.Kind == core.LoopFor {
			p.write("for " + s.Variable + " in ")
			p.formatExpr(s.Iterable)
		} else {
			p.write("while ")
			p.formatExpr(s.Condition)
		}
		p.write("; do ")
		p.formatInlineBody(s.Body)
		p.write("done")
	case *core.FunctionDecl:
		p.write("function " + s.Name + "() { ")
		p.formatInlineBody(s.Body)
		p.write("}")
	default:
		p.formatStmt(stmt)
	}
}

func (p *Printer) formatInlineBody(stmts []core.Stmt) {
	for _, s := range stmts {
		p.formatInline(s)
		p.write("; ")
	}
}

// quote double-quotes s, escaping backslashes and double quotes.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}
