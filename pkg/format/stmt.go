package format

import (
	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/token"
)

// formatBody prints statements one per line. Comments that start before
// end and were not claimed by a statement are flushed at the end.
func (p *Printer) formatBody(stmts []core.Stmt, end int) {
	for _, stmt := range stmts {
		if stmt == nil {
			continue
		}
		p.formatComments(p.comments.before(stmt.Pos().Offset))
		p.formatStmt(stmt)
		p.formatTrailingComment(p.comments.trailing(stmt, end))
		p.writeln()
	}
	p.formatComments(p.comments.before(end))
}

func (p *Printer) formatStmt(stmt core.Stmt) {
	switch s := stmt.(type) {
	case *core.Command:
		p.formatCommand(s)
	case *core.Pipeline:
		p.formatPipeline(s)
	case *core.Assignment:
		p.formatAssignment(s)
	case *core.Conditional:
		p.formatConditional(s)
	case *core.Loop:
		p.formatLoop(s)
	case *core.FunctionDecl:
		p.formatFunction(s)
	}
}

func (p *Printer) formatCommand(cmd *core.Command) {
	p.write(cmd.Name)
	if len(cmd.Words) == 0 {
		for _, arg := range cmd.Args {
			p.space()
			p.write(arg)
		}
		return
	}
	for _, w := range cmd.Words {
		p.space()
		p.formatExpr(w)
	}
}

func (p *Printer) formatPipeline(pipe *core.Pipeline) {
	p.formatList(len(pipe.Commands), func(i int) {
		p.formatCommand(pipe.Commands[i])
	}, " | ")
}

func (p *Printer) formatAssignment(a *core.Assignment) {
	p.write(a.Name + "=")
	p.formatExpr(a.Value)
}

// formatConditional prints:
//
//	if COND; then
//	  ...
//	else
//	  ...
//	fi
func (p *Printer) formatConditional(c *core.Conditional) {
	p.kw(token.IF)
	p.space()
	p.formatExpr(c.Condition)
	p.write("; ")
	p.kw(token.THEN)
	p.writeln()

	thenEnd := c.Pos().End
	switch {
	case c.HasElse() && c.ElsePos.IsValid():
		thenEnd = c.ElsePos.Offset
	case len(c.Else) > 0:
		thenEnd = c.Else[0].Pos().Offset
	}
	p.formatBlock(c.Then, thenEnd)

	if c.HasElse() {
		p.kw(token.ELSE)
		p.writeln()
		p.formatBlock(c.Else, c.Pos().End)
	}
	p.kw(token.FI)
}

// formatLoop prints:
//
//	for NAME in EXPR; do      while COND; do
//	  ...                       ...
//	done                      done
func (p *Printer) formatLoop(l *core.Loop) {
	if l.Kind == core.LoopFor {
		p.kw(token.FOR)
		p.write(" " + l.Variable + " in ")
		p.formatExpr(l.Iterable)
	} else {
		p.kw(token.WHILE)
		p.space()
		p.formatExpr(l.Condition)
	}
	p.write("; ")
	p.kw(token.DO)
	p.writeln()
	p.formatBlock(l.Body, l.Pos().End)
	p.kw(token.DONE)
}

// formatFunction prints:
//
//	function NAME() {
//	  ...
//	}
func (p *Printer) formatFunction(fn *core.FunctionDecl) {
	p.kw(token.FUNCTION)
	p.write(" " + fn.Name + "() {")
	p.writeln()
	p.formatBlock(fn.Body, fn.Pos().End)
	p.write("}")
}

func (p *Printer) formatBlock(stmts []core.Stmt, end int) {
	p.indent()
	p.formatBody(stmts, end)
	p.dedent()
}
