package format

import (
	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/token"
)

// commentQueue hands out source comments in order as the printer reaches
// the statements around them.
type commentQueue struct {
	comments []*token.Comment
	next     int
}

// before pops every pending comment that starts before offset.
func (q *commentQueue) before(offset int) []*token.Comment {
	start := q.next
	for q.next < len(q.comments) && q.comments[q.next].Pos.Offset < offset {
		q.next++
	}
	return q.comments[start:q.next]
}

// trailing pops the next comment if it sits on the last line of a simple
// statement, after the statement ends and before the enclosing block ends.
func (q *commentQueue) trailing(stmt core.Stmt, end int) *token.Comment {
	if q.next >= len(q.comments) {
		return nil
	}
	switch stmt.(type) {
	case *core.Command, *core.Pipeline, *core.Assignment:
	default:
		return nil
	}

	c := q.comments[q.next]
	span := stmt.Pos()
	if !span.IsValid() || c.Pos.Offset < span.End || c.Pos.Offset >= end || c.Pos.Line != lastLine(stmt) {
		return nil
	}
	q.next++
	return c
}

// rest pops all remaining comments.
func (q *commentQueue) rest() []*token.Comment {
	out := q.comments[q.next:]
	q.next = len(q.comments)
	return out
}

// lastLine returns the highest start line of any node within n.
func lastLine(n core.Node) int {
	line := 0
	core.Inspect(n, func(child core.Node) bool {
		if l := child.Pos().Line; l > line {
			line = l
		}
		return true
	})
	return line
}
