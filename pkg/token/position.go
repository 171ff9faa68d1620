package token

import "fmt"

// Position represents a span in the source text.
//
// Offset and End are byte offsets; End is exclusive so that
// source[Offset:End] is the covered text. Line and Column locate Offset.
type Position struct {
	Line   int // 1-based line number of the first byte
	Column int // 1-based column number of the first byte
	Offset int // 0-based byte offset of the first byte
	End    int // 0-based byte offset just past the last byte
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Len returns the number of bytes covered by the position.
func (p Position) Len() int {
	if p.End < p.Offset {
		return 0
	}
	return p.End - p.Offset
}

// Contains returns true if the span contains the given offset.
func (p Position) Contains(offset int) bool {
	return offset >= p.Offset && offset < p.End
}

// Through returns a span that starts at p and ends where last ends.
// If last is invalid, p is returned unchanged.
func (p Position) Through(last Position) Position {
	if !last.IsValid() || last.End < p.Offset {
		return p
	}
	p.End = last.End
	return p
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
