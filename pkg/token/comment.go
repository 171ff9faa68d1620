package token

// Comment represents a "#" comment with its position.
type Comment struct {
	Text string // text after '#', excluding the line break
	Pos  Position
}

// Line returns the 1-based line the comment appears on.
func (c *Comment) Line() int {
	return c.Pos.Line
}
