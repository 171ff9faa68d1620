// Package format pretty-prints shell syntax trees back to script text and
// dumps them as text, JSON or YAML trees.
package format

import (
	"bytes"
	"strings"

	"github.com/leapstack-labs/leapsh/pkg/token"
)

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 2

// Printer writes indented output line by line.
type Printer struct {
	output      *bytes.Buffer
	indentSize  int
	depth       int
	atLineStart bool

	comments *commentQueue
}

func newPrinter(indentSize int) *Printer {
	if indentSize <= 0 {
		indentSize = DefaultIndent
	}
	return &Printer{
		output:      &bytes.Buffer{},
		indentSize:  indentSize,
		atLineStart: true,
	}
}

// String returns the formatted output with exactly one trailing newline,
// or an empty string when nothing was written.
func (p *Printer) String() string {
	out := strings.TrimRight(p.output.String(), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

func (p *Printer) write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

func (p *Printer) writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

func (p *Printer) writeIndent() {
	p.output.WriteString(strings.Repeat(" ", p.depth*p.indentSize))
	p.atLineStart = false
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}

// kw prints reserved words separated by spaces.
func (p *Printer) kw(tokens ...token.TokenType) {
	for i, t := range tokens {
		if i > 0 {
			p.space()
		}
		p.write(t.String())
	}
}

// formatComments prints each comment on its own line.
func (p *Printer) formatComments(comments []*token.Comment) {
	for _, c := range comments {
		p.write("#" + c.Text)
		p.writeln()
	}
}

// formatTrailingComment prints a comment at the end of the current line.
func (p *Printer) formatTrailingComment(c *token.Comment) {
	if c == nil {
		return
	}
	p.write("  #" + c.Text)
}

// formatList prints count items with sep between them.
func (p *Printer) formatList(count int, format func(i int), sep string) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			p.write(sep)
		}
	}
}
