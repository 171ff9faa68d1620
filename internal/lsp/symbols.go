package lsp

import (
	"strings"

	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/parser"
	"github.com/leapstack-labs/leapsh/pkg/token"
)

// getDocumentSymbols returns the outline of a document: functions, with
// their bodies' symbols as children, and assignments. Control-flow blocks do
// not nest symbols. A document that fails to parse has no outline.
func (s *Server) getDocumentSymbols(uri string) []DocumentSymbol {
	doc := s.documents.Get(uri)
	if doc == nil {
		return []DocumentSymbol{}
	}
	prog, err := parser.ParseWithOptions(doc.Content, parser.WithLogger(s.logger))
	if err != nil {
		return []DocumentSymbol{}
	}
	return doc.symbols(prog.Body)
}

func (d *Document) symbols(stmts []core.Stmt) []DocumentSymbol {
	out := []DocumentSymbol{}
	for _, stmt := range stmts {
		switch n := stmt.(type) {
		case *core.FunctionDecl:
			out = append(out, DocumentSymbol{
				Name:           n.Name,
				Detail:         "function",
				Kind:           SymbolKindFunction,
				Range:          d.SpanToRange(n.Pos()),
				SelectionRange: d.nameRange(afterKeyword(n.Pos(), "function"), n.Name),
				Children:       d.symbols(n.Body),
			})
		case *core.Assignment:
			out = append(out, DocumentSymbol{
				Name:           n.Name,
				Detail:         "variable",
				Kind:           SymbolKindVariable,
				Range:          d.SpanToRange(n.Pos()),
				SelectionRange: d.nameRange(n.Pos(), n.Name),
			})
		case *core.Conditional:
			out = append(out, d.symbols(n.Then)...)
			out = append(out, d.symbols(n.Else)...)
		case *core.Loop:
			out = append(out, d.symbols(n.Body)...)
		}
	}
	return out
}

// afterKeyword trims a leading keyword from span so a name search does not
// match inside it.
func afterKeyword(span token.Position, kw string) token.Position {
	if span.Offset+len(kw) <= span.End {
		span.Offset += len(kw)
	}
	return span
}

// nameRange locates the first occurrence of name inside span, falling back
// to the whole span.
func (d *Document) nameRange(span token.Position, name string) Range {
	if span.Offset >= 0 && span.End <= len(d.Content) && span.Offset <= span.End {
		if i := strings.Index(d.Content[span.Offset:span.End], name); i >= 0 {
			start := span.Offset + i
			return Range{Start: d.OffsetToPosition(start), End: d.OffsetToPosition(start + len(name))}
		}
	}
	return d.SpanToRange(span)
}
