package lsp

import (
	"github.com/leapstack-labs/leapsh/pkg/format"
	"github.com/leapstack-labs/leapsh/pkg/parser"
)

// maxTabSize bounds the indent taken from client formatting options.
const maxTabSize = 8

// getFormattingEdits formats the whole document. The result is a single
// edit replacing the full text, or no edits when the document is already
// formatted or does not parse.
func (s *Server) getFormattingEdits(params DocumentFormattingParams) []TextEdit {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return []TextEdit{}
	}

	prog, err := parser.ParseWithOptions(doc.Content, parser.WithLogger(s.logger))
	if err != nil {
		s.logger.Debug("Skipping format of unparsable document", "uri", doc.URI, "error", err)
		return []TextEdit{}
	}

	indent := s.indent
	if n := params.Options.TabSize; n > 0 && n <= maxTabSize {
		indent = n
	}

	formatted := format.Program(prog, format.Options{Indent: indent})
	if formatted == doc.Content {
		return []TextEdit{}
	}
	return []TextEdit{{Range: doc.FullRange(), NewText: formatted}}
}
