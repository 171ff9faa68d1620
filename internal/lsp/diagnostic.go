package lsp

import (
	"github.com/leapstack-labs/leapsh/internal/workspace"
	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/parser"
)

// diagnosticSource is reported as the Source of every diagnostic.
const diagnosticSource = "leapsh"

// publishDiagnostics parses the document and sends its findings.
func (s *Server) publishDiagnostics(uri string) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return
	}

	version := doc.Version
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Version:     &version,
		Diagnostics: s.getDiagnostics(doc),
	})
}

// getDiagnostics runs the shared parse and lint pipeline over a document.
func (s *Server) getDiagnostics(doc *Document) []Diagnostic {
	f := workspace.File{Path: URIToPath(doc.URI), Source: doc.Content}
	res := workspace.ParseFile(f, parser.WithLogger(s.logger))

	found := workspace.Diagnostics(res, s.analyzer, s.lintCfg)

	diags := make([]Diagnostic, 0, len(found))
	for _, d := range found {
		diags = append(diags, Diagnostic{
			Range:    doc.SpanToRange(d.Pos),
			Severity: toLSPSeverity(d.Severity),
			Code:     d.RuleID,
			Source:   diagnosticSource,
			Message:  d.Message,
		})
	}
	return diags
}

// toLSPSeverity converts core.Severity to LSP DiagnosticSeverity.
func toLSPSeverity(sev core.Severity) DiagnosticSeverity {
	switch sev {
	case core.SeverityError:
		return DiagnosticSeverityError
	case core.SeverityWarning:
		return DiagnosticSeverityWarning
	case core.SeverityInfo:
		return DiagnosticSeverityInformation
	case core.SeverityHint:
		return DiagnosticSeverityHint
	default:
		return DiagnosticSeverityWarning
	}
}
