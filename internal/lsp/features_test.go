package lsp

import (
	"io"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/leapstack-labs/leapsh/pkg/format"
	"github.com/leapstack-labs/leapsh/pkg/lint"
	"github.com/leapstack-labs/leapsh/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURI = "file:///work/script.sh"

func newTestServer(t *testing.T, content string, opts ...Option) *Server {
	t.Helper()
	s := NewServer(strings.NewReader(""), io.Discard, opts...)
	s.documents.Open(testURI, content, 1)
	return s
}

func codes(diags []Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func TestDiagnostics_ParseError(t *testing.T) {
	s := newTestServer(t, "if test -f x; then echo\n")

	diags := s.getDiagnostics(s.documents.Get(testURI))
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, "syntax", d.Code)
	assert.Equal(t, "leapsh", d.Source)
	assert.Equal(t, DiagnosticSeverityError, d.Severity)
	assert.Equal(t, "Expected 'fi'", d.Message)
	assert.Equal(t, Position{Line: 1, Character: 0}, d.Range.Start)
}

func TestDiagnostics_ParseErrorKeepsScanWarnings(t *testing.T) {
	s := newTestServer(t, "if a; then echo \"open\n")

	diags := s.getDiagnostics(s.documents.Get(testURI))
	assert.Equal(t, []string{"syntax", "scan"}, codes(diags))
	assert.Equal(t, "unterminated quoted string", diags[1].Message)
	assert.Equal(t, DiagnosticSeverityWarning, diags[1].Severity)
}

func TestDiagnostics_LintFindings(t *testing.T) {
	src := "function build() { make; }\nfunction build() { make all; }\nif ready; then\nfi\n"
	s := newTestServer(t, src)

	diags := s.getDiagnostics(s.documents.Get(testURI))
	got := codes(diags)
	assert.Contains(t, got, "SH001")
	assert.Contains(t, got, "SH002")
	assert.Contains(t, got, "SH004")

	for _, d := range diags {
		if d.Code == "SH002" {
			assert.Equal(t, DiagnosticSeverityError, d.Severity)
			assert.Equal(t, uint32(1), d.Range.Start.Line)
		}
	}
}

func TestDiagnostics_LintConfig(t *testing.T) {
	cfg, err := lint.ParseConfig([]string{"SH001", "scan"}, map[string]string{"SH004": "error"}, "hint")
	require.NoError(t, err)
	s := newTestServer(t, "if ready; then\nfi\necho \"open", WithLintConfig(cfg))

	diags := s.getDiagnostics(s.documents.Get(testURI))
	require.Equal(t, []string{"SH004"}, codes(diags))
	assert.Equal(t, DiagnosticSeverityError, diags[0].Severity)
}

func TestToLSPSeverity(t *testing.T) {
	assert.Equal(t, DiagnosticSeverityError, toLSPSeverity(core.SeverityError))
	assert.Equal(t, DiagnosticSeverityWarning, toLSPSeverity(core.SeverityWarning))
	assert.Equal(t, DiagnosticSeverityInformation, toLSPSeverity(core.SeverityInfo))
	assert.Equal(t, DiagnosticSeverityHint, toLSPSeverity(core.SeverityHint))
	assert.Equal(t, DiagnosticSeverityWarning, toLSPSeverity(core.Severity(42)))
}

func TestDocumentSymbols(t *testing.T) {
	src := `dir=/srv
function deploy() {
  target=$dir/app
  function helper() { echo hi; }
}
if true; then
  mode=fast
fi
`
	s := newTestServer(t, src)
	syms := s.getDocumentSymbols(testURI)

	require.Len(t, syms, 3)
	assert.Equal(t, "dir", syms[0].Name)
	assert.Equal(t, SymbolKindVariable, syms[0].Kind)
	assert.Equal(t, Range{End: Position{Character: 3}}, syms[0].SelectionRange)

	deploy := syms[1]
	assert.Equal(t, "deploy", deploy.Name)
	assert.Equal(t, SymbolKindFunction, deploy.Kind)
	assert.Equal(t, Position{Line: 1, Character: 9}, deploy.SelectionRange.Start)
	assert.Equal(t, Position{Line: 1, Character: 15}, deploy.SelectionRange.End)
	assert.Equal(t, uint32(1), deploy.Range.Start.Line)
	assert.Equal(t, uint32(4), deploy.Range.End.Line)
	require.Len(t, deploy.Children, 2)
	assert.Equal(t, "target", deploy.Children[0].Name)
	assert.Equal(t, "helper", deploy.Children[1].Name)

	assert.Equal(t, "mode", syms[2].Name, "symbols inside control flow stay at the enclosing level")
}

func TestDocumentSymbols_ShortFunctionName(t *testing.T) {
	s := newTestServer(t, "function f() { echo; }\n")
	syms := s.getDocumentSymbols(testURI)
	require.Len(t, syms, 1)
	assert.Equal(t, Position{Character: 9}, syms[0].SelectionRange.Start)
}

func TestDocumentSymbols_Unparsable(t *testing.T) {
	s := newTestServer(t, "function f() {\n")
	syms := s.getDocumentSymbols(testURI)
	assert.NotNil(t, syms)
	assert.Empty(t, syms)

	assert.Empty(t, s.getDocumentSymbols("file:///missing.sh"))
}

func formattingParams(tabSize int) DocumentFormattingParams {
	return DocumentFormattingParams{
		TextDocument: TextDocumentIdentifier{URI: testURI},
		Options:      FormattingOptions{TabSize: tabSize, InsertSpaces: true},
	}
}

func TestFormatting(t *testing.T) {
	src := "if test -f x;then echo   hi;fi\n"
	s := newTestServer(t, src)

	edits := s.getFormattingEdits(formattingParams(4))
	require.Len(t, edits, 1)

	prog, err := parser.Parse(src)
	require.NoError(t, err)
	assert.Equal(t, format.Program(prog, format.Options{Indent: 4}), edits[0].NewText)
	assert.Equal(t, Position{}, edits[0].Range.Start)
	assert.Equal(t, Position{Line: 1, Character: 0}, edits[0].Range.End)

	// Formatting the result again is a no-op.
	s.documents.Update(testURI, edits[0].NewText, 2)
	assert.Empty(t, s.getFormattingEdits(formattingParams(4)))
}

func TestFormatting_TabSizeFallback(t *testing.T) {
	src := "for f in a\ndo\necho $f\ndone\n"
	prog, err := parser.Parse(src)
	require.NoError(t, err)

	for _, tabSize := range []int{0, 99} {
		s := newTestServer(t, src, WithIndent(3))
		edits := s.getFormattingEdits(formattingParams(tabSize))
		require.Len(t, edits, 1)
		assert.Equal(t, format.Program(prog, format.Options{Indent: 3}), edits[0].NewText, "tab size %d", tabSize)
	}
}

func TestFormatting_ParseErrorYieldsNoEdits(t *testing.T) {
	s := newTestServer(t, "while true\ndo\n")
	edits := s.getFormattingEdits(formattingParams(2))
	assert.NotNil(t, edits)
	assert.Empty(t, edits)
}

func TestDetectContext(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected CompletionContextType
	}{
		{"empty document", "", ContextCommand},
		{"line start", "echo a\nde", ContextCommand},
		{"after semicolon", "echo a; de", ContextCommand},
		{"after pipe", "cat x | gr", ContextCommand},
		{"after then", "if a; then de", ContextCommand},
		{"after do", "while a\ndo ", ContextCommand},
		{"after brace", "function f() { ", ContextCommand},
		{"variable", "echo $di", ContextVariable},
		{"braced variable", "echo ${", ContextVariable},
		{"argument", "echo di", ContextUnknown},
		{"word ending in do", "echo undo ", ContextUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDocument(testURI, tt.content, 1)
			end := doc.OffsetToPosition(len(tt.content))
			s := NewServer(strings.NewReader(""), io.Discard)
			assert.Equal(t, tt.expected, s.detectContext(doc, end))
		})
	}
}

func TestScriptNames(t *testing.T) {
	src := "dir=/srv\nfunction deploy() { cd $dir; }\nfor f in a b\ndo\n  echo $f\ndone\necho a=b\nfunction deploy() { :; }\n"
	functions, variables := scriptNames(src)
	assert.Equal(t, []string{"deploy"}, functions)
	assert.Equal(t, []string{"dir", "f"}, variables)
}

func completionLabels(items []CompletionItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Label)
	}
	return out
}

func complete(t *testing.T, content string) []CompletionItem {
	t.Helper()
	s := newTestServer(t, content)
	doc := s.documents.Get(testURI)
	return s.getCompletions(CompletionParams{TextDocumentPositionParams{
		TextDocument: TextDocumentIdentifier{URI: testURI},
		Position:     doc.OffsetToPosition(len(content)),
	}})
}

func TestGetCompletions(t *testing.T) {
	t.Run("keywords and functions at statement start", func(t *testing.T) {
		items := complete(t, "function deploy() { :; }\nfunction fetch() { :; }\nf")
		assert.Equal(t, []string{"fi", "for", "function", "fetch"}, completionLabels(items))
		for _, it := range items {
			if it.Label == "for" {
				assert.Equal(t, CompletionItemKindSnippet, it.Kind)
				assert.Equal(t, InsertTextFormatSnippet, it.InsertTextFormat)
				assert.Contains(t, it.InsertText, "done")
			}
			if it.Label == "fi" {
				assert.Equal(t, CompletionItemKindKeyword, it.Kind)
				assert.Empty(t, it.InsertText)
			}
		}
	})

	t.Run("variables after dollar", func(t *testing.T) {
		items := complete(t, "dir=/srv\ndata=x\necho $d")
		assert.Equal(t, []string{"data", "dir"}, completionLabels(items))
		assert.Equal(t, CompletionItemKindVariable, items[0].Kind)
	})

	t.Run("works while the document does not parse", func(t *testing.T) {
		items := complete(t, "target=/x\nif true; then\n  echo ${t")
		assert.Equal(t, []string{"target"}, completionLabels(items))
	})

	t.Run("arguments complete function names only", func(t *testing.T) {
		items := complete(t, "function deploy() { :; }\nxargs de")
		assert.Equal(t, []string{"deploy"}, completionLabels(items))
	})

	t.Run("unknown document", func(t *testing.T) {
		s := NewServer(strings.NewReader(""), io.Discard)
		items := s.getCompletions(CompletionParams{TextDocumentPositionParams{
			TextDocument: TextDocumentIdentifier{URI: "file:///nope.sh"},
		}})
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}
