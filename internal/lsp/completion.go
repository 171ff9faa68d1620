package lsp

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/leapsh/pkg/parser"
	"github.com/leapstack-labs/leapsh/pkg/token"
)

// CompletionContextType describes what kind of completion context we're in.
type CompletionContextType int

// Completion context type constants.
const (
	ContextUnknown  CompletionContextType = iota
	ContextCommand                        // Start of a statement
	ContextVariable                       // After "$" or "${"
)

// keywordSnippets expand statement keywords to their full shape.
var keywordSnippets = map[string]string{
	"if":       "if ${1:condition}; then\n\t$0\nfi",
	"for":      "for ${1:name} in ${2:items}\ndo\n\t$0\ndone",
	"while":    "while ${1:condition}\ndo\n\t$0\ndone",
	"function": "function ${1:name}() {\n\t$0\n}",
}

// keywordCompletions returns every keyword, with snippets for those that
// open a statement.
func keywordCompletions(prefix string) []CompletionItem {
	var items []CompletionItem
	for _, kw := range token.Keywords() {
		if !strings.HasPrefix(kw, prefix) {
			continue
		}
		item := CompletionItem{Label: kw, Kind: CompletionItemKindKeyword, Detail: "keyword"}
		if snippet, ok := keywordSnippets[kw]; ok {
			item.Kind = CompletionItemKindSnippet
			item.InsertText = snippet
			item.InsertTextFormat = InsertTextFormatSnippet
		}
		items = append(items, item)
	}
	return items
}

// scriptNames collects declared function names and assigned or loop
// variables. It works from tokens rather than the tree so that documents
// which do not parse mid-edit still complete.
func scriptNames(content string) (functions, variables []string) {
	tokens := parser.Tokenize(content)
	seenFn := map[string]bool{}
	seenVar := map[string]bool{}

	for i := 0; i+1 < len(tokens); i++ {
		tok, next := tokens[i], tokens[i+1]
		switch {
		case tok.Type == token.FUNCTION && next.Type == token.WORD:
			if !seenFn[next.Literal] {
				seenFn[next.Literal] = true
				functions = append(functions, next.Literal)
			}
		case tok.Type == token.FOR && next.Type == token.WORD,
			tok.Type == token.WORD && next.Type == token.WORD && next.Literal == "=" && startsStatement(tokens, i):
			name := tok.Literal
			if tok.Type == token.FOR {
				name = next.Literal
			}
			if !seenVar[name] {
				seenVar[name] = true
				variables = append(variables, name)
			}
		}
	}

	sort.Strings(functions)
	sort.Strings(variables)
	return functions, variables
}

// startsStatement reports whether tokens[i] is the first token of a statement.
func startsStatement(tokens []token.Token, i int) bool {
	if i == 0 {
		return true
	}
	return tokens[i-1].IsOneOf(token.NEWLINE, token.SEMICOLON, token.PIPE, token.LBRACE,
		token.THEN, token.ELSE, token.DO, token.COMMENT)
}

// getCompletions returns completion items for the given position.
func (s *Server) getCompletions(params CompletionParams) []CompletionItem {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return []CompletionItem{}
	}

	ctx := s.detectContext(doc, params.Position)
	prefix := s.extractPrefix(doc, params.Position)
	functions, variables := scriptNames(doc.Content)

	items := []CompletionItem{}

	switch ctx {
	case ContextVariable:
		for _, name := range variables {
			if strings.HasPrefix(name, prefix) && name != prefix {
				items = append(items, CompletionItem{Label: name, Kind: CompletionItemKindVariable, Detail: "variable"})
			}
		}

	case ContextCommand:
		items = append(items, keywordCompletions(prefix)...)
		for _, name := range functions {
			if strings.HasPrefix(name, prefix) {
				items = append(items, CompletionItem{Label: name, Kind: CompletionItemKindFunction, Detail: "function"})
			}
		}

	default:
		for _, name := range functions {
			if strings.HasPrefix(name, prefix) {
				items = append(items, CompletionItem{Label: name, Kind: CompletionItemKindFunction, Detail: "function"})
			}
		}
	}

	return items
}

// detectContext determines the completion context at the given position.
func (s *Server) detectContext(doc *Document, pos Position) CompletionContextType {
	before := doc.GetTextBefore(pos)
	word := s.extractPrefix(doc, pos)
	rest := before[:len(before)-len(word)]

	if strings.HasSuffix(rest, "$") || strings.HasSuffix(rest, "${") {
		return ContextVariable
	}

	// Statement start: only separators or opening keywords before the word.
	trimmed := strings.TrimRight(rest, " \t")
	if trimmed == "" {
		return ContextCommand
	}
	switch trimmed[len(trimmed)-1] {
	case '\n', ';', '|', '{', '(', '&':
		return ContextCommand
	}
	for _, kw := range []string{"then", "else", "do"} {
		if strings.HasSuffix(trimmed, kw) {
			head := trimmed[:len(trimmed)-len(kw)]
			if head == "" || !isWordChar(head[len(head)-1]) {
				return ContextCommand
			}
		}
	}

	return ContextUnknown
}

// extractPrefix gets the word being typed at the cursor position.
func (s *Server) extractPrefix(doc *Document, pos Position) string {
	before := doc.GetTextBefore(pos)
	if len(before) == 0 {
		return ""
	}

	// Find the start of the current word
	start := len(before)
	for start > 0 && isWordChar(before[start-1]) {
		start--
	}

	return before[start:]
}
