package lsp

import (
	"testing"

	"github.com/leapstack-labs/leapsh/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStore_OpenGetClose(t *testing.T) {
	store := NewDocumentStore()

	uri := "file:///scripts/deploy.sh"
	store.Open(uri, "echo hi", 1)

	doc := store.Get(uri)
	require.NotNil(t, doc)
	assert.Equal(t, uri, doc.URI)
	assert.Equal(t, "echo hi", doc.Content)
	assert.Equal(t, 1, doc.Version)

	store.Close(uri)
	assert.Nil(t, store.Get(uri))
}

func TestDocumentStore_Update(t *testing.T) {
	store := NewDocumentStore()

	uri := "file:///scripts/deploy.sh"
	store.Open(uri, "echo 1", 1)
	before := store.Get(uri)

	store.Update(uri, "echo 2\necho 3", 2)

	doc := store.Get(uri)
	assert.Equal(t, "echo 2\necho 3", doc.Content)
	assert.Equal(t, 2, doc.Version)
	assert.Equal(t, []int{0, 7}, doc.Lines)
	assert.Equal(t, "echo 1", before.Content, "earlier snapshots are not mutated")

	store.Update("file:///unknown.sh", "x", 1)
	assert.Nil(t, store.Get("file:///unknown.sh"))
}

func TestDocumentStore_List(t *testing.T) {
	store := NewDocumentStore()

	store.Open("file:///b.sh", "b", 1)
	store.Open("file:///a.sh", "a", 1)

	assert.Equal(t, []string{"file:///a.sh", "file:///b.sh"}, store.List())
}

func TestComputeLineOffsets(t *testing.T) {
	tests := []struct {
		content  string
		expected []int
	}{
		{"", []int{0}},
		{"a", []int{0}},
		{"a\n", []int{0, 2}},
		{"a\nb", []int{0, 2}},
		{"ab\ncd\nef", []int{0, 3, 6}},
		{"\n\n", []int{0, 1, 2}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, computeLineOffsets(tt.content), "content %q", tt.content)
	}
}

func TestDocument_PositionOffsetRoundTrip(t *testing.T) {
	doc := newDocument("file:///x.sh", "if a; then\n  b\nfi", 1)

	tests := []struct {
		pos    Position
		offset int
	}{
		{Position{Line: 0, Character: 0}, 0},
		{Position{Line: 0, Character: 3}, 3},
		{Position{Line: 1, Character: 2}, 13},
		{Position{Line: 2, Character: 0}, 15},
		{Position{Line: 2, Character: 2}, 17},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.offset, doc.PositionToOffset(tt.pos), "PositionToOffset(%v)", tt.pos)
		assert.Equal(t, tt.pos, doc.OffsetToPosition(tt.offset), "OffsetToPosition(%d)", tt.offset)
	}

	assert.Equal(t, 17, doc.PositionToOffset(Position{Line: 9}), "past last line clamps")
	assert.Equal(t, 17, doc.PositionToOffset(Position{Line: 2, Character: 40}), "past line end clamps")
	assert.Equal(t, Position{}, doc.OffsetToPosition(-4))
	assert.Equal(t, Position{Line: 2, Character: 2}, doc.OffsetToPosition(99))
}

func TestDocument_SpanToRange(t *testing.T) {
	doc := newDocument("file:///x.sh", "echo a\nfunction f() {\n  b\n}\n", 1)

	span := token.Position{Line: 2, Column: 1, Offset: 7, End: 27}
	assert.Equal(t, Range{
		Start: Position{Line: 1, Character: 0},
		End:   Position{Line: 3, Character: 1},
	}, doc.SpanToRange(span))

	inverted := token.Position{Offset: 5, End: 2}
	r := doc.SpanToRange(inverted)
	assert.Equal(t, r.Start, r.End)

	assert.Equal(t, Position{Line: 4, Character: 0}, doc.FullRange().End)
}

func TestDocument_GetLine(t *testing.T) {
	doc := newDocument("file:///x.sh", "one\ntwo\nthree", 1)

	assert.Equal(t, "one", doc.GetLine(0))
	assert.Equal(t, "two", doc.GetLine(1))
	assert.Equal(t, "three", doc.GetLine(2))
	assert.Empty(t, doc.GetLine(3))
	assert.Empty(t, doc.GetLine(-1))
}

func TestDocument_GetWordAtPosition(t *testing.T) {
	doc := newDocument("file:///x.sh", "echo $target_dir done", 1)

	word, r := doc.GetWordAtPosition(Position{Line: 0, Character: 8})
	assert.Equal(t, "target_dir", word)
	assert.Equal(t, Range{Start: Position{Character: 6}, End: Position{Character: 16}}, r)

	word, _ = doc.GetWordAtPosition(Position{Line: 0, Character: 21})
	assert.Equal(t, "done", word, "cursor at end of document still finds the word")

	word, _ = doc.GetWordAtPosition(Position{Line: 0, Character: 5})
	assert.Empty(t, word)
}

func TestDocument_GetTextBefore(t *testing.T) {
	doc := newDocument("file:///x.sh", "ls\necho $", 1)

	assert.Equal(t, "ls\necho $", doc.GetTextBefore(Position{Line: 1, Character: 6}))
	assert.Empty(t, doc.GetTextBefore(Position{}))
}

func TestURIConversion(t *testing.T) {
	assert.Equal(t, "/home/me/deploy.sh", URIToPath("file:///home/me/deploy.sh"))
	assert.Equal(t, "/home/me/my scripts/a.sh", URIToPath("file:///home/me/my%20scripts/a.sh"))
	assert.Equal(t, "untitled:1", URIToPath("untitled:1"))

	assert.Equal(t, "file:///home/me/deploy.sh", PathToURI("/home/me/deploy.sh"))
	assert.Equal(t, "file:///already", PathToURI("file:///already"))
	assert.Equal(t, "/home/me/my scripts/a.sh", URIToPath(PathToURI("/home/me/my scripts/a.sh")))
}

func TestIsWordChar(t *testing.T) {
	for _, c := range "azAZ09_" {
		assert.True(t, isWordChar(byte(c)), "%q", c)
	}
	for _, c := range " \t\n.$-{}=" {
		assert.False(t, isWordChar(byte(c)), "%q", c)
	}
}
