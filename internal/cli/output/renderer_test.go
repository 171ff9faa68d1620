package output

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/leapstack-labs/leapsh/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func newTest(mode Mode, tty bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, tty, mode), out, errOut
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode Mode
		want Mode
	}{
		{ModeAuto, ModeText},
		{"", ModeText},
		{ModeText, ModeText},
		{ModeJSON, ModeJSON},
		{ModeYAML, ModeYAML},
		{"bogus", ModeText},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			r, _, _ := newTest(tt.mode, false)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestNewRenderer_BufferIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
	assert.False(t, r.UseColor())
}

func TestUseColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	r, _, _ := newTest(ModeText, true)
	assert.True(t, r.UseColor())

	r, _, _ = newTest(ModeJSON, true)
	assert.False(t, r.UseColor(), "structured output is never colored")

	t.Setenv("NO_COLOR", "1")
	r, _, _ = newTest(ModeText, true)
	assert.False(t, r.UseColor())
}

func TestPlainOutputHasNoANSI(t *testing.T) {
	r, out, errOut := newTest(ModeAuto, false)

	r.Success("formatted 2 files")
	r.Println(r.Styles().Header1.Render("Rules"))
	r.Warning("unterminated quoted string")
	r.Error("parse failed")

	assert.False(t, ansiPattern.MatchString(out.String()))
	assert.False(t, ansiPattern.MatchString(errOut.String()))
	assert.Contains(t, out.String(), "✓ formatted 2 files")
	assert.Contains(t, out.String(), "Rules")
	assert.Contains(t, errOut.String(), "! unterminated quoted string")
	assert.Contains(t, errOut.String(), "✗ parse failed")
}

func TestJSONAndYAML(t *testing.T) {
	v := map[string]any{"name": "greet", "count": 2}

	r, out, _ := newTest(ModeJSON, false)
	ok, err := r.Structured(v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"name":"greet","count":2}`, out.String())

	r, out, _ = newTest(ModeYAML, false)
	ok, err = r.Structured(v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "count: 2\nname: greet\n", out.String())

	r, out, _ = newTest(ModeText, false)
	ok, err = r.Structured(v)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out.String())
}

func TestSeverityLabel(t *testing.T) {
	r, _, _ := newTest(ModeText, false)
	s := r.Styles()
	assert.Equal(t, "error", s.SeverityLabel(core.SeverityError))
	assert.Equal(t, "hint", s.SeverityLabel(core.SeverityHint))
}
