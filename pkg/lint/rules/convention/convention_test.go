package convention_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapsh/pkg/lint"
	"github.com/leapstack-labs/leapsh/pkg/lint/rules/convention"
	"github.com/leapstack-labs/leapsh/pkg/parser"
)

func runRule(t *testing.T, src string, rule lint.RuleDef) []lint.Diagnostic {
	t.Helper()
	prog, err := parser.Parse(src)
	require.NoError(t, err)
	return lint.NewAnalyzerWithRules(nil, rule).Analyze(prog)
}

func TestSH003_VariableShadowsFunction(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		count int
	}{
		{"assignment", "function build() { make; }\nbuild=1", 1},
		{"loop variable", "function f() { a; }\nfor f in x; do echo $f; done", 1},
		{"assigned before declared", "deploy=prod\nfunction deploy() { a; }", 1},
		{"different names", "function build() { make; }\ntarget=1", 0},
		{"no functions", "a=1\nb=2", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, runRule(t, tt.src, convention.VariableShadowsFunction), tt.count)
		})
	}
}

func TestSH005_UnusedVariable(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		count int
	}{
		{"unused", "out=build\nmake", 1},
		{"used as argument", "out=build\nmake $out", 0},
		{"used braced", "out=build\necho ${out}", 0},
		{"used in substitution", "n=3\nx=$(seq $n)\necho $x", 0},
		{"used in condition", "ok=yes\nif $ok; then a; fi", 0},
		{"reassigned and unused", "a=1\na=2", 1},
		{"loop variables are not checked", "for i in a; do b; done", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, runRule(t, tt.src, convention.UnusedVariable), tt.count)
		})
	}
}

func TestSH005_Message(t *testing.T) {
	diags := runRule(t, "\ntmp=/tmp/x", convention.UnusedVariable)
	require.Len(t, diags, 1)
	assert.Equal(t, "SH005", diags[0].RuleID)
	assert.Equal(t, `variable "tmp" is assigned but never used`, diags[0].Message)
	assert.Equal(t, 2, diags[0].Pos.Line)
}
