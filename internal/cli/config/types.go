// Package config provides configuration management for the leapsh CLI.
//
// Settings are layered with koanf: built-in defaults, then leapsh.yaml,
// then LEAPSH_* environment variables, then explicitly set flags.
package config

import (
	"strings"
	"time"

	"github.com/leapstack-labs/leapsh/internal/workspace"
	"github.com/leapstack-labs/leapsh/pkg/format"
	"github.com/leapstack-labs/leapsh/pkg/lint"
)

// Config holds all CLI configuration options.
type Config struct {
	Output  string       `koanf:"output"`
	Verbose bool         `koanf:"verbose"`
	Format  FormatConfig `koanf:"format"`
	Lint    LintConfig   `koanf:"lint"`
	Watch   WatchConfig  `koanf:"watch"`
}

// FormatConfig holds settings for `leapsh fmt`.
type FormatConfig struct {
	Indent int `koanf:"indent"`
}

// LintConfig holds rule selection for `leapsh lint` and the language server.
type LintConfig struct {
	Disable     []string          `koanf:"disable"`
	Severity    map[string]string `koanf:"severity"`
	MinSeverity string            `koanf:"min_severity"`
}

// WatchConfig holds settings for `leapsh lint --watch`.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// Default configuration values.
const (
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=text without color
	DefaultMinSeverity = "hint"
	DefaultDebounce    = 200 * time.Millisecond
)

// ConfigFileNames are the file names searched for, in order.
var ConfigFileNames = []string{"leapsh.yaml", "leapsh.yml"}

// FormatOptions converts the format section to formatter options.
func (c FormatConfig) FormatOptions() format.Options {
	return format.Options{Indent: c.Indent}
}

// ToLint converts the lint section to an analyzer configuration.
// Rule IDs are matched case-insensitively since environment keys arrive
// lowercased.
func (c LintConfig) ToLint() (*lint.Config, error) {
	disabled := make([]string, 0, len(c.Disable))
	for _, id := range c.Disable {
		if id = strings.TrimSpace(id); id != "" {
			disabled = append(disabled, CanonicalRuleID(id))
		}
	}
	severities := make(map[string]string, len(c.Severity))
	for id, sev := range c.Severity {
		severities[CanonicalRuleID(id)] = sev
	}
	return lint.ParseConfig(disabled, severities, c.MinSeverity)
}

// CanonicalRuleID spells a rule ID the way diagnostics carry it: rule IDs
// upper case, the syntax and scan pseudo rules lower case.
func CanonicalRuleID(id string) string {
	switch lower := strings.ToLower(id); lower {
	case workspace.SyntaxRuleID, workspace.ScanRuleID:
		return lower
	}
	return strings.ToUpper(id)
}
