package lint

import (
	"fmt"

	"github.com/leapstack-labs/leapsh/pkg/core"
)

// Config controls which rules are enabled and their severity.
type Config struct {
	// DisabledRules contains rule IDs to skip
	DisabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]core.Severity

	// MinSeverity drops diagnostics less severe than this level.
	MinSeverity core.Severity
}

// NewConfig creates a default configuration with all rules enabled and
// every severity reported.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]core.Severity),
		MinSeverity:       core.SeverityHint,
	}
}

// ParseConfig builds a Config from string settings as they appear in
// configuration files and flags. Severities are parsed with
// core.ParseSeverity; an empty minimum keeps every severity.
func ParseConfig(disabled []string, severities map[string]string, minSeverity string) (*Config, error) {
	c := NewConfig()
	for _, id := range disabled {
		c.Disable(id)
	}
	for id, s := range severities {
		sev, ok := core.ParseSeverity(s)
		if !ok {
			return nil, fmt.Errorf("rule %s: unknown severity %q", id, s)
		}
		c.SetSeverity(id, sev)
	}
	if minSeverity != "" {
		sev, ok := core.ParseSeverity(minSeverity)
		if !ok {
			return nil, fmt.Errorf("unknown minimum severity %q", minSeverity)
		}
		c.MinSeverity = sev
	}
	return c, nil
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[ruleID]
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(ruleID string, defaultSeverity core.Severity) core.Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[ruleID]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// Reports returns true if a diagnostic of severity sev passes MinSeverity.
func (c *Config) Reports(sev core.Severity) bool {
	if c == nil {
		return true
	}
	return sev.AtLeast(c.MinSeverity)
}

// Disable disables a rule by ID.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[ruleID] = true
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(ruleID string, severity core.Severity) *Config {
	c.SeverityOverrides[ruleID] = severity
	return c
}
