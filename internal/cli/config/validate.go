package config

import (
	"fmt"
	"slices"

	"github.com/leapstack-labs/leapsh/pkg/core"
)

// OutputModes lists the accepted values of the output setting.
var OutputModes = []string{"auto", "text", "json", "yaml"}

// MaxIndent bounds format.indent.
const MaxIndent = 8

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(OutputModes, c.Output) {
		return fmt.Errorf("unknown output mode %q (expected one of %v)", c.Output, OutputModes)
	}
	if c.Format.Indent < 1 || c.Format.Indent > MaxIndent {
		return fmt.Errorf("format.indent must be between 1 and %d, got %d", MaxIndent, c.Format.Indent)
	}
	if c.Lint.MinSeverity != "" {
		if _, ok := core.ParseSeverity(c.Lint.MinSeverity); !ok {
			return fmt.Errorf("lint.min_severity: unknown severity %q", c.Lint.MinSeverity)
		}
	}
	for id, sev := range c.Lint.Severity {
		if _, ok := core.ParseSeverity(sev); !ok {
			return fmt.Errorf("lint.severity.%s: unknown severity %q", id, sev)
		}
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	return nil
}
