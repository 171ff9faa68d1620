package rules

// Import all rule subpackages to register them with the global registry.
// This file triggers all init() functions in the rule packages.
import (
	_ "github.com/leapstack-labs/leapsh/pkg/lint/rules/convention"
	_ "github.com/leapstack-labs/leapsh/pkg/lint/rules/structure"
)
