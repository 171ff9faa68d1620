// Package rules registers every built-in shell lint rule.
//
//	import _ "github.com/leapstack-labs/leapsh/pkg/lint/rules"
//
// Structure rules:
//   - SH001: Empty Body - a then, else, loop or function body has no statements
//   - SH002: Duplicate Function - a function name is declared twice
//   - SH004: Constant Condition - an if or while condition is a bare word
//
// Convention rules:
//   - SH003: Variable Shadows Function - a variable reuses a function name
//   - SH005: Unused Variable - an assigned variable is never read
package rules
