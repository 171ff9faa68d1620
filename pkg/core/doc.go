// Package core defines the syntax tree shared by the leapsh front end.
//
// This package contains:
//   - Base node interfaces (Node, Stmt, Expr)
//   - Statement and expression node types
//   - Tree traversal (Inspect, Walk)
//   - Diagnostic severities shared by the linter and tooling
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// The parser produces these types; it never consumes them back.
package core
