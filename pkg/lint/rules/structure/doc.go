// Package structure provides lint rules for program structure.
//
// Rules in this package:
//   - SH001: Empty then, else, loop or function body
//   - SH002: Function declared more than once
//   - SH004: Constant if or while condition
package structure
