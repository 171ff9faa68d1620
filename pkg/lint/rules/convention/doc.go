// Package convention provides lint rules for naming and usage habits.
//
// Rules in this package:
//   - SH003: Variable named after a declared function
//   - SH005: Variable assigned but never read
package convention
