// Package lint provides rule-based analysis of parsed shell programs.
//
// # Rule Registration
//
// Rules are registered via init() functions when their package is imported:
//
//	import _ "github.com/leapstack-labs/leapsh/pkg/lint/rules"
//
// # Rule Groups
//
//   - structure: shape of the program (empty bodies, duplicate functions)
//   - convention: naming and usage habits (shadowing, unused variables)
//
// # Configuration
//
// Use Config to control which rules run and how severe their findings are:
//
//	config := lint.NewConfig()
//	config.Disable("SH005")
//	config.SetSeverity("SH001", core.SeverityError)
//
//	diags := lint.NewAnalyzer(config).Analyze(prog)
//
// # Creating Custom Rules
//
//	var MyRule = lint.RuleDef{
//		ID:          "MY01",
//		Name:        "custom.my-rule",
//		Group:       "custom",
//		Description: "My custom rule description",
//		Severity:    core.SeverityWarning,
//		Check:       checkMyRule,
//	}
//
//	func init() {
//		lint.Register(MyRule)
//	}
package lint
