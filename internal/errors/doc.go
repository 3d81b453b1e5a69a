// Package errors provides coded, actionable errors for the site tooling.
//
// Errors are organized into categories:
//   - config: site.json / site.yaml problems
//   - store: preference store failures
//   - server: preview server problems
//   - cli: command line usage
//
// Each error has a code (e.g. "E120") that maps to a short message and a
// longer explanation. Contact form validation failures are not errors of
// this package; they are reported per field by package contact.
//
// # Usage
//
//	err := errors.New("E121").
//	    WithDetail("contact.nameMinLength must be at least 1").
//	    WithSuggestion("Set contact.nameMinLength to 2")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E121: Invalid configuration value
//	//
//	//   contact.nameMinLength must be at least 1
//	//
//	//   Hint: Set contact.nameMinLength to 2
package errors
