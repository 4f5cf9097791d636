// Package diagnostic normalizes engine failures into one shape: the stage
// that failed, the taxonomy code of the failure, a human-readable message
// and optional "did you mean" suggestions.
//
// Key capabilities:
//   - FromError: any error to a Diagnostic, through the Staged interface
//   - Diagnostic.String: the one-line "<stage>: <code>: <message>" form
//   - Diagnostics: collections of errors and warnings for batch runs
package diagnostic
