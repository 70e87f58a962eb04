// Package oaserrors provides structured error types for the swagfix library.
//
// Import path: github.com/casdoor/swagfix/oaserrors
//
// # Error Types
//
//   - [ParseError]: the document could not be read as a JSON/YAML object
//   - [ResourceLimitError]: the input exceeded a configured size limit
//   - [ConfigError]: an option, config value, or correction table is invalid
//   - [WriteError]: a fixed document could not be written
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//   - [ErrWrite]: Matches any [WriteError]
//
// # Usage Examples
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("swagger.yml"))
//	if errors.Is(err, oaserrors.ErrParse) {
//	    // the document is malformed; nothing was written
//	}
//
//	var werr *oaserrors.WriteError
//	if errors.As(err, &werr) {
//	    fmt.Printf("could not write %s copy to %s\n", werr.Format, werr.Path)
//	}
//
// All error types support chaining via the Cause field and Unwrap().
package oaserrors
