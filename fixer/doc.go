// Package fixer normalizes generated Swagger 2.0 documents.
//
// The fixer runs four stages over the generic document tree produced by the
// parser package, always in this order:
//
//  1. Metadata: replace info with the configured Metadata and set schemes to
//     ["https", "http"] when missing or empty.
//  2. Tags: rewrite verbose generated tags to short names in every
//     operation's tags list and in the root tag registry (see CanonicalTagName).
//  3. Descriptions: strip <br> artifacts from operation descriptions
//     (see SanitizeDescription).
//  4. Corrections: apply the path-keyed CorrectionTable, overwriting existing
//     operationIds and the 200 response schema reference.
//
// Everything the stages do not target passes through unchanged, and running
// the fixer on its own output applies no further fixes. The input format is
// kept in FixResult.SourceFormat so callers can write the result back in the
// same syntax.
//
// # Quick Start
//
// Fix a file using functional options:
//
//	result, err := fixer.FixWithOptions(
//		fixer.WithFilePath("swagger/swagger.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Applied %d fixes\n", result.FixCount)
//	out, _ := result.ToParseResult().Marshal(result.SourceFormat, "    ")
//
// Or use a reusable Fixer instance:
//
//	f := fixer.New()
//	f.Metadata = fixer.Metadata{Version: "1.504.0"} // other fields use defaults
//	result1, _ := f.Fix("swagger/swagger.json")
//	result2, _ := f.Fix("swagger/swagger.yml")
//
// # Mutation
//
// FixParsed and FixDocument deep-copy the input tree unless MutableInput is
// set, so a ParseResult can be fixed more than once. Fix parses its own copy
// and skips the extra copy.
//
// # Related Packages
//
//   - [github.com/casdoor/swagfix/parser] - Parse and serialize documents
//   - [github.com/casdoor/swagfix/oaserrors] - Error types returned by both
package fixer
