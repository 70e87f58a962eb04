// Package swagfix normalizes Swagger (OpenAPI 2.0) documents produced by an
// upstream documentation generator.
//
// The generated documents carry verbose tag identifiers (full controller
// symbol paths), placeholder metadata, "<br>" artifacts in descriptions, and
// a handful of operations whose operationId and response schema are inferred
// wrongly. swagfix rewrites exactly those parts and passes everything else
// through untouched, for both the JSON and the YAML copy of the document.
//
// # Packages
//
//   - parser: load JSON or YAML into an order-preserving generic tree and
//     marshal it back in either format
//   - fixer: the four normalization stages and the correction table
//   - oaserrors: typed errors for programmatic handling
//
// The cmd/swagfix binary wraps these with configuration from .swagfix.yaml
// and SWAGFIX_* environment variables, atomic file writes, and an MCP stdio
// server ("swagfix mcp") exposing the fix and canonical_tag tools.
//
// # Quick Start
//
//	result, err := fixer.FixWithOptions(
//		fixer.WithFilePath("swagger/swagger.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, err := result.ToParseResult().MarshalOrderedJSONIndent("", "    ")
//
// The same pipeline is available on the command line:
//
//	swagfix docs swagger           # fix swagger.json and swagger.yml in place
//	swagfix fix -o out.yaml in.yaml
//	swagfix tag github.com/casdoor/casdoor/controllersAccountController
//
// # Stage Order
//
// Stages always run in this order: metadata, tags, descriptions,
// corrections. Each stage is a no-op when the section it needs is missing.
// Running the pipeline on its own output changes nothing.
package swagfix
