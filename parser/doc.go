// Package parser loads Swagger 2.0 documents into a generic, order-preserving tree.
//
// Documents are read from local files, readers, or byte slices in YAML or
// JSON. The tree in ParseResult.Data uses map[string]any for objects, []any
// for arrays, and plain Go scalars for leaves, so JSON and YAML copies of the
// same document decode to equal trees. Remote URLs are not fetched.
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(
//		parser.WithFilePath("swagger/swagger.yml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%d paths, %d operations\n", result.Stats.PathCount, result.Stats.OperationCount)
//
// Or create a reusable Parser instance:
//
//	p := parser.New()
//	p.MaxFileSize = 8 << 20
//	result, _ := p.Parse("swagger/swagger.json")
//
// # Key Order
//
// The parser keeps the decoder's node tree next to Data. MarshalOrderedJSON,
// MarshalOrderedJSONIndent, and MarshalOrderedYAML walk both together so
// object keys come out in the order they were read. Keys added after parsing
// follow the original keys in sorted order. Marshal picks the writer by
// format and is what the fixer's callers use to write results back.
//
// # Errors
//
// Syntax errors, empty documents, and non-object roots return
// *oaserrors.ParseError. Inputs over the size limit return
// *oaserrors.ResourceLimitError. Both match the oaserrors sentinels with
// errors.Is.
package parser
