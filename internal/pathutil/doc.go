// Package pathutil builds the location strings and references used in fix
// reports, and validates output paths.
//
// [PathBuilder] uses push/pop semantics while a stage walks the document
// and only materializes a string when a fix is recorded:
//
//	var path pathutil.PathBuilder
//	path.Push("paths")
//	path.Push("/api/get-payment")
//	path.Push("get")
//	path.Push("tags")
//	path.PushIndex(0)
//	path.String() // paths./api/get-payment.get.tags[0]
//
// Segments that contain a dot or a bracket are written in quoted bracket
// form so the result stays unambiguous:
//
//	paths["/v1.0/users"].get
//
// [SanitizeOutputPath] cleans a user-supplied output path and refuses to
// write through symlinks.
package pathutil
