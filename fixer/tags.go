package fixer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/casdoor/swagfix/internal/pathutil"
)

// CanonicalTagName returns the short display name for a generated tag.
//
// Tags without a '/' or '.' are already short and are returned unchanged,
// which makes the function idempotent. Controller tags map to "api" and
// "root". Anything else keeps the text after the last '/', drops the
// "controllers" package name the doc generator glues onto controller types
// and a trailing "Controller", and splits CamelCase into lowercase words:
//
//	CanonicalTagName("github.com/casdoor/casdoor/controllersApiController")       // "api"
//	CanonicalTagName("github.com/casdoor/casdoor/controllersAccountController")   // "account"
//	CanonicalTagName("github.com/casdoor/casdoor/controllersUserGroupController") // "user group"
//	CanonicalTagName("github.com/x/myTag")                                        // "my tag"
//	CanonicalTagName("already-short")                                             // "already-short"
func CanonicalTagName(tag string) string {
	if !strings.ContainsAny(tag, "/.") {
		return tag
	}
	if strings.Contains(tag, "ApiController") {
		return "api"
	}
	if strings.Contains(tag, "RootController") {
		return "root"
	}

	name := tag[strings.LastIndex(tag, "/")+1:]
	name = trimGluedPackage(name)
	name = strings.TrimSuffix(name, "Controller")
	return strings.TrimSpace(cases.Lower(language.Und).String(splitCamelCase(name)))
}

// controllerPackage is the Go package whose name the doc generator glues
// onto controller type names ("controllersAccountController").
const controllerPackage = "controllers"

// trimGluedPackage drops controllerPackage from a glued controller type name.
// Any other name is returned unchanged.
func trimGluedPackage(name string) string {
	rest, ok := strings.CutPrefix(name, controllerPackage)
	if !ok || rest == "Controller" || !strings.HasSuffix(rest, "Controller") {
		return name
	}
	if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsUpper(r) {
		return name
	}
	return rest
}

// splitCamelCase inserts a space before every uppercase letter except the first character.
func splitCamelCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// fixTags rewrites operation tag lists and root tag registry names to their
// canonical form. List order and length are kept; non-string entries and
// registry entries without a string name pass through.
func fixTags(doc map[string]any, result *FixResult) {
	walkOperations(doc, func(op map[string]any, path *pathutil.PathBuilder) {
		tags, ok := op["tags"].([]any)
		if !ok || len(tags) == 0 {
			return
		}

		path.Push("tags")
		defer path.Pop()
		for i, t := range tags {
			tag, ok := t.(string)
			if !ok {
				continue
			}
			path.PushIndex(i)
			renameTag(tag, func(canonical string) { tags[i] = canonical }, path.String(), result)
			path.Pop()
		}
	})

	registry, ok := doc["tags"].([]any)
	if !ok {
		return
	}
	path := pathutil.New("tags")
	for i, entry := range registry {
		tagObj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name, ok := tagObj["name"].(string)
		if !ok {
			continue
		}
		path.PushIndex(i)
		renameTag(name, func(canonical string) { tagObj["name"] = canonical }, path.Child("name"), result)
		path.Pop()
	}
}

// renameTag applies set and records a fix when tag is not canonical.
func renameTag(tag string, set func(string), location string, result *FixResult) {
	canonical := CanonicalTagName(tag)
	if canonical == tag {
		return
	}
	set(canonical)
	result.TagRenames[tag] = canonical
	result.Fixes = append(result.Fixes, Fix{
		Type:        FixTypeRenamedTag,
		Path:        location,
		Description: "Renamed tag '" + tag + "' to '" + canonical + "'",
		Before:      tag,
		After:       canonical,
	})
}
