package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"

	"go.yaml.in/yaml/v4"
)

// MarshalOrderedJSON marshals the document to compact JSON with object keys
// in the same order as the source document.
//
// Keys that were added after parsing are appended after the source keys in
// sorted order. Without a source (see NewParseResult) keys are sorted.
// Unchanged numbers keep their source text ("1.0" stays "1.0").
// HTML characters are written as-is rather than \u-escaped.
func (pr *ParseResult) MarshalOrderedJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := marshalNodeAsJSON(&buf, pr.sourceNode, pr.Data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalOrderedJSONIndent marshals the document to indented JSON with
// object keys in source order.
func (pr *ParseResult) MarshalOrderedJSONIndent(prefix, indent string) ([]byte, error) {
	data, err := pr.MarshalOrderedJSON()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalOrderedYAML marshals the document to block-style YAML with mapping
// keys in source order. Scalars left unchanged since a YAML parse keep their
// source text, tag, and quoting.
//
// Example:
//
//	result, _ := parser.ParseWithOptions(parser.WithFilePath("swagger.yml"))
//	out, _ := result.MarshalOrderedYAML()
func (pr *ParseResult) MarshalOrderedYAML() ([]byte, error) {
	orderedNode, err := buildOrderedNode(pr.sourceNode, pr.Data, pr.SourceFormat == SourceFormatYAML)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(orderedNode)
}

// Marshal serializes the document in the given format. JSON is indented
// with jsonIndent and terminated by a newline; YAML ignores jsonIndent.
// SourceFormatUnknown falls back to the result's own SourceFormat, then YAML.
func (pr *ParseResult) Marshal(format SourceFormat, jsonIndent string) ([]byte, error) {
	if format == SourceFormatUnknown || format == "" {
		format = pr.SourceFormat
	}
	switch format {
	case SourceFormatJSON:
		data, err := pr.MarshalOrderedJSONIndent("", jsonIndent)
		if err != nil {
			return nil, fmt.Errorf("parser: marshaling JSON: %w", err)
		}
		return append(data, '\n'), nil
	default:
		data, err := pr.MarshalOrderedYAML()
		if err != nil {
			return nil, fmt.Errorf("parser: marshaling YAML: %w", err)
		}
		return data, nil
	}
}

// HasPreservedOrder reports whether the result carries source key order.
// It is false for results built with NewParseResult.
func (pr *ParseResult) HasPreservedOrder() bool {
	return pr.sourceNode != nil
}

// marshalNodeAsJSON writes data to buf as JSON, taking object key order
// from the matching yaml.Node.
func marshalNodeAsJSON(buf *bytes.Buffer, node *yaml.Node, data any) error {
	if node != nil && node.Kind == yaml.DocumentNode {
		if len(node.Content) > 0 {
			return marshalNodeAsJSON(buf, node.Content[0], data)
		}
		node = nil
	}

	switch val := data.(type) {
	case map[string]any:
		buf.WriteByte('{')

		var sourceKeys []string
		var idx nodeIndex
		if node != nil && node.Kind == yaml.MappingNode {
			sourceKeys = extractKeyOrder(node)
			idx = buildNodeIndex(node)
		}
		keyOrder := mergeKeyOrder(sourceKeys, mapKeys(val))

		first := true
		for _, key := range keyOrder {
			child, exists := val[key]
			if !exists {
				continue // Key was in source but removed from data
			}

			if !first {
				buf.WriteByte(',')
			}
			first = false

			if err := writeJSON(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')

			if err := marshalNodeAsJSON(buf, idx[key], child); err != nil {
				return err
			}
		}

		buf.WriteByte('}')
		return nil

	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			var childNode *yaml.Node
			if node != nil && node.Kind == yaml.SequenceNode && i < len(node.Content) {
				childNode = node.Content[i]
			}
			if err := marshalNodeAsJSON(buf, childNode, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	default:
		if raw, ok := sourceJSONNumber(node, data); ok {
			buf.WriteString(raw)
			return nil
		}
		return writeJSON(buf, data)
	}
}

// buildOrderedNode creates a yaml.Node tree with content ordered according
// to sourceNode but with values from data. keepStyle reuses the quoting of
// unchanged source scalars.
func buildOrderedNode(sourceNode *yaml.Node, data any, keepStyle bool) (*yaml.Node, error) {
	if sourceNode != nil && sourceNode.Kind == yaml.DocumentNode {
		var inner *yaml.Node
		if len(sourceNode.Content) > 0 {
			inner = sourceNode.Content[0]
		}
		child, err := buildOrderedNode(inner, data, keepStyle)
		if err != nil {
			return nil, err
		}
		return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{child}}, nil
	}

	switch val := data.(type) {
	case map[string]any:
		if sourceNode == nil || sourceNode.Kind != yaml.MappingNode {
			return valueToNode(data)
		}

		result := &yaml.Node{
			Kind:    yaml.MappingNode,
			Content: make([]*yaml.Node, 0, len(val)*2),
		}

		keyOrder := mergeKeyOrder(extractKeyOrder(sourceNode), mapKeys(val))
		idx := buildNodeIndex(sourceNode)

		for _, key := range keyOrder {
			child, exists := val[key]
			if !exists {
				continue
			}

			valNode, err := buildOrderedNode(idx[key], child, keepStyle)
			if err != nil {
				return nil, err
			}
			result.Content = append(result.Content, scalarNode("!!str", key), valNode)
		}

		return result, nil

	case []any:
		if sourceNode == nil || sourceNode.Kind != yaml.SequenceNode {
			return valueToNode(data)
		}

		result := &yaml.Node{
			Kind:    yaml.SequenceNode,
			Content: make([]*yaml.Node, 0, len(val)),
		}

		for i, item := range val {
			var childSourceNode *yaml.Node
			if i < len(sourceNode.Content) {
				childSourceNode = sourceNode.Content[i]
			}
			itemNode, err := buildOrderedNode(childSourceNode, item, keepStyle)
			if err != nil {
				return nil, err
			}
			result.Content = append(result.Content, itemNode)
		}

		return result, nil

	default:
		if !unchangedScalar(sourceNode, data) {
			return valueToNode(data)
		}
		node := &yaml.Node{Kind: yaml.ScalarNode, Tag: sourceNode.Tag, Value: sourceNode.Value}
		switch {
		case keepStyle:
			node.Style = sourceNode.Style
		case node.Tag == "!!str":
			return valueToNode(data)
		}
		return node, nil
	}
}

// unchangedScalar reports whether node is a scalar that still decodes to data.
func unchangedScalar(node *yaml.Node, data any) bool {
	if node == nil || node.Kind != yaml.ScalarNode {
		return false
	}
	var v any
	if isTimestampScalar(node) {
		v = node.Value
	} else if err := node.Decode(&v); err != nil {
		return false
	}
	return reflect.DeepEqual(v, data)
}

// sourceJSONNumber returns the source text of an unchanged number when it is
// already valid JSON.
func sourceJSONNumber(node *yaml.Node, data any) (string, bool) {
	if node == nil || node.Kind != yaml.ScalarNode {
		return "", false
	}
	if tag := node.ShortTag(); tag != "!!int" && tag != "!!float" {
		return "", false
	}
	raw := node.Value
	if raw == "" || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) || !json.Valid([]byte(raw)) {
		return "", false
	}
	if !unchangedScalar(node, data) {
		return "", false
	}
	return raw, true
}

// extractKeyOrder returns the keys from a MappingNode in their original order.
func extractKeyOrder(node *yaml.Node) []string {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Kind == yaml.ScalarNode {
			keys = append(keys, node.Content[i].Value)
		}
	}
	return keys
}

// nodeIndex provides O(1) lookup for child nodes in a MappingNode.
type nodeIndex map[string]*yaml.Node

// buildNodeIndex creates an index from key names to value nodes.
func buildNodeIndex(node *yaml.Node) nodeIndex {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	idx := make(nodeIndex, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Kind == yaml.ScalarNode {
			idx[node.Content[i].Value] = node.Content[i+1]
		}
	}
	return idx
}

// mergeKeyOrder returns keys in source order, with any extra keys from data appended (sorted for determinism).
// Duplicate source keys are emitted once.
func mergeKeyOrder(sourceKeys, dataKeys []string) []string {
	seenKeys := make(map[string]bool, len(sourceKeys))
	order := make([]string, 0, len(dataKeys))
	for _, k := range sourceKeys {
		if seenKeys[k] {
			continue
		}
		seenKeys[k] = true
		order = append(order, k)
	}

	var extraKeys []string
	for _, k := range dataKeys {
		if !seenKeys[k] {
			extraKeys = append(extraKeys, k)
		}
	}
	slices.Sort(extraKeys)

	return append(order, extraKeys...)
}

func mapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// writeJSON marshals a value to JSON without HTML escaping and writes it to the buffer.
func writeJSON(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates every value with a newline
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// scalarNode creates a yaml.Node for a scalar value.
func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// yaml11Keywords are plain scalars that YAML 1.1 readers load as booleans
// or null. Strings with these values are written quoted.
var yaml11Keywords = map[string]bool{
	"y": true, "Y": true, "yes": true, "Yes": true, "YES": true,
	"n": true, "N": true, "no": true, "No": true, "NO": true,
	"true": true, "True": true, "TRUE": true,
	"false": true, "False": true, "FALSE": true,
	"on": true, "On": true, "ON": true,
	"off": true, "Off": true, "OFF": true,
	"null": true, "Null": true, "NULL": true, "~": true,
}

// valueToNode converts a Go value to a yaml.Node.
func valueToNode(v any) (*yaml.Node, error) {
	if v == nil {
		return scalarNode("!!null", "null"), nil
	}

	switch val := v.(type) {
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(val)), nil
	case int:
		return scalarNode("!!int", strconv.Itoa(val)), nil
	case int64:
		return scalarNode("!!int", strconv.FormatInt(val, 10)), nil
	case uint64:
		return scalarNode("!!int", strconv.FormatUint(val, 10)), nil
	case float64:
		return scalarNode("!!float", formatFloat(val)), nil
	case string:
		node := scalarNode("!!str", val)
		switch {
		case len(val) > 0 && bytes.ContainsRune([]byte(val), '\n'):
			node.Style = yaml.LiteralStyle
		case yaml11Keywords[val]:
			node.Style = yaml.DoubleQuotedStyle
		}
		return node, nil
	case []any:
		node := &yaml.Node{
			Kind:    yaml.SequenceNode,
			Content: make([]*yaml.Node, 0, len(val)),
		}
		for _, item := range val {
			child, err := valueToNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case map[string]any:
		// Guard against integer overflow: len(val)*2 could overflow for very large maps
		mapLen := len(val)
		if mapLen > math.MaxInt/2 {
			return nil, fmt.Errorf("map size %d exceeds safe conversion limit", mapLen)
		}
		capacity := mapLen * 2
		node := &yaml.Node{
			Kind:    yaml.MappingNode,
			Content: make([]*yaml.Node, 0, capacity),
		}
		// Sort keys for determinism when no source order
		keys := mapKeys(val)
		slices.Sort(keys)
		for _, k := range keys {
			valNode, err := valueToNode(val[k])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, scalarNode("!!str", k), valNode)
		}
		return node, nil
	default:
		// For unknown types, marshal to JSON then decode into the generic tree
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %T to yaml.Node: %w", v, err)
		}
		var result any
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, err
		}
		return valueToNode(result)
	}
}

// formatFloat keeps a fractional marker on whole numbers so a float read
// from YAML is written back as a float.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !bytes.ContainsAny([]byte(s), ".eE") {
		s += ".0"
	}
	return s
}
