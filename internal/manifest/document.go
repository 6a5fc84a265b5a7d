package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Document is a JSON object that remembers the order of its keys. It is
// backed by a YAML node tree, which the encoder below writes back as JSON.
type Document struct {
	node *yaml.Node // MappingNode
}

// Parse decodes a JSON object. The token stream is decoded by
// encoding/json, so every JSON escape is honored, and stored as a node tree
// to keep key order.
func Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top-level value must be an object")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing JSON: unexpected data after top-level object")
	}
	return &Document{node: root}, nil
}

func decodeValue(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v is not a string", kt)
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, stringNode(key), v)
			}
			_, err := dec.Token() // '}'
			return n, err
		case '[':
			n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, v)
			}
			_, err := dec.Token() // ']'
			return n, err
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return stringNode(t), nil
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(t.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: t.String()}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t)}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// stringNode is a quoted scalar; plain scalars are reserved for numbers,
// booleans and null.
func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: s}
}

// Keys returns the object keys in document order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.node.Content)/2)
	for i := 0; i < len(d.node.Content); i += 2 {
		keys = append(keys, d.node.Content[i].Value)
	}
	return keys
}

// Has reports whether key is present.
func (d *Document) Has(key string) bool {
	return d.index(key) >= 0
}

// String returns the value of key when it is a string.
func (d *Document) String(key string) (string, bool) {
	i := d.index(key)
	if i < 0 {
		return "", false
	}
	v := d.node.Content[i+1]
	if v.Kind != yaml.ScalarNode || v.Style == 0 {
		return "", false
	}
	return v.Value, true
}

// SetString sets key to a string value. New keys are appended.
func (d *Document) SetString(key, value string) {
	v := stringNode(value)
	if i := d.index(key); i >= 0 {
		d.node.Content[i+1] = v
		return
	}
	d.node.Content = append(d.node.Content, stringNode(key), v)
}

// Delete removes key and reports whether it was present.
func (d *Document) Delete(key string) bool {
	i := d.index(key)
	if i < 0 {
		return false
	}
	d.node.Content = append(d.node.Content[:i], d.node.Content[i+2:]...)
	return true
}

// Object returns the nested object stored under key, or nil.
func (d *Document) Object(key string) *Document {
	i := d.index(key)
	if i < 0 || d.node.Content[i+1].Kind != yaml.MappingNode {
		return nil
	}
	return &Document{node: d.node.Content[i+1]}
}

// DeleteMatching removes every key containing substr and returns the
// removed keys in document order.
func (d *Document) DeleteMatching(substr string) []string {
	var removed []string
	kept := d.node.Content[:0]
	for i := 0; i < len(d.node.Content); i += 2 {
		k, v := d.node.Content[i], d.node.Content[i+1]
		if strings.Contains(k.Value, substr) {
			removed = append(removed, k.Value)
			continue
		}
		kept = append(kept, k, v)
	}
	d.node.Content = kept
	return removed
}

func (d *Document) index(key string) int {
	for i := 0; i < len(d.node.Content); i += 2 {
		if d.node.Content[i].Value == key {
			return i
		}
	}
	return -1
}

// MarshalJSON encodes the document with two-space indentation and a
// trailing newline.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeNode(&buf, d.node, 0); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeNode(buf *bytes.Buffer, n *yaml.Node, depth int) error {
	switch n.Kind {
	case yaml.MappingNode:
		if len(n.Content) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i := 0; i < len(n.Content); i += 2 {
			writeIndent(buf, depth+1)
			if err := writeString(buf, n.Content[i].Value); err != nil {
				return err
			}
			buf.WriteString(": ")
			if err := writeNode(buf, n.Content[i+1], depth+1); err != nil {
				return err
			}
			if i+2 < len(n.Content) {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte('}')
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, item := range n.Content {
			writeIndent(buf, depth+1)
			if err := writeNode(buf, item, depth+1); err != nil {
				return err
			}
			if i+1 < len(n.Content) {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte(']')
	case yaml.ScalarNode:
		// Plain scalars in JSON input are numbers, booleans, or null.
		if n.Style == 0 {
			buf.WriteString(n.Value)
			return nil
		}
		return writeString(buf, n.Value)
	default:
		return fmt.Errorf("unsupported node kind %v at line %d", n.Kind, n.Line)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("  ")
	}
}
