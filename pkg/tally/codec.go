package tally

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidCount is returned when decoded input holds a count that is not a
	// non-negative integer.
	ErrInvalidCount = errors.New("invalid count")
	// ErrInvalidKey is returned for an empty or non-scalar property name.
	ErrInvalidKey = errors.New("invalid key")
)

// MarshalJSON encodes the map as a JSON object in key order.
func (m Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(m.counts[k]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the document's key order.
func (m *Map) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read tally object: %w", err)
	}
	if tok == nil {
		*m = Map{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("tally must be a JSON object, got %v", tok)
	}

	b := NewBuilder(Map{})
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read tally key: %w", err)
		}
		key := keyTok.(string)
		if key == "" {
			return fmt.Errorf("%w: empty key", ErrInvalidKey)
		}

		valTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read count for %q: %w", key, err)
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return fmt.Errorf("%w for %q: %v", ErrInvalidCount, key, valTok)
		}
		n, err := parseCount(num.String())
		if err != nil {
			return fmt.Errorf("%w for %q: %s", ErrInvalidCount, key, num)
		}
		if b.has(key) {
			return fmt.Errorf("duplicate key %q", key)
		}
		b.Set(key, n)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to close tally object: %w", err)
	}

	*m = b.Map()
	return nil
}

// MarshalYAML encodes the map as a YAML mapping in key order.
func (m Map) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if len(m.keys) == 0 {
		node.Style = yaml.FlowStyle
	}
	for _, k := range m.keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(m.counts[k])},
		)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping, keeping the document's key order.
func (m *Map) UnmarshalYAML(value *yaml.Node) error {
	decoded, err := FromNode(value)
	if err != nil {
		return err
	}
	*m = decoded
	return nil
}

// FromNode decodes a YAML mapping node into a Map. A null node decodes to the
// empty map.
func FromNode(node *yaml.Node) (Map, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return Map{}, nil
	}
	if node.Kind != yaml.MappingNode {
		return Map{}, fmt.Errorf("line %d: tally must be a mapping", node.Line)
	}

	b := NewBuilder(Map{})
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return Map{}, fmt.Errorf("line %d: %w: key must be a scalar", keyNode.Line, ErrInvalidKey)
		}
		key := keyNode.Value
		if key == "" {
			return Map{}, fmt.Errorf("line %d: %w: empty key", keyNode.Line, ErrInvalidKey)
		}
		if valNode.Kind != yaml.ScalarNode || valNode.ShortTag() != "!!int" {
			return Map{}, fmt.Errorf("line %d: %w for %q: %q", valNode.Line, ErrInvalidCount, key, valNode.Value)
		}
		var n int
		if err := valNode.Decode(&n); err != nil || n < 0 {
			return Map{}, fmt.Errorf("line %d: %w for %q: %q", valNode.Line, ErrInvalidCount, key, valNode.Value)
		}
		if b.has(key) {
			return Map{}, fmt.Errorf("line %d: duplicate key %q", keyNode.Line, key)
		}
		b.Set(key, n)
	}
	return b.Map(), nil
}

func (b *Builder) has(key string) bool {
	_, ok := b.counts[key]
	return ok
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}
