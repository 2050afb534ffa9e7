// Package usage decodes usage batch documents into tally maps.
//
// A batch document is YAML (or JSON, which YAML accepts). Its root is either a
// sequence of units or a mapping with a "units" key and an optional "name":
//
//	name: buttons.css
//	units:
//	  - {float: 3, margin-left: 2}
//	  - [vertical-align, font-family]
//
// A unit is a mapping of property to count, or a list of property names that
// is counted with mapreduce.Map. Property names in both forms, and in
// accumulator documents, are normalized with analytics.NormalizeProperty, so
// {Float: 1} and [Float] both count as float.
package usage

import (
	"errors"
	"fmt"

	"github.com/dtnitsch/css-prioritize/pkg/analytics"
	"github.com/dtnitsch/css-prioritize/pkg/mapreduce"
	"github.com/dtnitsch/css-prioritize/pkg/tally"
	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when a document holds no YAML content.
var ErrEmptyDocument = errors.New("empty document")

// Batch is an ordered sequence of per-unit tallies.
type Batch struct {
	Name  string
	Units []tally.Map
}

// Loader decodes batch and accumulator documents.
type Loader struct {
	Analytics *analytics.Analytics
}

// NewLoader returns a Loader that counts name lists with a.
func NewLoader(a *analytics.Analytics) *Loader {
	if a == nil {
		a = &analytics.Analytics{}
	}
	return &Loader{Analytics: a}
}

// LoadBatch decodes a batch document.
func (l *Loader) LoadBatch(data []byte) (Batch, error) {
	root, err := documentRoot(data)
	if err != nil {
		return Batch{}, err
	}

	var batch Batch
	unitsNode := root
	if root.Kind == yaml.MappingNode {
		unitsNode = nil
		for i := 0; i+1 < len(root.Content); i += 2 {
			switch root.Content[i].Value {
			case "name":
				batch.Name = root.Content[i+1].Value
			case "units":
				unitsNode = root.Content[i+1]
			}
		}
		if unitsNode == nil {
			return Batch{}, fmt.Errorf("line %d: batch mapping has no units key", root.Line)
		}
	}
	if unitsNode.Kind == yaml.ScalarNode && unitsNode.ShortTag() == "!!null" {
		return batch, nil
	}
	if unitsNode.Kind != yaml.SequenceNode {
		return Batch{}, fmt.Errorf("line %d: units must be a sequence", unitsNode.Line)
	}

	batch.Units = make([]tally.Map, 0, len(unitsNode.Content))
	for i, unitNode := range unitsNode.Content {
		unit, err := l.decodeUnit(unitNode)
		if err != nil {
			return Batch{}, fmt.Errorf("unit %d: %w", i, err)
		}
		batch.Units = append(batch.Units, unit)
	}
	return batch, nil
}

// LoadAccumulator decodes a document holding a single tally mapping.
func (l *Loader) LoadAccumulator(data []byte) (tally.Map, error) {
	root, err := documentRoot(data)
	if err != nil {
		return tally.Map{}, err
	}
	m, err := tally.FromNode(root)
	if err != nil {
		return tally.Map{}, err
	}
	return l.Analytics.NormalizeTally(m), nil
}

func (l *Loader) decodeUnit(node *yaml.Node) (tally.Map, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.SequenceNode {
		m, err := tally.FromNode(node)
		if err != nil {
			return tally.Map{}, err
		}
		return l.Analytics.NormalizeTally(m), nil
	}

	names := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return tally.Map{}, fmt.Errorf("line %d: property name must be a scalar", item.Line)
		}
		names = append(names, item.Value)
	}
	return mapreduce.Map(names, l.Analytics), nil
}

func documentRoot(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrEmptyDocument
	}
	return doc.Content[0], nil
}
