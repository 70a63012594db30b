package descriptor

import (
	"fmt"
	"maps"
	"slices"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// CurrentVersion is the only schema version understood.
const CurrentVersion = "1"

// File represents the root of a YAML descriptor file.
type File struct {
	// Version of the descriptor schema.
	Version string `yaml:"version,omitempty"`

	// Classes lists the described classes.
	Classes []Class `yaml:"classes"`
}

// Class describes one class.
type Class struct {
	// Name is the qualified class name (e.g., "shop.Order").
	Name string `yaml:"name"`

	// Extends names the superclass, if any.
	Extends string `yaml:"extends,omitempty"`

	// TypeParams are the type parameter names of a generic class.
	TypeParams []string `yaml:"type_params,omitempty"`

	// ExtendsArgs are the type arguments passed to the superclass.
	ExtendsArgs []string `yaml:"extends_args,omitempty"`

	Annotations []Annotation `yaml:"annotations,omitempty"`
	Fields      []Field      `yaml:"fields,omitempty"`
	Methods     []Method     `yaml:"methods,omitempty"`
}

// Field describes a declared field.
type Field struct {
	Name        string       `yaml:"name"`
	Type        string       `yaml:"type"`
	Synthetic   bool         `yaml:"synthetic,omitempty"`
	Static      bool         `yaml:"static,omitempty"`
	Annotations []Annotation `yaml:"annotations,omitempty"`
}

// Method describes a declared method.
type Method struct {
	Name        string        `yaml:"name"`
	Params      []string      `yaml:"params,omitempty"`
	Returns     StringOrArray `yaml:"returns,omitempty"`
	Synthetic   bool          `yaml:"synthetic,omitempty"`
	Annotations []Annotation  `yaml:"annotations,omitempty"`
}

// Annotation is a single annotation. In YAML it is either a bare name or a
// mapping with a name key and parameter values.
type Annotation struct {
	Name   string
	Values map[string]string
}

// UnmarshalYAML implements custom YAML unmarshaling for Annotation.
// Accepts:
//   - Bare name: Entity
//   - Mapping: {name: Access, value: FIELD}
func (a *Annotation) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}

		*a = Annotation{Name: name}

		return nil

	case yaml.MappingNode:
		var raw map[string]string
		if err := node.Decode(&raw); err != nil {
			return fmt.Errorf("line %d: annotation values must be scalars: %w", node.Line, err)
		}

		name, ok := raw["name"]
		if !ok {
			return fmt.Errorf("line %d: annotation mapping needs a name key", node.Line)
		}

		delete(raw, "name")

		if len(raw) == 0 {
			raw = nil
		}

		*a = Annotation{Name: name, Values: raw}

		return nil

	default:
		return fmt.Errorf("line %d: expected annotation name or mapping, got %v", node.Line, node.Kind)
	}
}

// MarshalYAML implements custom YAML marshaling for Annotation.
// Outputs a bare name when there are no values.
func (a Annotation) MarshalYAML() (any, error) {
	if len(a.Values) == 0 {
		return a.Name, nil
	}

	node := &yaml.Node{Kind: yaml.MappingNode}
	node.Content = append(node.Content, scalar("name"), scalar(a.Name))

	for _, k := range slices.Sorted(maps.Keys(a.Values)) {
		node.Content = append(node.Content, scalar(k), scalar(a.Values[k]))
	}

	return node, nil
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// StringOrArray is a type that can be unmarshaled from either a string or an array of strings.
type StringOrArray []string

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
// Accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// MarshalYAML implements custom YAML marshaling for StringOrArray.
// Outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// First returns the first element or empty string if empty.
func (s StringOrArray) First() string {
	if v, ok := lo.First([]string(s)); ok {
		return v
	}

	return ""
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return len(s) == 0
}

// IsMultiple returns true if the array has more than one element.
func (s StringOrArray) IsMultiple() bool {
	return len(s) > 1
}
