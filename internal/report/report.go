// Package report renders built entity hierarchies as text, YAML or JSON.
package report

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"entity-binder/internal/config"
	"entity-binder/internal/diagnostic"
	"entity-binder/internal/metamodel"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Report is the serializable view of a build.
type Report struct {
	Hierarchies []Hierarchy  `json:"hierarchies"           yaml:"hierarchies"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Hierarchy is one entity hierarchy.
type Hierarchy struct {
	Root          string  `json:"root"           yaml:"root"`
	DefaultAccess string  `json:"default_access" yaml:"default_access"`
	Classes       []Class `json:"classes"        yaml:"classes"`
}

// Class is one configured class.
type Class struct {
	Name             string     `json:"name"                        yaml:"name"`
	Parent           string     `json:"parent,omitempty"            yaml:"parent,omitempty"`
	Access           string     `json:"access"                      yaml:"access"`
	MappedSuperclass bool       `json:"mapped_superclass,omitempty" yaml:"mapped_superclass,omitempty"`
	Embeddable       bool       `json:"embeddable,omitempty"        yaml:"embeddable,omitempty"`
	Properties       []Property `json:"properties"                  yaml:"properties"`
}

// Property is one mapped property.
type Property struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Severity string `json:"severity"         yaml:"severity"`
	Code     string `json:"code"             yaml:"code"`
	Message  string `json:"message"          yaml:"message"`
	Class    string `json:"class,omitempty"  yaml:"class,omitempty"`
	Member   string `json:"member,omitempty" yaml:"member,omitempty"`
}

// New builds a report from hierarchies and diagnostics.
func New(hierarchies []*metamodel.ConfiguredClassHierarchy, diags diagnostic.Diagnostics) *Report {
	r := &Report{
		Hierarchies: lo.Map(hierarchies, func(h *metamodel.ConfiguredClassHierarchy, _ int) Hierarchy {
			return newHierarchy(h)
		}),
		Diagnostics: lo.Map(diags.All(), func(d diagnostic.Diagnostic, _ int) Diagnostic {
			return Diagnostic{
				Severity: d.Severity.String(),
				Code:     d.Code,
				Message:  d.Message,
				Class:    d.Class,
				Member:   d.Member,
			}
		}),
	}

	return r
}

func newHierarchy(h *metamodel.ConfiguredClassHierarchy) Hierarchy {
	out := Hierarchy{
		Root:          h.Root().Name().String(),
		DefaultAccess: h.DefaultAccessType().String(),
	}

	for c := range h.All() {
		class := Class{
			Name:             c.Name().String(),
			Access:           c.AccessType().String(),
			MappedSuperclass: c.IsMappedSuperClass(),
			Embeddable:       c.IsEmbeddable(),
			Properties: lo.Map(c.MappedProperties(), func(p metamodel.MappedProperty, _ int) Property {
				return Property{Name: p.Name(), Type: p.Type()}
			}),
		}

		if p := c.Parent(); p != nil {
			class.Parent = p.Name().String()
		}

		out.Classes = append(out.Classes, class)
	}

	return out
}

// Write renders r to w in the given format.
func Write(w io.Writer, r *Report, format string) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(r)

	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}

		return enc.Close()

	case config.FormatText:
		_, err := io.WriteString(w, r.Text())
		return err

	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// Text renders the report for a terminal.
func (r *Report) Text() string {
	var sb strings.Builder

	for i, h := range r.Hierarchies {
		if i > 0 {
			sb.WriteByte('\n')
		}

		fmt.Fprintf(&sb, "hierarchy %s (default access %s)\n", h.Root, h.DefaultAccess)

		for _, c := range h.Classes {
			fmt.Fprintf(&sb, "  %s%s [%s]\n", c.Name, classSuffix(c), c.Access)

			for _, p := range c.Properties {
				fmt.Fprintf(&sb, "    %s %s\n", p.Name, p.Type)
			}
		}
	}

	if len(r.Diagnostics) > 0 {
		sb.WriteString("\ndiagnostics:\n")

		for _, d := range r.Diagnostics {
			fmt.Fprintf(&sb, "  %s: [%s] %s", d.Severity, d.Code, d.Message)

			if d.Class != "" {
				fmt.Fprintf(&sb, " (%s", d.Class)
				if d.Member != "" {
					sb.WriteString("." + d.Member)
				}
				sb.WriteByte(')')
			}

			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func classSuffix(c Class) string {
	var parts []string

	if c.Parent != "" {
		parts = append(parts, "extends "+c.Parent)
	}

	if c.MappedSuperclass {
		parts = append(parts, "mapped superclass")
	}

	if c.Embeddable {
		parts = append(parts, "embeddable")
	}

	if len(parts) == 0 {
		return ""
	}

	return " (" + strings.Join(parts, ", ") + ")"
}
