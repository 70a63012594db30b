package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"maps"
	"slices"
	"strings"

	"entity-binder/internal/index"
	"entity-binder/internal/match"
	"entity-binder/internal/persistence"
)

const (
	directivePrefix = "orm:"
	tagKey          = "orm"
	accessKey       = "access"
)

// Directive is one parsed orm directive or tag element.
type Directive struct {
	Name  index.DotName
	Value string // only set for access
}

// apply attaches the directive to ci as an annotation.
func (d Directive) apply(ci *index.ClassInfo, kind index.TargetKind, member string) {
	var values map[string]string
	if d.Value != "" {
		values = map[string]string{"value": d.Value}
	}

	ci.Annotate(d.Name, kind, member, values)
}

var classDirectives = map[string]index.DotName{
	"entity":            persistence.Entity,
	"mapped-superclass": persistence.MappedSuperclass,
	"embeddable":        persistence.Embeddable,
}

var memberDirectives = map[string]index.DotName{
	"id":          persistence.Id,
	"embedded-id": persistence.EmbeddedId,
	"transient":   persistence.Transient,
	"-":           persistence.Transient,
}

// ParseDirectives extracts the orm directives of a doc comment. Directive
// comments have no space after the slashes, like //go: directives.
// Malformed directives are reported in the error and left out.
func ParseDirectives(doc *ast.CommentGroup, target index.TargetKind) ([]Directive, error) {
	if doc == nil {
		return nil, nil
	}

	var (
		out  []Directive
		errs []error
	)

	for _, c := range doc.List {
		text, ok := strings.CutPrefix(c.Text, "//"+directivePrefix)
		if !ok {
			continue
		}

		name, value, _ := strings.Cut(strings.TrimSpace(text), " ")
		value = strings.TrimSpace(value)

		d, err := parseElement(name, value, target)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		out = append(out, d)
	}

	return out, errors.Join(errs...)
}

// ParseTag extracts the directives of an orm struct tag value.
func ParseTag(tag string) ([]Directive, error) {
	if tag == "" {
		return nil, nil
	}

	var (
		out  []Directive
		errs []error
	)

	for _, part := range strings.Split(tag, ",") {
		name, value, _ := strings.Cut(strings.TrimSpace(part), "=")

		d, err := parseElement(strings.TrimSpace(name), strings.TrimSpace(value), index.TargetField)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		out = append(out, d)
	}

	return out, errors.Join(errs...)
}

func parseElement(name, value string, target index.TargetKind) (Directive, error) {
	if name == accessKey {
		if value == "" {
			return Directive{}, fmt.Errorf("%s%s requires a value", directivePrefix, accessKey)
		}

		return Directive{Name: persistence.Access, Value: value}, nil
	}

	known := memberDirectives
	if target == index.TargetClass {
		known = classDirectives
	}

	dn, ok := known[name]
	if !ok {
		return Directive{}, fmt.Errorf("unknown %s directive %q%s",
			strings.ToLower(target.String()), name, match.Hint(name, slices.Sorted(maps.Keys(known))))
	}

	if value != "" {
		return Directive{}, fmt.Errorf("directive %q takes no value", name)
	}

	return Directive{Name: dn}, nil
}
