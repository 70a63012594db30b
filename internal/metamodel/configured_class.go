package metamodel

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"entity-binder/internal/diagnostic"
	"entity-binder/internal/index"
	"entity-binder/internal/persistence"
	"entity-binder/internal/typeresolve"
)

// ConfiguredClass is an entity, mapped superclass or embeddable configured
// via annotations.
type ConfiguredClass struct {
	parent              *ConfiguredClass
	info                *index.ClassInfo
	isRoot              bool
	accessType          persistence.AccessType
	hierarchyAccessType persistence.AccessType
	isMappedSuperClass  bool
	isEmbeddable        bool
	properties          []MappedProperty // sorted by name
	byName              map[string]int
}

// classOptions carries per-build settings into class construction.
type classOptions struct {
	strict bool
	diags  *diagnostic.Diagnostics
	log    zerolog.Logger
}

// newConfiguredClass builds a node. parent is the next mapped ancestor and
// must already be constructed.
func newConfiguredClass(
	info *index.ClassInfo,
	parent *ConfiguredClass,
	hierarchyAccessType persistence.AccessType,
	resolved *typeresolve.ResolvedType,
	opts classOptions,
) (*ConfiguredClass, error) {
	c := &ConfiguredClass{
		info:                info,
		parent:              parent,
		isRoot:              parent == nil,
		hierarchyAccessType: hierarchyAccessType,
	}

	isMappedSuperClass, err := assertClassKind(info)
	if err != nil {
		return nil, err
	}

	c.isMappedSuperClass = isMappedSuperClass
	c.isEmbeddable = persistence.HasClassAnnotation(info, persistence.Embeddable)

	c.accessType, err = c.determineClassAccessType()
	if err != nil {
		return nil, err
	}

	properties, err := c.collectMappedProperties(resolved, opts)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(properties, MappedProperty.Compare)

	c.properties = properties
	c.byName = make(map[string]int, len(properties))

	for i, p := range properties {
		if _, ok := c.byName[p.Name()]; ok {
			return nil, annotationErrorf(info.Name, "", "property %q is mapped more than once", p.Name())
		}

		c.byName[p.Name()] = i
	}

	return c, nil
}

// Name returns the class name.
func (c *ConfiguredClass) Name() index.DotName {
	return c.info.Name
}

// ClassInfo returns the structural descriptor of the class.
func (c *ConfiguredClass) ClassInfo() *index.ClassInfo {
	return c.info
}

// Parent returns the next mapped ancestor, or nil for the root.
func (c *ConfiguredClass) Parent() *ConfiguredClass {
	return c.parent
}

// IsRoot reports whether the class is the topmost mapped class.
func (c *ConfiguredClass) IsRoot() bool {
	return c.isRoot
}

// IsMappedSuperClass reports whether the class is a mapped superclass.
func (c *ConfiguredClass) IsMappedSuperClass() bool {
	return c.isMappedSuperClass
}

// IsEmbeddable reports whether the class is marked embeddable. Hierarchies
// only hold entities and mapped superclasses, which may not also be
// embeddable, so the flag is always false on built classes. It is kept for
// embeddable configuration built outside entity hierarchies.
func (c *ConfiguredClass) IsEmbeddable() bool {
	return c.isEmbeddable
}

// AccessType returns the access type used to collect this class's properties.
func (c *ConfiguredClass) AccessType() persistence.AccessType {
	return c.accessType
}

// MappedProperties returns the persistent properties ordered by name.
func (c *ConfiguredClass) MappedProperties() []MappedProperty {
	return slices.Clone(c.properties)
}

// MappedProperty returns the named property.
func (c *ConfiguredClass) MappedProperty(name string) (MappedProperty, bool) {
	i, ok := c.byName[name]
	if !ok {
		return MappedProperty{}, false
	}

	return c.properties[i], true
}

func (c *ConfiguredClass) String() string {
	props := make([]string, len(c.properties))
	for i, p := range c.properties {
		props[i] = p.String()
	}

	return fmt.Sprintf("ConfiguredClass{class=%s, mappedProperties=[%s], classAccessType=%s, isRoot=%t}",
		c.info.Name, strings.Join(props, ", "), c.accessType, c.isRoot)
}

func (c *ConfiguredClass) determineClassAccessType() (persistence.AccessType, error) {
	accessType := c.hierarchyAccessType

	a, err := persistence.ClassAnnotation(c.info, persistence.Access)
	if err != nil {
		return 0, annotationErrorf(c.info.Name, "", "%v", err)
	}

	if a != nil {
		accessType, err = persistence.AccessValue(a)
		if err != nil {
			return 0, annotationErrorf(c.info.Name, "", "%v", err)
		}
	}

	return accessType, nil
}

// collectMappedProperties returns the persistent properties of this class.
func (c *ConfiguredClass) collectMappedProperties(resolved *typeresolve.ResolvedType, opts classOptions) ([]MappedProperty, error) {
	members, ok := resolved.Members(c.info.Name)
	if !ok {
		return nil, assertionf("unable to resolve types for %s", c.info.Name)
	}

	transient := c.transientMembers()

	var properties []MappedProperty

	consumed, err := c.createExplicitlyConfiguredAccessProperties(&properties, members, transient, opts)
	if err != nil {
		return nil, err
	}

	switch c.accessType {
	case persistence.FIELD:
		for i := range c.info.Fields {
			f := &c.info.Fields[i]
			name := fieldProperty(f.Name)
			if !isPersistentField(f) || transient.excludesField(f.Name) || consumed.has(f.Name, name) {
				continue
			}

			p, err := c.createMappedProperty(index.TargetField, f.Name, name, members)
			if err != nil {
				return nil, err
			}

			properties = append(properties, p)
		}

	case persistence.PROPERTY:
		for i := range c.info.Methods {
			m := &c.info.Methods[i]

			name, ok := accessorProperty(c.info, m)
			if !ok || transient.excludesMethod(m.Name, name) || consumed.has(m.Name, name) {
				continue
			}

			p, err := c.createMappedProperty(index.TargetMethod, m.Name, name, members)
			if err != nil {
				return nil, err
			}

			properties = append(properties, p)
		}

	default:
		return nil, assertionf("no access type determined for %s", c.info.Name)
	}

	return properties, nil
}

// createExplicitlyConfiguredAccessProperties materializes the members that
// carry an access annotation overriding the class access type. It returns
// the consumed member and property names.
func (c *ConfiguredClass) createExplicitlyConfiguredAccessProperties(
	properties *[]MappedProperty,
	members *typeresolve.Members,
	transient *transientSet,
	opts classOptions,
) (*consumedSet, error) {
	consumed := newConsumedSet()

	for _, a := range c.info.Annotations[persistence.Access] {
		target := a.Target
		if target.Kind == index.TargetClass {
			continue
		}

		accessType, err := persistence.AccessValue(&a)
		if err != nil {
			return nil, annotationErrorf(c.info.Name, target.Member, "%v", err)
		}

		// an override must name the opposite of the class access type and
		// sit on the member kind of that access type
		if want := c.accessType.Opposite(); accessType != want || target.Kind != memberKind(want) {
			if err := c.ignoreOverride(target, accessType, opts); err != nil {
				return nil, err
			}

			continue
		}

		var propertyName string

		switch target.Kind {
		case index.TargetMethod:
			m := c.info.Method(target.Member)
			if m == nil {
				return nil, annotationErrorf(c.info.Name, target.Member,
					"unable to load method %s of class %s", target.Member, c.info.Name)
			}

			name, ok := accessorProperty(c.info, m)
			if !ok {
				if err := c.skipOverride(target, "method is not a property accessor", opts); err != nil {
					return nil, err
				}

				continue
			}

			if transient.excludesMethod(m.Name, name) {
				if err := c.skipOverride(target, "member is transient", opts); err != nil {
					return nil, err
				}

				continue
			}

			propertyName = name

		case index.TargetField:
			f := c.info.Field(target.Member)
			if f == nil {
				return nil, annotationErrorf(c.info.Name, target.Member,
					"unable to load field %s of class %s", target.Member, c.info.Name)
			}

			if !isPersistentField(f) {
				if err := c.skipOverride(target, "field cannot be persistent", opts); err != nil {
					return nil, err
				}

				continue
			}

			if transient.excludesField(f.Name) {
				if err := c.skipOverride(target, "member is transient", opts); err != nil {
					return nil, err
				}

				continue
			}

			propertyName = fieldProperty(f.Name)
		}

		if consumed.has(target.Member, propertyName) {
			return nil, annotationErrorf(c.info.Name, target.Member,
				"property %q has more than one access override", propertyName)
		}

		p, err := c.createMappedProperty(target.Kind, target.Member, propertyName, members)
		if err != nil {
			return nil, err
		}

		*properties = append(*properties, p)
		consumed.add(target.Member, propertyName)
	}

	return consumed, nil
}

func (c *ConfiguredClass) ignoreOverride(target index.Target, accessType persistence.AccessType, opts classOptions) error {
	reason := fmt.Sprintf("access %s on a %s is not an override for class access type %s",
		accessType, strings.ToLower(target.Kind.String()), c.accessType)

	return c.skipOverride(target, reason, opts)
}

// skipOverride reports an access annotation that does not take effect.
// In strict mode it is a configuration error.
func (c *ConfiguredClass) skipOverride(target index.Target, reason string, opts classOptions) error {
	if opts.strict {
		return annotationErrorf(c.info.Name, target.Member, "access override ignored: %s", reason)
	}

	if opts.diags != nil {
		opts.diags.AddWarning(diagnostic.CodeAccessOverrideIgnored, reason, c.info.Name.String(), target.Member)
	}

	opts.log.Warn().
		Str("class", c.info.Name.String()).
		Str("member", target.Member).
		Str("reason", reason).
		Msg("access override ignored")

	return nil
}

func (c *ConfiguredClass) createMappedProperty(
	kind index.TargetKind,
	member, name string,
	members *typeresolve.Members,
) (MappedProperty, error) {
	var (
		typ string
		ok  bool
	)

	if kind == index.TargetField {
		typ, ok = members.Field(member)
	} else {
		typ, ok = members.Method(member)
	}

	if !ok {
		return MappedProperty{}, assertionf("no resolved type for %s %s of %s",
			strings.ToLower(kind.String()), member, c.info.Name)
	}

	return NewMappedProperty(name, typ), nil
}

// transientMembers collects the names marked transient.
func (c *ConfiguredClass) transientMembers() *transientSet {
	ts := &transientSet{
		fields:           map[string]bool{},
		methods:          map[string]bool{},
		fieldProperties:  map[string]bool{},
		methodProperties: map[string]bool{},
	}

	fields, methods := persistence.MemberAnnotations(c.info, persistence.Transient)

	for _, a := range fields {
		ts.fields[a.Target.Member] = true
		ts.fieldProperties[fieldProperty(a.Target.Member)] = true
	}

	for _, a := range methods {
		ts.methods[a.Target.Member] = true

		if m := c.info.Method(a.Target.Member); m != nil {
			if name, ok := accessorProperty(c.info, m); ok {
				ts.methodProperties[name] = true
			}
		}
	}

	return ts
}

// transientSet excludes members by their own name, and by property name
// across member kinds only: a transient field hides the accessor of its
// property and the other way round, but never another field or accessor.
type transientSet struct {
	fields           map[string]bool
	methods          map[string]bool
	fieldProperties  map[string]bool
	methodProperties map[string]bool
}

func (t *transientSet) excludesField(name string) bool {
	return t.fields[name] || t.methodProperties[fieldProperty(name)]
}

func (t *transientSet) excludesMethod(name, property string) bool {
	return t.methods[name] || t.fieldProperties[property]
}

type consumedSet struct {
	members    map[string]bool
	properties map[string]bool
}

func newConsumedSet() *consumedSet {
	return &consumedSet{members: map[string]bool{}, properties: map[string]bool{}}
}

func (s *consumedSet) add(member, property string) {
	s.members[member] = true
	s.properties[property] = true
}

func (s *consumedSet) has(member, property string) bool {
	return s.members[member] || s.properties[property]
}

// assertClassKind rejects classes combining Entity, MappedSuperclass and
// Embeddable and reports whether the class is a mapped superclass.
func assertClassKind(info *index.ClassInfo) (bool, error) {
	has := func(n index.DotName) bool { return persistence.HasClassAnnotation(info, n) }

	if a, b, ok := persistence.ConflictingKinds(has); ok {
		return false, annotationErrorf(info.Name, "",
			"a class cannot be annotated with both %s and %s", a.Local(), b.Local())
	}

	return has(persistence.MappedSuperclass), nil
}
