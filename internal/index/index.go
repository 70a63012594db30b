package index

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrClassNotFound is returned by ClassForName for names absent from the index.
var ErrClassNotFound = errors.New("class not found")

// Index is an immutable snapshot of indexed classes.
type Index struct {
	classes     map[DotName]*ClassInfo
	annotations map[DotName][]AnnotationInstance
	names       []DotName // sorted, for deterministic iteration
}

// ClassByName returns the indexed class, or nil.
func (i *Index) ClassByName(name DotName) *ClassInfo {
	return i.classes[name]
}

// ClassForName implements class loading on top of the index: the returned
// descriptor is the only structural view of a class the core ever sees.
func (i *Index) ClassForName(name DotName) (*ClassInfo, error) {
	ci := i.classes[name]
	if ci == nil {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
	}

	return ci, nil
}

// Annotations returns every instance of the named annotation across all
// indexed classes, ordered by class name.
func (i *Index) Annotations(name DotName) []AnnotationInstance {
	return i.annotations[name]
}

// KnownClasses returns all indexed classes ordered by name.
func (i *Index) KnownClasses() []*ClassInfo {
	out := make([]*ClassInfo, 0, len(i.names))
	for _, n := range i.names {
		out = append(out, i.classes[n])
	}

	return out
}

// Len returns the number of indexed classes.
func (i *Index) Len() int {
	return len(i.names)
}

// Indexer accumulates classes into an Index.
type Indexer struct {
	classes map[DotName]*ClassInfo
}

// NewIndexer creates an empty Indexer.
func NewIndexer() *Indexer {
	return &Indexer{classes: make(map[DotName]*ClassInfo)}
}

// Index adds a class. Class names must be unique.
func (x *Indexer) Index(ci *ClassInfo) error {
	if ci == nil || ci.Name == "" {
		return errors.New("class has no name")
	}

	if _, ok := x.classes[ci.Name]; ok {
		return fmt.Errorf("class %s indexed twice", ci.Name)
	}

	if ci.Annotations == nil {
		ci.Annotations = make(map[DotName][]AnnotationInstance)
	}

	x.classes[ci.Name] = ci

	return nil
}

// Complete builds the immutable Index. The Indexer must not be reused.
func (x *Indexer) Complete() *Index {
	idx := &Index{
		classes:     x.classes,
		annotations: make(map[DotName][]AnnotationInstance),
		names:       slices.Sorted(maps.Keys(x.classes)),
	}

	for _, n := range idx.names {
		ci := idx.classes[n]
		for _, an := range slices.Sorted(maps.Keys(ci.Annotations)) {
			idx.annotations[an] = append(idx.annotations[an], ci.Annotations[an]...)
		}
	}

	x.classes = nil

	return idx
}

// Annotate attaches an annotation to the class or one of its members and
// returns the class for chaining. It is used by index producers.
func (c *ClassInfo) Annotate(name DotName, kind TargetKind, member string, values map[string]string) *ClassInfo {
	if c.Annotations == nil {
		c.Annotations = make(map[DotName][]AnnotationInstance)
	}

	c.Annotations[name] = append(c.Annotations[name], AnnotationInstance{
		Name:   name,
		Target: Target{Kind: kind, Class: c.Name, Member: member},
		Values: values,
	})

	return c
}

// Merge indexes the classes of several indexes into one. A class present in
// more than one of them is an error.
func Merge(indexes ...*Index) (*Index, error) {
	x := NewIndexer()

	for _, idx := range indexes {
		for _, ci := range idx.KnownClasses() {
			if err := x.Index(ci); err != nil {
				return nil, err
			}
		}
	}

	return x.Complete(), nil
}
