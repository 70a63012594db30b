package metamodel

import (
	"iter"
	"slices"
	"strings"

	"entity-binder/internal/persistence"
)

// ConfiguredClassHierarchy is the ordered chain of configured classes from
// the topmost mapped class down to the entity leaves.
type ConfiguredClassHierarchy struct {
	classes           []*ConfiguredClass
	defaultAccessType persistence.AccessType
}

func newConfiguredClassHierarchy(classes []*ConfiguredClass, defaultAccessType persistence.AccessType) *ConfiguredClassHierarchy {
	return &ConfiguredClassHierarchy{
		classes:           classes,
		defaultAccessType: defaultAccessType,
	}
}

// DefaultAccessType returns the access type inherited by every class that
// does not declare its own.
func (h *ConfiguredClassHierarchy) DefaultAccessType() persistence.AccessType {
	return h.defaultAccessType
}

// Root returns the topmost mapped class.
func (h *ConfiguredClassHierarchy) Root() *ConfiguredClass {
	return h.classes[0]
}

// Len returns the number of configured classes.
func (h *ConfiguredClassHierarchy) Len() int {
	return len(h.classes)
}

// Classes returns the classes in root to leaf order.
func (h *ConfiguredClassHierarchy) Classes() []*ConfiguredClass {
	return slices.Clone(h.classes)
}

// All yields the classes in root to leaf order. Each call starts over.
func (h *ConfiguredClassHierarchy) All() iter.Seq[*ConfiguredClass] {
	return func(yield func(*ConfiguredClass) bool) {
		for _, c := range h.classes {
			if !yield(c) {
				return
			}
		}
	}
}

// Iterator returns a fresh forward-only cursor over the classes.
func (h *ConfiguredClassHierarchy) Iterator() *Iterator {
	return &Iterator{classes: h.classes}
}

// Leaves returns the classes no other class in the hierarchy extends.
func (h *ConfiguredClassHierarchy) Leaves() []*ConfiguredClass {
	parents := make(map[*ConfiguredClass]bool, len(h.classes))
	for _, c := range h.classes {
		if c.parent != nil {
			parents[c.parent] = true
		}
	}

	var leaves []*ConfiguredClass

	for _, c := range h.classes {
		if !parents[c] {
			leaves = append(leaves, c)
		}
	}

	return leaves
}

func (h *ConfiguredClassHierarchy) String() string {
	names := make([]string, len(h.classes))
	for i, c := range h.classes {
		names[i] = c.Name().String()
	}

	return "ConfiguredClassHierarchy{defaultAccessType=" + h.defaultAccessType.String() +
		", classes=[" + strings.Join(names, ", ") + "]}"
}

// Iterator walks a hierarchy once.
type Iterator struct {
	classes []*ConfiguredClass
	pos     int
}

// HasNext reports whether Next will return a class.
func (it *Iterator) HasNext() bool {
	return it.pos < len(it.classes)
}

// Next returns the next class, or nil when exhausted.
func (it *Iterator) Next() *ConfiguredClass {
	if !it.HasNext() {
		return nil
	}

	c := it.classes[it.pos]
	it.pos++

	return c
}
