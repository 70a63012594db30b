package metamodel

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"entity-binder/internal/diagnostic"
	"entity-binder/internal/index"
	"entity-binder/internal/persistence"
	"entity-binder/internal/typeresolve"
)

// ClassIndex is the read-only view of the annotation index the builder scans.
type ClassIndex interface {
	Annotations(name index.DotName) []index.AnnotationInstance
	ClassByName(name index.DotName) *index.ClassInfo
}

// ClassLoader loads the structural descriptor of a class by name.
type ClassLoader interface {
	ClassForName(name index.DotName) (*index.ClassInfo, error)
}

// TypeResolver resolves member types of a leaf class and its ancestors.
type TypeResolver interface {
	ResolveHierarchy(leaf index.DotName) (*typeresolve.ResolvedType, error)
}

// Result is the outcome of a successful build.
type Result struct {
	Hierarchies []*ConfiguredClassHierarchy
	Diagnostics diagnostic.Diagnostics
}

// Builder creates entity hierarchies from an index. It holds no state
// between calls.
type Builder struct {
	loader   ClassLoader
	resolver TypeResolver
	cfg      Config
}

// NewBuilder creates a Builder.
func NewBuilder(loader ClassLoader, resolver TypeResolver, cfg Config) *Builder {
	return &Builder{
		loader:   loader,
		resolver: resolver,
		cfg:      cfg,
	}
}

// CreateEntityHierarchies returns one hierarchy per inheritance root,
// ordered by root name. Diagnostics are logged and dropped; use Build to
// keep them.
func (b *Builder) CreateEntityHierarchies(idx ClassIndex) ([]*ConfiguredClassHierarchy, error) {
	res, err := b.Build(context.Background(), idx)
	if err != nil {
		return nil, err
	}

	return res.Hierarchies, nil
}

// Build creates the entity hierarchies of idx. Either every hierarchy is
// returned or the first error is.
func (b *Builder) Build(ctx context.Context, idx ClassIndex) (*Result, error) {
	entities := entityNames(idx)

	for _, name := range entities {
		ci := idx.ClassByName(name)
		if ci == nil {
			return nil, fmt.Errorf("%w: %s is annotated but not indexed", ErrClassLoading, name)
		}

		if _, err := assertClassKind(ci); err != nil {
			return nil, err
		}
	}

	groups, err := b.partition(entities)
	if err != nil {
		return nil, err
	}

	hierarchies := make([]*ConfiguredClassHierarchy, len(groups))
	diags := make([]diagnostic.Diagnostics, len(groups))

	if b.cfg.Concurrency < 2 {
		for i, g := range groups {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			hierarchies[i], err = b.buildHierarchy(g, &diags[i])
			if err != nil {
				return nil, err
			}
		}
	} else {
		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(b.cfg.Concurrency)

		for i, g := range groups {
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}

				h, err := b.buildHierarchy(g, &diags[i])
				if err != nil {
					return err
				}

				hierarchies[i] = h

				return nil
			})
		}

		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	res := &Result{Hierarchies: hierarchies}
	for _, d := range diags {
		res.Diagnostics.Merge(d)
	}

	return res, nil
}

// entityNames returns the classes carrying a class-level Entity annotation.
func entityNames(idx ClassIndex) []index.DotName {
	names := lo.FilterMap(idx.Annotations(persistence.Entity), func(a index.AnnotationInstance, _ int) (index.DotName, bool) {
		return a.Target.Class, a.Target.Kind == index.TargetClass
	})

	names = lo.Uniq(names)
	slices.Sort(names)

	return names
}

// hierarchyGroup is the set of mapped classes sharing one root.
type hierarchyGroup struct {
	root    index.DotName
	classes map[index.DotName]*index.ClassInfo
	parents map[index.DotName]index.DotName // empty for the root
}

// partition walks every entity's superclass chain and groups the mapped
// classes by topmost mapped ancestor. Groups are ordered by root name.
func (b *Builder) partition(entities []index.DotName) ([]*hierarchyGroup, error) {
	byRoot := map[index.DotName]*hierarchyGroup{}

	for _, name := range entities {
		chain, err := b.mappedChain(name)
		if err != nil {
			return nil, err
		}

		root := chain[0].Name

		g, ok := byRoot[root]
		if !ok {
			g = &hierarchyGroup{
				root:    root,
				classes: map[index.DotName]*index.ClassInfo{},
				parents: map[index.DotName]index.DotName{},
			}
			byRoot[root] = g
		}

		for i, ci := range chain {
			g.classes[ci.Name] = ci
			if i > 0 {
				g.parents[ci.Name] = chain[i-1].Name
			}
		}
	}

	roots := slices.Sorted(maps.Keys(byRoot))

	return lo.Map(roots, func(r index.DotName, _ int) *hierarchyGroup { return byRoot[r] }), nil
}

// mappedChain returns the mapped classes from the topmost mapped ancestor
// down to name. Unmapped intermediates are skipped; a superclass the loader
// does not know ends the walk.
func (b *Builder) mappedChain(name index.DotName) ([]*index.ClassInfo, error) {
	var chain []*index.ClassInfo

	seen := map[index.DotName]bool{}

	for cur := name; cur != ""; {
		if seen[cur] {
			return nil, annotationErrorf(name, "", "cyclic superclass chain at %s", cur)
		}

		seen[cur] = true

		ci, err := b.loader.ClassForName(cur)
		if err != nil {
			if cur != name && errors.Is(err, index.ErrClassNotFound) {
				break
			}

			return nil, fmt.Errorf("%w: %s: %w", ErrClassLoading, cur, err)
		}

		if persistence.IsMapped(ci) {
			chain = append(chain, ci)
		}

		cur = ci.SuperName
	}

	slices.Reverse(chain)

	return chain, nil
}

// order returns the group's classes so that every class follows its parent.
func (g *hierarchyGroup) order() ([]*index.ClassInfo, error) {
	names, err := orderByParent(slices.Sorted(maps.Keys(g.classes)), g.parents)
	if err != nil {
		return nil, annotationErrorf(g.root, "", "invalid hierarchy: %v", err)
	}

	return lo.Map(names, func(n index.DotName, _ int) *index.ClassInfo { return g.classes[n] }), nil
}

// leaves returns the classes of the group no other class extends, by name.
func (g *hierarchyGroup) leaves() []index.DotName {
	isParent := map[index.DotName]bool{}
	for _, p := range g.parents {
		isParent[p] = true
	}

	leaves := lo.Filter(slices.Sorted(maps.Keys(g.classes)), func(n index.DotName, _ int) bool {
		return !isParent[n]
	})

	return leaves
}

// chain returns leaf and its ancestors within the group.
func (g *hierarchyGroup) chain(leaf index.DotName) []index.DotName {
	var out []index.DotName

	for cur, ok := leaf, true; ok; cur, ok = g.parents[cur] {
		out = append(out, cur)
	}

	return out
}

func (b *Builder) buildHierarchy(g *hierarchyGroup, diags *diagnostic.Diagnostics) (*ConfiguredClassHierarchy, error) {
	ordered, err := g.order()
	if err != nil {
		return nil, err
	}

	defaultAccessType, err := determineDefaultAccessType(g.root, ordered)
	if err != nil {
		return nil, err
	}

	// every class is resolved in the context of the first leaf below it
	contexts := map[index.DotName]*typeresolve.ResolvedType{}

	for _, leaf := range g.leaves() {
		resolved, err := b.resolver.ResolveHierarchy(leaf)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrClassLoading, leaf, err)
		}

		for _, n := range g.chain(leaf) {
			if _, ok := contexts[n]; !ok {
				contexts[n] = resolved
			}
		}
	}

	opts := classOptions{
		strict: b.cfg.StrictAccessOverrides,
		diags:  diags,
		log:    b.cfg.Logger,
	}

	built := make(map[index.DotName]*ConfiguredClass, len(ordered))
	classes := make([]*ConfiguredClass, 0, len(ordered))

	for _, ci := range ordered {
		var parent *ConfiguredClass
		if p, ok := g.parents[ci.Name]; ok {
			parent = built[p]
		}

		c, err := newConfiguredClass(ci, parent, defaultAccessType, contexts[ci.Name], opts)
		if err != nil {
			return nil, err
		}

		built[ci.Name] = c
		classes = append(classes, c)
	}

	b.cfg.Logger.Debug().
		Str("root", g.root.String()).
		Int("classes", len(classes)).
		Stringer("access", defaultAccessType).
		Msg("built entity hierarchy")

	return newConfiguredClassHierarchy(classes, defaultAccessType), nil
}

// determineDefaultAccessType picks the hierarchy access type from an
// explicit class-level access annotation on the root, or else from where the
// identifier is placed.
func determineDefaultAccessType(root index.DotName, ordered []*index.ClassInfo) (persistence.AccessType, error) {
	top := ordered[0]

	a, err := persistence.ClassAnnotation(top, persistence.Access)
	if err != nil {
		return 0, annotationErrorf(top.Name, "", "%v", err)
	}

	if a != nil {
		accessType, err := persistence.AccessValue(a)
		if err != nil {
			return 0, annotationErrorf(top.Name, "", "%v", err)
		}

		return accessType, nil
	}

	for _, ci := range ordered {
		idFields, idMethods := persistence.MemberAnnotations(ci, persistence.Id)
		embFields, embMethods := persistence.MemberAnnotations(ci, persistence.EmbeddedId)
		onField := len(idFields)+len(embFields) > 0
		onMethod := len(idMethods)+len(embMethods) > 0

		switch {
		case onField && onMethod:
			return 0, annotationErrorf(ci.Name, "", "identifier is declared on both a field and a method")
		case onField:
			return persistence.FIELD, nil
		case onMethod:
			return persistence.PROPERTY, nil
		}
	}

	return 0, annotationErrorf(root, "", "unable to determine identifier attribute for entity hierarchy")
}
