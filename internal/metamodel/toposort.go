package metamodel

import (
	"errors"
	"fmt"
	"slices"

	"entity-binder/internal/index"
)

var errCycle = errors.New("cycle detected")

// orderByParent returns names so that every class follows its parent.
// parents maps a class to its parent and has no entry for roots. Among
// classes that are ready at the same time the smallest name comes first,
// which makes the order deterministic.
func orderByParent(names []index.DotName, parents map[index.DotName]index.DotName) ([]index.DotName, error) {
	children := make(map[index.DotName][]index.DotName, len(names))

	var ready []index.DotName

	for _, n := range names {
		p, ok := parents[n]
		if !ok {
			ready = append(ready, n)
			continue
		}

		if !slices.Contains(names, p) {
			return nil, fmt.Errorf("parent %s of %s is not part of the hierarchy", p, n)
		}

		children[p] = append(children[p], n)
	}

	slices.Sort(ready)

	order := make([]index.DotName, 0, len(names))

	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]

		order = append(order, n)

		for _, c := range children[n] {
			k, _ := slices.BinarySearch(ready, c)
			ready = slices.Insert(ready, k, c)
		}
	}

	if len(order) != len(names) {
		return nil, errCycle
	}

	return order, nil
}
