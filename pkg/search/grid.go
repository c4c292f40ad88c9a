// Package search provides hyperparameter access over nested compositions and
// a grid search driver. Paths address parameters through stage names joined
// with the pipeline path separator, e.g. "features__pca__components".
package search

import "sort"

// Grid maps a parameter path to its candidate values.
type Grid map[string][]any

// Assignment is one full parameter configuration drawn from a grid.
type Assignment map[string]any

// Candidates enumerates the cartesian product of the grid. The order is
// deterministic: paths sorted, values in declared order, the last path
// varying fastest.
func (g Grid) Candidates() []Assignment {
	paths := make([]string, 0, len(g))
	for path := range g {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	out := []Assignment{{}}
	for _, path := range paths {
		values := g[path]
		next := make([]Assignment, 0, len(out)*len(values))
		for _, partial := range out {
			for _, v := range values {
				assignment := make(Assignment, len(partial)+1)
				for k, pv := range partial {
					assignment[k] = pv
				}
				assignment[path] = v
				next = append(next, assignment)
			}
		}
		out = next
	}

	return out
}
