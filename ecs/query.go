package ecs

import "slices"

// IntersectEntities returns entity ids present in every set, ascending.
func IntersectEntities(sets ...*SparseSet) []int {
	if len(sets) == 0 {
		return nil
	}
	smallest := sets[0]
	for _, s := range sets {
		if s == nil {
			return nil
		}
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	out := make([]int, 0, smallest.Len())
	for _, id := range smallest.denseEntities {
		keep := true
		for _, s := range sets {
			if s != smallest && !s.Has(id) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}
