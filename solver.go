package main

import "sort"

// Result describes the best chain reaction for a bomb list
type Result struct {
	// MaxDetonated is the size of the largest reachable set
	MaxDetonated int `json:"maxDetonated"`
	// Trigger is the lowest-index bomb achieving MaxDetonated, -1 without bombs
	Trigger int `json:"trigger"`
	// Chain lists the bombs detonated by Trigger in ascending index order
	Chain []int `json:"chain"`
}

// MaxDetonated returns the maximum number of bombs detonated when exactly
// one bomb is triggered manually. It returns 0 for an empty list.
func MaxDetonated(bombs []Bomb) int {
	return Detonate(bombs).MaxDetonated
}

// Detonate evaluates every possible trigger bomb and reports the best one.
// It does not modify bombs and keeps no state between calls.
func Detonate(bombs []Bomb) Result {
	return detonateGraph(BuildDetonationGraph(bombs))
}

func detonateGraph(graph *Graph) Result {
	n := graph.Len()
	best := Result{Trigger: -1, Chain: []int{}}
	if n == 0 {
		return best
	}

	visited := make([]bool, n)
	var order []int

	for start := 0; start < n; start++ {
		for i := range visited {
			visited[i] = false
		}
		order = graph.reachable(start, visited, order)

		if len(order) > best.MaxDetonated {
			best.MaxDetonated = len(order)
			best.Trigger = start
			best.Chain = append(best.Chain[:0], order...)
		}

		// Nothing can beat a chain covering every bomb
		if best.MaxDetonated == n {
			break
		}
	}

	sort.Ints(best.Chain)
	return best
}
