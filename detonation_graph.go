package main

import (
	"github.com/paulmach/orb"
)

// BuildDetonationGraph creates the directed detonation graph for a bomb list.
// Bomb i gets an edge to bomb j (i != j) when j's center lies within i's
// blast radius. Candidate targets come from the spatial index and are
// confirmed with the exact distance test, so the graph matches a full
// pairwise comparison.
func BuildDetonationGraph(bombs []Bomb) *Graph {
	graph := &Graph{
		Neighbors: make([][]int, len(bombs)),
	}
	if len(bombs) < 2 {
		return graph
	}

	index := NewSpatialIndex(bombs)

	for i := range bombs {
		for _, j := range index.Candidates(i) {
			if bombs[i].Reaches(bombs[j]) {
				graph.Neighbors[i] = append(graph.Neighbors[i], j)
			}
		}
	}

	return graph
}

// LineStrings returns the graph edges as segments from the detonating bomb's
// center to the target's center, for visualization clients.
// An edge present in both directions is reported once.
func (g *Graph) LineStrings(bombs []Bomb) []orb.LineString {
	lines := make([]orb.LineString, 0, g.EdgeCount())

	// Use a map to avoid duplicate edges for mutual detonation
	seen := make(map[[2]int]bool)

	for i, edges := range g.Neighbors {
		for _, j := range edges {
			key := [2]int{i, j}
			if j < i {
				key = [2]int{j, i}
			}

			if !seen[key] {
				seen[key] = true
				lines = append(lines, orb.LineString{bombs[i].Center(), bombs[j].Center()})
			}
		}
	}

	return lines
}
