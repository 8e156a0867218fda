package main

// Graph is the directed detonation graph: Neighbors[i] lists, in ascending
// order, the bombs directly detonated by bomb i. It never contains self loops.
type Graph struct {
	Neighbors [][]int
}

// Len returns the number of nodes
func (g *Graph) Len() int {
	return len(g.Neighbors)
}

// EdgeCount returns the number of directed edges
func (g *Graph) EdgeCount() int {
	count := 0
	for _, edges := range g.Neighbors {
		count += len(edges)
	}
	return count
}

// Reachable returns every node detonated when start is triggered, start
// included, in visitation order. Each node appears once.
func (g *Graph) Reachable(start int) []int {
	visited := make([]bool, len(g.Neighbors))
	return g.reachable(start, visited, nil)
}

// reachable runs an iterative depth-first search. visited must be all false
// on entry; order is reused as the output buffer.
func (g *Graph) reachable(start int, visited []bool, order []int) []int {
	order = order[:0]
	stack := []int{start}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[node] {
			continue
		}
		visited[node] = true
		order = append(order, node)

		for _, neighbor := range g.Neighbors[node] {
			if !visited[neighbor] {
				stack = append(stack, neighbor)
			}
		}
	}

	return order
}
