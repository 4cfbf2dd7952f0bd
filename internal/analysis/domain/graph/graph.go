// Package graph analyzes the task dependency graph for circular chains.
package graph

import "slices"

// Node is a vertex in the dependency graph: a task id and the ids it
// depends on. Dependency ids that do not correspond to any node are ignored
// during traversal.
type Node struct {
	ID        int64
	DependsOn []int64
}

// visitation states for the depth-first traversal.
const (
	unvisited = iota
	onPath
	resolved
)

// DetectCycles runs a depth-first traversal from every unvisited node and
// records one cycle per back edge encountered, in discovery order. Each cycle
// is the slice of the current path from the revisited node through the current
// node, with the revisited node repeated at the end.
//
// This is deliberately a back-edge enumeration, not an exhaustive elementary
// cycle enumeration: a node may appear in several reported cycles, but each
// back edge yields exactly one. Traversal follows input order, so the output
// is deterministic for a given node slice. Duplicate node ids keep their first
// position; the last declaration of their dependency list wins.
func DetectCycles(nodes []Node) (bool, [][]int64) {
	adjacency := make(map[int64][]int64, len(nodes))
	order := make([]int64, 0, len(nodes))
	for _, n := range nodes {
		if _, seen := adjacency[n.ID]; !seen {
			order = append(order, n.ID)
		}
		adjacency[n.ID] = n.DependsOn
	}

	state := make(map[int64]int, len(adjacency))
	stack := make([]int64, 0, len(adjacency))
	var cycles [][]int64

	var visit func(id int64)
	visit = func(id int64) {
		switch state[id] {
		case onPath:
			// Back edge: close the loop from the node's first occurrence
			// on the current path.
			if i := slices.Index(stack, id); i >= 0 {
				cycle := make([]int64, 0, len(stack)-i+1)
				cycle = append(cycle, stack[i:]...)
				cycle = append(cycle, id)
				cycles = append(cycles, cycle)
			}
			return
		case resolved:
			return
		}

		state[id] = onPath
		stack = append(stack, id)
		for _, dep := range adjacency[id] {
			if _, known := adjacency[dep]; known {
				visit(dep)
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = resolved
	}

	for _, id := range order {
		if state[id] == unvisited {
			visit(id)
		}
	}

	return len(cycles) > 0, cycles
}
