package dag

import (
	"slices"
)

// TopologicalSort returns a linear ordering of all node IDs such that for
// every edge u→v, u appears before v. The ordering is deterministic: when
// several nodes are simultaneously ready, the smallest ID is placed first.
//
// Returns ErrGraphHasCycle if the graph contains a cycle (in which case no
// complete ordering exists).
//
// Runs in O((N+E) log N) time using Kahn's algorithm with a sorted frontier.
func (d *DAG) TopologicalSort() ([]string, error) {
	indegree := make(map[string]int, len(d.nodes))
	for id := range d.nodes {
		indegree[id] = len(d.incoming[id])
	}

	// Frontier of ready nodes, kept sorted descending so the smallest ID
	// can be popped from the tail in O(1).
	var ready []string
	for id, deg := range indegree {
		if deg == 0 {
			ready = append(ready, id)
		}
	}
	slices.SortFunc(ready, reverseCompare)

	order := make([]string, 0, len(d.nodes))
	for len(ready) > 0 {
		id := ready[len(ready)-1]
		ready = ready[:len(ready)-1]
		order = append(order, id)

		released := false
		for _, child := range d.outgoing[id] {
			indegree[child]--
			if indegree[child] == 0 {
				ready = append(ready, child)
				released = true
			}
		}
		if released {
			slices.SortFunc(ready, reverseCompare)
		}
	}

	if len(order) != len(d.nodes) {
		return nil, ErrGraphHasCycle
	}
	return order, nil
}

func reverseCompare(a, b string) int {
	switch {
	case a < b:
		return 1
	case a > b:
		return -1
	default:
		return 0
	}
}

// Ancestors returns the set of all nodes from which the target is reachable,
// excluding the target itself. Returns an empty set for unknown nodes.
//
// Runs in O(N+E) time using reverse breadth-first search.
func (d *DAG) Ancestors(target string) map[string]struct{} {
	seen := make(map[string]struct{})
	queue := append([]string(nil), d.incoming[target]...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		queue = append(queue, d.incoming[id]...)
	}
	return seen
}
