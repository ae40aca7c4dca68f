// Copyright 2024 rg0now. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dag

// TopoOrder returns the nodes of g in a topological order (every edge
// from→to appears with from before to) together with ok=true, or ok=false
// if g contains a cycle.
func (g *Graph) TopoOrder() (order []string, ok bool) {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(g.Nodes))
	order = make([]string, 0, len(g.Nodes))

	var visit func(label string) bool
	visit = func(label string) bool {
		switch state[label] {
		case done:
			return true
		case visiting:
			return false
		}
		state[label] = visiting
		for _, next := range g.Edges(label) {
			if !visit(next) {
				return false
			}
		}
		state[label] = done
		order = append(order, label)
		return true
	}

	for _, n := range g.Nodes {
		if !visit(n) {
			return nil, false
		}
	}
	// visit appends a node only after all of its successors, so reverse the
	// post-order to put every edge's source before its target.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, true
}
