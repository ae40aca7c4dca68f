package codd

import (
	"fmt"
	"strconv"

	"github.com/salmans/codd/internal/dag"
)

// viewDependencyGraph tracks, for each registered view, the views its
// expression references, and rejects a new view whose dependencies would
// make the registry's view-reference relation cyclic. Built on the
// teacher's internal/dag package (itself adapted from cmd/go's dag), one
// node per view id.
type viewDependencyGraph struct {
	g *dag.Graph
}

func newViewDependencyGraph() *viewDependencyGraph {
	return &viewDependencyGraph{g: dag.New()}
}

// addView registers a new view id with the dependency ids collected from
// its expression. Every dependency must already be a node in the graph —
// a view can only reference a view that has already been returned by a
// prior StoreView call — and the resulting graph must remain acyclic.
// Validation happens entirely against a scratch copy of the graph before
// anything is committed to d.g, so a rejected call (spec.md §7: a failed
// StoreView must leave the database unchanged) never leaves a partially
// registered node behind for a later call's id to collide with.
func (d *viewDependencyGraph) addView(id int, deps map[int]bool) error {
	label := strconv.Itoa(id)
	if d.g.HasNode(label) {
		return newCyclicViewError(fmt.Sprintf("view #%d already registered", id))
	}

	// Every dependency must already be a node registered by an earlier
	// call — checked before this view's own node is added, so a
	// same-numbered node from an unrelated graph can't be mistaken for
	// one of this view's own dependencies.
	for depID := range deps {
		depLabel := strconv.Itoa(depID)
		if !d.g.HasNode(depLabel) {
			return newCyclicViewError(fmt.Sprintf("view #%d references unregistered view #%d", id, depID))
		}
	}

	if !d.wouldStayAcyclic(label, deps) {
		return newCyclicViewError(fmt.Sprintf("registering view #%d would introduce a cycle", id))
	}

	d.g.AddNode(label)
	for depID := range deps {
		d.g.AddEdge(strconv.Itoa(depID), label)
	}
	return nil
}

// removeView undoes a previously committed addView(id, ...), for when a
// later step of the StoreView call that registered it fails. label's node
// and every edge touching it are dropped by rebuilding the graph without
// them — dag.Graph exposes no node-removal primitive of its own.
func (d *viewDependencyGraph) removeView(id int) {
	label := strconv.Itoa(id)
	fresh := dag.New()
	for _, n := range d.g.Nodes {
		if n != label {
			fresh.AddNode(n)
		}
	}
	for _, n := range d.g.Nodes {
		if n == label {
			continue
		}
		for _, to := range d.g.Edges(n) {
			if to != label {
				fresh.AddEdge(n, to)
			}
		}
	}
	d.g = fresh
}

// wouldStayAcyclic reports whether adding label, with an incoming edge from
// each of deps, would keep the graph acyclic — checked on a scratch copy so
// the persisted graph (d.g) is left untouched by a rejected registration.
func (d *viewDependencyGraph) wouldStayAcyclic(label string, deps map[int]bool) bool {
	tmp := dag.New()
	for _, n := range d.g.Nodes {
		tmp.AddNode(n)
	}
	for _, n := range d.g.Nodes {
		for _, to := range d.g.Edges(n) {
			tmp.AddEdge(n, to)
		}
	}
	tmp.AddNode(label)
	for depID := range deps {
		tmp.AddEdge(strconv.Itoa(depID), label)
	}
	_, ok := tmp.TopoOrder()
	return ok
}
