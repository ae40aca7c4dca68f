package codd

// Instance holds the three-set staged content of a relation or view: tuples
// arrive in pending, roll into recent for one round so deltas can be
// computed against exactly the new tuples, then settle into stable.
//
// Invariants (spec.md §3): recent and stable are disjoint; pending may still
// hold tuples already in recent or stable until Stabilize drops them; each
// set is deduplicated internally; recent and stable are kept sorted so
// joins can merge them linearly.
type Instance[T any] struct {
	cmp     Comparator[T]
	pending []T
	recent  []T
	stable  []T
}

// NewInstance creates an empty Instance ordered by cmp.
func NewInstance[T any](cmp Comparator[T]) *Instance[T] {
	return &Instance[T]{cmp: cmp}
}

// Insert adds batch to pending, deduplicated against itself. Duplicates
// already present in recent or stable are dropped later, at Stabilize
// time, not here.
func (in *Instance[T]) Insert(batch []T) {
	if len(batch) == 0 {
		return
	}
	items := append([]T(nil), batch...)
	items = sortDedup(items, in.cmp)
	in.pending = mergeSortedDedup(in.pending, items, in.cmp)
}

// Stabilize advances the instance by one step: every tuple in recent moves
// into stable (deduplicated against stable), pending is deduplicated
// against the new stable set and becomes the new recent. It returns true
// iff the new recent set is non-empty — an instance "is changing" while
// successive calls keep returning true.
func (in *Instance[T]) Stabilize() bool {
	if len(in.recent) > 0 {
		in.stable = mergeSortedDedup(in.stable, in.recent, in.cmp)
		in.recent = nil
	}

	if len(in.pending) > 0 {
		in.recent = diffSorted(in.pending, in.stable, in.cmp)
		in.pending = nil
	}

	return len(in.recent) > 0
}

// Recent returns the tuples new in the current evaluation round. The
// returned slice must not be mutated.
func (in *Instance[T]) Recent() []T { return in.recent }

// Stable returns the tuples already observed by every dependent view. The
// returned slice must not be mutated.
func (in *Instance[T]) Stable() []T { return in.stable }

// All returns recent ∪ stable.
func (in *Instance[T]) All() []T {
	return mergeSortedDedup(in.stable, in.recent, in.cmp)
}

// SeedStable primes the instance's stable set directly from tuples already
// known to be stable elsewhere, bypassing the pending/recent staging. This
// is how a newly stored view adopts the already-stabilized content of its
// expression at registration time (spec.md §4.3, mirroring
// ViewInstance::initialize's collect_stable step in the original codd
// crate), instead of waiting for a subsequent delta to reintroduce it.
func (in *Instance[T]) SeedStable(tuples []T) {
	if len(tuples) == 0 {
		return
	}
	in.stable = mergeSortedDedup(in.stable, sortDedup(append([]T(nil), tuples...), in.cmp), in.cmp)
}

// anyInstance is the type-erased view of Instance used by the database's
// heterogeneous relation/view registry, mirroring DynInstance in the
// original codd crate's database/instance.rs.
type anyInstance interface {
	stabilize() bool
	snapshot() instanceState
	restore(instanceState)
}

func (in *Instance[T]) stabilize() bool { return in.Stabilize() }

// instanceState is an opaque, type-erased capture of one Instance[T]'s
// staged slices, used by Database.stabilize to roll every relation and view
// back to its pre-sweep content when a round fails partway through (spec.md
// §7: an evaluation-time error must leave the database state unchanged).
// The three staged slices are never mutated in place after being set — only
// replaced wholesale by mergeSortedDedup/diffSorted — so copying the struct
// by value is a sufficient snapshot that copies no tuples.
type instanceState struct {
	state any
}

func (in *Instance[T]) snapshot() instanceState {
	return instanceState{state: *in}
}

func (in *Instance[T]) restore(s instanceState) {
	*in = s.state.(Instance[T])
}
