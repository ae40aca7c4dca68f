package codd

import (
	"github.com/go-logr/logr"
)

// Database owns a set of named relations and an ordered registry of views,
// and drives the semi-naive stabilization sweep that keeps every view
// current as tuples are inserted. It is not safe for concurrent use — the
// exclusive-access contract is spec.md §5's, not this package's to enforce.
type Database struct {
	log logr.Logger

	relations     map[string]anyInstance
	relationOrder []string

	views    []*viewEntry
	viewDeps *viewDependencyGraph
}

// viewEntry is the type-erased registry slot for one stored view: refresh
// computes the stored expression's recent delta and feeds it into inst,
// closing over the expression's concrete element type at StoreView time so
// the registry itself can stay non-generic.
type viewEntry struct {
	id      int
	name    string
	inst    anyInstance
	refresh func(db *Database) error
}

// Option configures a Database at construction time.
type Option func(*Database)

// WithLogger sets the logger a Database uses for stabilization tracing. The
// default is logr.Discard().
func WithLogger(l logr.Logger) Option {
	return func(db *Database) { db.log = l }
}

// NewDatabase constructs an empty Database.
func NewDatabase(opts ...Option) *Database {
	db := &Database{
		log:       logr.Discard(),
		relations: map[string]anyInstance{},
		viewDeps:  newViewDependencyGraph(),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// AddRelation registers a new, empty relation named name, ordered by cmp.
// It fails with a DuplicateRelationError if name is already registered.
func AddRelation[T any](db *Database, name string, cmp Comparator[T]) (Relation[T], error) {
	if _, ok := db.relations[name]; ok {
		return Relation[T]{}, newDuplicateRelationError(name)
	}
	db.relations[name] = NewInstance[T](cmp)
	db.relationOrder = append(db.relationOrder, name)
	db.log.V(1).Info("relation added", "name", name)
	return Relation[T]{relationExpr: relationExpr[T]{name: name, cmp: cmp, db: db}}, nil
}

// Insert pushes batch into r's pending set. It does not trigger
// stabilization; the next StoreView or Evaluate call will. It fails
// with an UnknownRelationError if r was issued by a different Database.
func Insert[T any](db *Database, r Relation[T], batch []T) error {
	if r.db != nil && r.db != db {
		return newUnknownRelationError(r.name)
	}
	inst, err := getRelationInstance[T](db, r.name)
	if err != nil {
		return err
	}
	inst.Insert(batch)
	db.log.V(2).Info("inserted", "relation", r.name, "count", len(batch))
	return nil
}

// StoreView registers e as a new view at the end of the view registry,
// seeds it with the stable content e already has a right to (so a view
// stored over relations that have already stabilized is not left empty —
// spec.md §8's determinism and view-equivalence properties hold regardless
// of when a view is stored relative to prior evaluations), and runs one
// full stabilization so the view also picks up any not-yet-stable content
// before it is returned. It fails with a CyclicViewError if e transitively
// references a view not yet registered. A failure at any point leaves the
// database exactly as it was before the call: the dependency graph entry and
// view registry slot added along the way are removed again if the seed read
// or the following stabilization fails.
func StoreView[T any](db *Database, e Expr[T]) (View[T], error) {
	deps := map[int]bool{}
	e.viewDeps(deps)
	id := len(db.views)

	// addView only mutates the dependency graph once it has confirmed the
	// registration is valid, so a failure here is mutation-free. It runs
	// before the seed read so a reference to a view this database has not
	// registered is reported as a CyclicViewError.
	if err := db.viewDeps.addView(id, deps); err != nil {
		return View[T]{}, err
	}

	// Read-only; mirrors ViewInstance::initialize's collect_stable step in
	// the original codd crate. A failure here (a panicking predicate
	// somewhere in e) only has the dependency graph entry to undo.
	seed, err := e.stableEval(db)
	if err != nil {
		db.viewDeps.removeView(id)
		return View[T]{}, err
	}

	inst := NewInstance[T](e.comparator())
	inst.SeedStable(seed)
	entry := &viewEntry{id: id, inst: inst}
	entry.refresh = func(db *Database) error {
		delta, err := e.recentDelta(db)
		if err != nil {
			return err
		}
		inst.Insert(delta)
		return nil
	}

	view := View[T]{viewExpr: viewExpr[T]{id: id, name: e.String(), cmp: e.comparator(), db: db}}
	entry.name = view.name

	// Tentatively register the view so its own refresh participates in the
	// sweep below; unwind both this and the dependency graph entry if the
	// sweep fails, so a rejected StoreView leaves no trace for a later
	// call's id to stumble over.
	db.views = append(db.views, entry)
	if err := db.stabilize(); err != nil {
		db.views = db.views[:len(db.views)-1]
		db.viewDeps.removeView(id)
		return View[T]{}, err
	}

	db.log.V(1).Info("view stored", "id", id, "expr", view.name)
	return view, nil
}

// Evaluate drives the database to a fixpoint and returns the deduplicated,
// canonically ordered tuples of e against the stabilized state.
func Evaluate[T any](db *Database, e Expr[T]) (Result[T], error) {
	if err := db.stabilize(); err != nil {
		return Result[T]{}, err
	}
	tuples, err := e.fullEval(db)
	if err != nil {
		return Result[T]{}, err
	}
	return Result[T]{tuples: sortDedup(tuples, e.comparator())}, nil
}

// stabilize repeats the sweep — advance every relation, refresh every view
// by its delta, advance every view — until no instance reports a non-empty
// recent set, per spec.md §4.4. A view's refresh runs a user-supplied
// predicate/projection/combiner that can fail (EvaluationError) partway
// through a round, after earlier relations and views in that same round (or
// an earlier round of the same sweep) have already advanced; spec.md §7
// requires that such a failure leave the database state unchanged, so the
// pre-sweep content of every relation and view is snapshotted up front and
// restored wholesale if any refresh errors.
func (db *Database) stabilize() error {
	relSnaps := make(map[string]instanceState, len(db.relationOrder))
	for _, name := range db.relationOrder {
		relSnaps[name] = db.relations[name].snapshot()
	}
	viewSnaps := make([]instanceState, len(db.views))
	for i, v := range db.views {
		viewSnaps[i] = v.inst.snapshot()
	}
	rollback := func() {
		for name, snap := range relSnaps {
			db.relations[name].restore(snap)
		}
		for i, v := range db.views {
			v.inst.restore(viewSnaps[i])
		}
	}

	round := 0
	for {
		round++
		changed := false

		for _, name := range db.relationOrder {
			if db.relations[name].stabilize() {
				changed = true
			}
		}

		for _, v := range db.views {
			if err := v.refresh(db); err != nil {
				rollback()
				return err
			}
		}

		for _, v := range db.views {
			if v.inst.stabilize() {
				changed = true
			}
		}

		db.log.V(1).Info("stabilization sweep", "round", round, "changed", changed)
		if !changed {
			return nil
		}
	}
}

func getRelationInstance[T any](db *Database, name string) (*Instance[T], error) {
	raw, ok := db.relations[name]
	if !ok {
		return nil, newUnknownRelationError(name)
	}
	inst, ok := raw.(*Instance[T])
	if !ok {
		return nil, newTypeMismatchError(name, "relation was registered with a different element type")
	}
	return inst, nil
}

func getViewInstance[T any](db *Database, id int) (*Instance[T], error) {
	if id < 0 || id >= len(db.views) {
		return nil, newUnknownRelationError("<view>")
	}
	entry := db.views[id]
	inst, ok := entry.inst.(*Instance[T])
	if !ok {
		return nil, newTypeMismatchError(entry.name, "view was registered with a different element type")
	}
	return inst, nil
}

// Result is the opaque outcome of Evaluate: a deduplicated multiset of
// tuples in the engine's canonical order.
type Result[T any] struct {
	tuples []T
}

// Tuples returns the result's tuples in canonical order.
func (r Result[T]) Tuples() []T { return r.tuples }
