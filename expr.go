package codd

import "fmt"

// Expr is a relational expression over tuples of type T: a value describing
// a query, not a statement that runs one. The family of node kinds is
// closed — Relation, View, Singleton, Select, Project, Product, Join,
// Union, Intersect, Difference — and Expr's method set is unexported so no
// package outside codd can add an eleventh kind, mirroring the "closed tagged
// sum" design called for when the host language has no sealed interfaces.
//
// Every node supports three evaluation modes:
//   - fullEval: tuples derivable from the full (stable ∪ recent) content of
//     every leaf.
//   - recentDelta: tuples newly derivable this round from exactly the
//     recent portion of leaves, combined so each tuple is produced at most
//     once per round.
//   - stableEval: tuples derivable from only the stable portion of leaves.
type Expr[T any] interface {
	fullEval(db *Database) ([]T, error)
	recentDelta(db *Database) ([]T, error)
	stableEval(db *Database) ([]T, error)
	comparator() Comparator[T]
	viewDeps(out map[int]bool)
	fmt.Stringer
}

// relationExpr is the Relation leaf: a handle resolved by name at
// evaluation time rather than by direct reference, so expressions stay
// plain values independent of any one *Database — the stable-identifier
// approach spec.md §9 recommends over compile-time borrowing. db records
// which Database the handle was issued by, so a handle evaluated against a
// different Database is rejected instead of silently resolving against
// whatever same-named relation that other Database happens to have.
type relationExpr[T any] struct {
	name string
	cmp  Comparator[T]
	db   *Database
}

// relationExpr's methods use value receivers, not pointer receivers,
// because Relation embeds relationExpr by value (spec.md's "lightweight
// reference" handle) — a pointer-receiver method set would not be promoted
// to Relation's own value method set, and Relation would silently stop
// satisfying Expr[T].
func (e relationExpr[T]) fullEval(db *Database) ([]T, error) {
	inst, err := e.resolve(db)
	if err != nil {
		return nil, err
	}
	return inst.All(), nil
}

func (e relationExpr[T]) recentDelta(db *Database) ([]T, error) {
	inst, err := e.resolve(db)
	if err != nil {
		return nil, err
	}
	return inst.Recent(), nil
}

func (e relationExpr[T]) stableEval(db *Database) ([]T, error) {
	inst, err := e.resolve(db)
	if err != nil {
		return nil, err
	}
	return inst.Stable(), nil
}

func (e relationExpr[T]) resolve(db *Database) (*Instance[T], error) {
	if e.db != nil && e.db != db {
		return nil, newUnknownRelationError(e.name)
	}
	return getRelationInstance[T](db, e.name)
}

func (e relationExpr[T]) comparator() Comparator[T] { return e.cmp }
func (e relationExpr[T]) viewDeps(out map[int]bool) {}
func (e relationExpr[T]) String() string            { return fmt.Sprintf("Relation(%s)", e.name) }

// viewExpr is the View leaf. Evaluating it reads the view's own
// materialized Instance rather than recursing into the stored expression —
// the caching boundary described in spec.md §4.3. db records which
// Database issued the view, for the same cross-database rejection
// relationExpr does.
type viewExpr[T any] struct {
	id   int
	name string
	cmp  Comparator[T]
	db   *Database
}

// viewExpr's methods are also value receivers, for the same reason as
// relationExpr: View embeds it by value.
func (e viewExpr[T]) fullEval(db *Database) ([]T, error) {
	inst, err := e.resolve(db)
	if err != nil {
		return nil, err
	}
	return inst.All(), nil
}

func (e viewExpr[T]) recentDelta(db *Database) ([]T, error) {
	inst, err := e.resolve(db)
	if err != nil {
		return nil, err
	}
	return inst.Recent(), nil
}

func (e viewExpr[T]) stableEval(db *Database) ([]T, error) {
	inst, err := e.resolve(db)
	if err != nil {
		return nil, err
	}
	return inst.Stable(), nil
}

func (e viewExpr[T]) resolve(db *Database) (*Instance[T], error) {
	if e.db != nil && e.db != db {
		return nil, newUnknownRelationError(e.name)
	}
	return getViewInstance[T](db, e.id)
}

func (e viewExpr[T]) comparator() Comparator[T] { return e.cmp }
func (e viewExpr[T]) viewDeps(out map[int]bool) { out[e.id] = true }
func (e viewExpr[T]) String() string            { return fmt.Sprintf("View(#%d %s)", e.id, e.name) }

// singletonExpr is a literal one-tuple leaf. It behaves as if already
// stable from the database's very first round: fullEval, stableEval and
// recentDelta all unconditionally yield its one value. Re-offering it every
// round is harmless — Instance.Stabilize dedups a value already in stable
// away to nothing — and keeps the node stateless, unlike a once-only flag
// that would misbehave if the same Singleton value were reused as a leaf of
// more than one stored view (see DESIGN.md).
type singletonExpr[T any] struct {
	v   T
	cmp Comparator[T]
}

func (e singletonExpr[T]) fullEval(db *Database) ([]T, error)    { return []T{e.v}, nil }
func (e singletonExpr[T]) recentDelta(db *Database) ([]T, error) { return []T{e.v}, nil }
func (e singletonExpr[T]) stableEval(db *Database) ([]T, error)  { return []T{e.v}, nil }
func (e singletonExpr[T]) comparator() Comparator[T]             { return e.cmp }
func (e singletonExpr[T]) viewDeps(out map[int]bool)             {}
func (e singletonExpr[T]) String() string                        { return fmt.Sprintf("Singleton(%v)", e.v) }

// NewSingleton constructs a literal one-tuple leaf expression.
func NewSingleton[T any](v T, cmp Comparator[T]) Expr[T] {
	return singletonExpr[T]{v: v, cmp: cmp}
}
