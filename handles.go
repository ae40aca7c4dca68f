package codd

// Relation is a named handle bound to an Instance(T) owned by a Database.
// It is itself an expression: evaluating it yields the full content of its
// instance, so relations compose directly into larger expressions without
// an explicit "leaf" constructor. It embeds relationExpr for the Expr[T]
// method set, including the issuing Database it is checked against on use.
type Relation[T any] struct {
	relationExpr[T]
}

// Name returns the relation's database-scoped identifier.
func (r Relation[T]) Name() string { return r.name }

// View is a handle into a Database's ordered view registry, carrying the
// same expression-composability as Relation: evaluating a View reads its
// own materialized Instance rather than recursing into the stored
// expression, which is what makes views a caching boundary.
type View[T any] struct {
	viewExpr[T]
}

// ID returns the view's database-scoped registration index.
func (v View[T]) ID() int { return v.id }
