package codd

// Builder is a fluent façade for assembling expression trees left to right;
// every method is one-for-one equivalent to a direct NewXxx constructor.
// Operations that keep the element type unchanged (Select, Union,
// Intersect, Minus) are methods; operations that change it (Project,
// Cross, a keyed Join) are free functions, because Go methods cannot
// introduce new type parameters of their own — a generic method on
// Builder[T] can't produce a Builder[S] for an S chosen at the call site.
type Builder[T any] struct {
	expr Expr[T]
}

// From starts a builder chain from an existing expression (typically a
// Relation or View handle).
func From[T any](e Expr[T]) Builder[T] {
	return Builder[T]{expr: e}
}

// Select filters the builder's expression by pred.
func (b Builder[T]) Select(pred func(T) bool) Builder[T] {
	return Builder[T]{expr: NewSelect(b.expr, pred)}
}

// Union combines the builder's expression with other.
func (b Builder[T]) Union(other Expr[T]) Builder[T] {
	return Builder[T]{expr: NewUnion(b.expr, other)}
}

// Intersect restricts the builder's expression to tuples also present in
// other.
func (b Builder[T]) Intersect(other Expr[T]) Builder[T] {
	return Builder[T]{expr: NewIntersect(b.expr, other)}
}

// Minus subtracts other from the builder's expression.
func (b Builder[T]) Minus(other Expr[T]) Builder[T] {
	return Builder[T]{expr: NewDifference(b.expr, other)}
}

// Build returns the assembled expression.
func (b Builder[T]) Build() Expr[T] {
	return b.expr
}

// Project maps b's expression from T to S using f, ordered by cmp.
func Project[T, S any](b Builder[T], f func(T) S, cmp Comparator[S]) Builder[S] {
	return Builder[S]{expr: NewProject[S, T](b.expr, f, cmp)}
}

// Cross combines l and r into their Cartesian product, combined by f and
// ordered by cmp.
func Cross[L, R, T any](l Builder[L], r Builder[R], f func(L, R) T, cmp Comparator[T]) Builder[T] {
	return Builder[T]{expr: NewProduct(l.expr, r.expr, f, cmp)}
}

// KeyedBuilder is a builder annotated with a key extraction function,
// produced by WithKey and consumed by JoinOn — the two-step shape the
// original codd crate's with_key/join/on chain uses, since Go cannot
// express "join, picking up a fresh type parameter" as a single method.
type KeyedBuilder[T, K any] struct {
	expr Expr[T]
	key  func(T) K
}

// WithKey annotates b with a key extraction function, preparing it for
// JoinOn.
func WithKey[T, K any](b Builder[T], key func(T) K) KeyedBuilder[T, K] {
	return KeyedBuilder[T, K]{expr: b.expr, key: key}
}

// JoinOn equi-joins l and r on their annotated keys, combining matches with
// f and ordering results with cmp.
func JoinOn[L, R, K, T any](l KeyedBuilder[L, K], r KeyedBuilder[R, K], keyCmp Comparator[K], f func(K, L, R) T, cmp Comparator[T]) Builder[T] {
	return Builder[T]{expr: NewJoin(l.expr, r.expr, l.key, r.key, keyCmp, f, cmp)}
}
