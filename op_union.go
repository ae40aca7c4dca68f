package codd

import "fmt"

// unionExpr is multiset union with dedup: delta(Union(L,R)) =
// delta(L) ∪ delta(R).
type unionExpr[T any] struct {
	left, right Expr[T]
	cmp         Comparator[T]
}

// NewUnion constructs the union of left and right, which must share an
// element type.
func NewUnion[T any](left, right Expr[T]) Expr[T] {
	return &unionExpr[T]{left: left, right: right, cmp: left.comparator()}
}

func (e *unionExpr[T]) fullEval(db *Database) ([]T, error) {
	ls, err := e.left.fullEval(db)
	if err != nil {
		return nil, err
	}
	rs, err := e.right.fullEval(db)
	if err != nil {
		return nil, err
	}
	return mergeSortedDedup(sortDedup(ls, e.cmp), sortDedup(rs, e.cmp), e.cmp), nil
}

func (e *unionExpr[T]) recentDelta(db *Database) ([]T, error) {
	ls, err := e.left.recentDelta(db)
	if err != nil {
		return nil, err
	}
	rs, err := e.right.recentDelta(db)
	if err != nil {
		return nil, err
	}
	return mergeSortedDedup(sortDedup(ls, e.cmp), sortDedup(rs, e.cmp), e.cmp), nil
}

func (e *unionExpr[T]) stableEval(db *Database) ([]T, error) {
	ls, err := e.left.stableEval(db)
	if err != nil {
		return nil, err
	}
	rs, err := e.right.stableEval(db)
	if err != nil {
		return nil, err
	}
	return mergeSortedDedup(sortDedup(ls, e.cmp), sortDedup(rs, e.cmp), e.cmp), nil
}

func (e *unionExpr[T]) comparator() Comparator[T] { return e.cmp }

func (e *unionExpr[T]) viewDeps(out map[int]bool) {
	e.left.viewDeps(out)
	e.right.viewDeps(out)
}

func (e *unionExpr[T]) String() string { return fmt.Sprintf("Union(%s, %s)", e.left, e.right) }
