package codd

import "fmt"

// differenceExpr is L ∖ R. Difference is not monotone, so it has no sound
// incremental delta rule in general; spec.md §4.2/§9 explicitly sanctions
// recomputing it from full(L) and full(R) each round instead — semantics
// equivalent, just quadratic — rather than chasing the more intricate
// (delta(L) ∖ full(R)) ∪ (stable(L) ∖ delta(R)) formulation. A view fed
// this way is safe because Instance.Stabilize dedups anything already in
// its stable set, so re-offering the same tuples round after round is
// wasted work, not a correctness problem.
type differenceExpr[T any] struct {
	left, right Expr[T]
	cmp         Comparator[T]
}

// NewDifference constructs left ∖ right, which must share an element type.
func NewDifference[T any](left, right Expr[T]) Expr[T] {
	return &differenceExpr[T]{left: left, right: right, cmp: left.comparator()}
}

func (e *differenceExpr[T]) fullEval(db *Database) ([]T, error) {
	ls, err := e.left.fullEval(db)
	if err != nil {
		return nil, err
	}
	rs, err := e.right.fullEval(db)
	if err != nil {
		return nil, err
	}
	return diffSorted(sortDedup(ls, e.cmp), sortDedup(rs, e.cmp), e.cmp), nil
}

func (e *differenceExpr[T]) recentDelta(db *Database) ([]T, error) {
	return e.fullEval(db)
}

func (e *differenceExpr[T]) stableEval(db *Database) ([]T, error) {
	ls, err := e.left.stableEval(db)
	if err != nil {
		return nil, err
	}
	rs, err := e.right.stableEval(db)
	if err != nil {
		return nil, err
	}
	return diffSorted(sortDedup(ls, e.cmp), sortDedup(rs, e.cmp), e.cmp), nil
}

func (e *differenceExpr[T]) comparator() Comparator[T] { return e.cmp }

func (e *differenceExpr[T]) viewDeps(out map[int]bool) {
	e.left.viewDeps(out)
	e.right.viewDeps(out)
}

func (e *differenceExpr[T]) String() string {
	return fmt.Sprintf("Difference(%s, %s)", e.left, e.right)
}
