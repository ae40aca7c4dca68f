package codd

import "fmt"

// intersectExpr is set intersection, added to the algebra beyond the
// classic Select/Project/Product/Join/Union/Difference set: a tuple
// present in both children appears once. It is monotone, so unlike
// Difference it has a fully incremental delta rule:
//
//	delta(Intersect(L,R)) = (delta(L) ∩ full(R)) ∪ (stable(L) ∩ delta(R))
type intersectExpr[T any] struct {
	left, right Expr[T]
	cmp         Comparator[T]
}

// NewIntersect constructs the intersection of left and right, which must
// share an element type.
func NewIntersect[T any](left, right Expr[T]) Expr[T] {
	return &intersectExpr[T]{left: left, right: right, cmp: left.comparator()}
}

func (e *intersectExpr[T]) fullEval(db *Database) ([]T, error) {
	ls, err := e.left.fullEval(db)
	if err != nil {
		return nil, err
	}
	rs, err := e.right.fullEval(db)
	if err != nil {
		return nil, err
	}
	return intersectSorted(sortDedup(ls, e.cmp), sortDedup(rs, e.cmp), e.cmp), nil
}

func (e *intersectExpr[T]) recentDelta(db *Database) ([]T, error) {
	dl, err := e.left.recentDelta(db)
	if err != nil {
		return nil, err
	}
	fr, err := e.right.fullEval(db)
	if err != nil {
		return nil, err
	}
	sl, err := e.left.stableEval(db)
	if err != nil {
		return nil, err
	}
	dr, err := e.right.recentDelta(db)
	if err != nil {
		return nil, err
	}

	part1 := intersectSorted(sortDedup(dl, e.cmp), sortDedup(fr, e.cmp), e.cmp)
	part2 := intersectSorted(sortDedup(sl, e.cmp), sortDedup(dr, e.cmp), e.cmp)
	return mergeSortedDedup(part1, part2, e.cmp), nil
}

func (e *intersectExpr[T]) stableEval(db *Database) ([]T, error) {
	ls, err := e.left.stableEval(db)
	if err != nil {
		return nil, err
	}
	rs, err := e.right.stableEval(db)
	if err != nil {
		return nil, err
	}
	return intersectSorted(sortDedup(ls, e.cmp), sortDedup(rs, e.cmp), e.cmp), nil
}

func (e *intersectExpr[T]) comparator() Comparator[T] { return e.cmp }

func (e *intersectExpr[T]) viewDeps(out map[int]bool) {
	e.left.viewDeps(out)
	e.right.viewDeps(out)
}

func (e *intersectExpr[T]) String() string {
	return fmt.Sprintf("Intersect(%s, %s)", e.left, e.right)
}
