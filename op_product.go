package codd

import "fmt"

// productExpr is the unrestricted Cartesian product of two children,
// combined by f. Its delta uses the same triangulated formula as Join
// (spec.md §4.2): every new pairing that involves at least one new tuple
// is emitted exactly once per round by summing recent×stable, stable×recent
// and recent×recent rather than recomputing the full product.
type productExpr[L, R, T any] struct {
	left  Expr[L]
	right Expr[R]
	f     func(L, R) T
	cmp   Comparator[T]
}

// NewProduct constructs the Cartesian product of left and right, combined
// by f and ordered by cmp.
func NewProduct[L, R, T any](left Expr[L], right Expr[R], f func(L, R) T, cmp Comparator[T]) Expr[T] {
	return &productExpr[L, R, T]{left: left, right: right, f: f, cmp: cmp}
}

func (e *productExpr[L, R, T]) combine(ls []L, rs []R) ([]T, error) {
	out := make([]T, 0, len(ls)*len(rs))
	for _, l := range ls {
		for _, r := range rs {
			var t T
			if err := safeCall("Product", func() error {
				t = e.f(l, r)
				return nil
			}); err != nil {
				return nil, err
			}
			out = append(out, t)
		}
	}
	return out, nil
}

func (e *productExpr[L, R, T]) fullEval(db *Database) ([]T, error) {
	ls, err := e.left.fullEval(db)
	if err != nil {
		return nil, err
	}
	rs, err := e.right.fullEval(db)
	if err != nil {
		return nil, err
	}
	out, err := e.combine(ls, rs)
	if err != nil {
		return nil, err
	}
	return sortDedup(out, e.cmp), nil
}

func (e *productExpr[L, R, T]) recentDelta(db *Database) ([]T, error) {
	rl, err := e.left.recentDelta(db)
	if err != nil {
		return nil, err
	}
	rr, err := e.right.recentDelta(db)
	if err != nil {
		return nil, err
	}
	sl, err := e.left.stableEval(db)
	if err != nil {
		return nil, err
	}
	sr, err := e.right.stableEval(db)
	if err != nil {
		return nil, err
	}

	part1, err := e.combine(rl, sr)
	if err != nil {
		return nil, err
	}
	part2, err := e.combine(sl, rr)
	if err != nil {
		return nil, err
	}
	part3, err := e.combine(rl, rr)
	if err != nil {
		return nil, err
	}

	out := append(append(part1, part2...), part3...)
	return sortDedup(out, e.cmp), nil
}

func (e *productExpr[L, R, T]) stableEval(db *Database) ([]T, error) {
	ls, err := e.left.stableEval(db)
	if err != nil {
		return nil, err
	}
	rs, err := e.right.stableEval(db)
	if err != nil {
		return nil, err
	}
	out, err := e.combine(ls, rs)
	if err != nil {
		return nil, err
	}
	return sortDedup(out, e.cmp), nil
}

func (e *productExpr[L, R, T]) comparator() Comparator[T] { return e.cmp }

func (e *productExpr[L, R, T]) viewDeps(out map[int]bool) {
	e.left.viewDeps(out)
	e.right.viewDeps(out)
}

func (e *productExpr[L, R, T]) String() string {
	return fmt.Sprintf("Product(%s, %s)", e.left, e.right)
}
