package codd

import (
	"fmt"
	"slices"
)

// joinExpr is an equi-join: both children are projected to (key, payload)
// pairs, sorted by key, and merged linearly, producing a cross-product per
// equal-key group (spec.md's "Join algorithm"). Its delta rule mirrors
// Product's triangulation, restricted to matching keys.
type joinExpr[L, R, K, T any] struct {
	left    Expr[L]
	right   Expr[R]
	keyLeft func(L) K
	keyRight func(R) K
	keyCmp  Comparator[K]
	f       func(K, L, R) T
	cmp     Comparator[T]
}

// NewJoin constructs an equi-join of left and right on keyLeft/keyRight,
// combining matches with f and ordering results with cmp.
func NewJoin[L, R, K, T any](left Expr[L], right Expr[R], keyLeft func(L) K, keyRight func(R) K, keyCmp Comparator[K], f func(K, L, R) T, cmp Comparator[T]) Expr[T] {
	return &joinExpr[L, R, K, T]{
		left: left, right: right,
		keyLeft: keyLeft, keyRight: keyRight,
		keyCmp: keyCmp, f: f, cmp: cmp,
	}
}

type keyed[K, V any] struct {
	key   K
	value V
}

func (e *joinExpr[L, R, K, T]) combine(ls []L, rs []R) ([]T, error) {
	if len(ls) == 0 || len(rs) == 0 {
		return nil, nil
	}

	kls := make([]keyed[K, L], len(ls))
	for i, l := range ls {
		kls[i] = keyed[K, L]{key: e.keyLeft(l), value: l}
	}
	krs := make([]keyed[K, R], len(rs))
	for i, r := range rs {
		krs[i] = keyed[K, R]{key: e.keyRight(r), value: r}
	}

	byKey := func(a, b K) int { return e.keyCmp(a, b) }
	slices.SortFunc(kls, func(a, b keyed[K, L]) int { return byKey(a.key, b.key) })
	slices.SortFunc(krs, func(a, b keyed[K, R]) int { return byKey(a.key, b.key) })

	var out []T
	i, j := 0, 0
	for i < len(kls) && j < len(krs) {
		switch c := byKey(kls[i].key, krs[j].key); {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			k := kls[i].key
			iEnd := i
			for iEnd < len(kls) && byKey(kls[iEnd].key, k) == 0 {
				iEnd++
			}
			jEnd := j
			for jEnd < len(krs) && byKey(krs[jEnd].key, k) == 0 {
				jEnd++
			}
			for a := i; a < iEnd; a++ {
				for b := j; b < jEnd; b++ {
					var t T
					if err := safeCall("Join", func() error {
						t = e.f(k, kls[a].value, krs[b].value)
						return nil
					}); err != nil {
						return nil, err
					}
					out = append(out, t)
				}
			}
			i, j = iEnd, jEnd
		}
	}
	return out, nil
}

func (e *joinExpr[L, R, K, T]) fullEval(db *Database) ([]T, error) {
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

func (e *joinExpr[L, R, K, T]) recentDelta(db *Database) ([]T, error) {
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

func (e *joinExpr[L, R, K, T]) stableEval(db *Database) ([]T, error) {
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

func (e *joinExpr[L, R, K, T]) comparator() Comparator[T] { return e.cmp }

func (e *joinExpr[L, R, K, T]) viewDeps(out map[int]bool) {
	e.left.viewDeps(out)
	e.right.viewDeps(out)
}

func (e *joinExpr[L, R, K, T]) String() string {
	return fmt.Sprintf("Join(%s, %s)", e.left, e.right)
}
