package codd

import "fmt"

// projectExpr maps a child expression of type S to type T. Like Select, its
// delta rule is a direct pass-through of the child's delta through f.
type projectExpr[T, S any] struct {
	child Expr[S]
	f     func(S) T
	cmp   Comparator[T]
}

// NewProject constructs a map over child using f, ordered by cmp.
func NewProject[T, S any](child Expr[S], f func(S) T, cmp Comparator[T]) Expr[T] {
	return &projectExpr[T, S]{child: child, f: f, cmp: cmp}
}

func (e *projectExpr[T, S]) apply(items []S) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, s := range items {
		var t T
		if err := safeCall("Project", func() error {
			t = e.f(s)
			return nil
		}); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (e *projectExpr[T, S]) fullEval(db *Database) ([]T, error) {
	items, err := e.child.fullEval(db)
	if err != nil {
		return nil, err
	}
	return e.apply(items)
}

func (e *projectExpr[T, S]) recentDelta(db *Database) ([]T, error) {
	items, err := e.child.recentDelta(db)
	if err != nil {
		return nil, err
	}
	return e.apply(items)
}

func (e *projectExpr[T, S]) stableEval(db *Database) ([]T, error) {
	items, err := e.child.stableEval(db)
	if err != nil {
		return nil, err
	}
	return e.apply(items)
}

func (e *projectExpr[T, S]) comparator() Comparator[T] { return e.cmp }
func (e *projectExpr[T, S]) viewDeps(out map[int]bool) { e.child.viewDeps(out) }
func (e *projectExpr[T, S]) String() string            { return fmt.Sprintf("Project(%s)", e.child) }
