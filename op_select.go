package codd

import "fmt"

// selectExpr filters a child expression by a predicate. Its delta rule is
// the simplest in the algebra: apply the predicate to the child's delta.
type selectExpr[T any] struct {
	child Expr[T]
	pred  func(T) bool
}

// NewSelect constructs a filter over child: only tuples satisfying pred are
// kept.
func NewSelect[T any](child Expr[T], pred func(T) bool) Expr[T] {
	return &selectExpr[T]{child: child, pred: pred}
}

func (e *selectExpr[T]) filter(items []T) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, t := range items {
		keep := false
		if err := safeCall("Select", func() error {
			keep = e.pred(t)
			return nil
		}); err != nil {
			return nil, err
		}
		if keep {
			out = append(out, t)
		}
	}
	return out, nil
}

func (e *selectExpr[T]) fullEval(db *Database) ([]T, error) {
	items, err := e.child.fullEval(db)
	if err != nil {
		return nil, err
	}
	return e.filter(items)
}

func (e *selectExpr[T]) recentDelta(db *Database) ([]T, error) {
	items, err := e.child.recentDelta(db)
	if err != nil {
		return nil, err
	}
	return e.filter(items)
}

func (e *selectExpr[T]) stableEval(db *Database) ([]T, error) {
	items, err := e.child.stableEval(db)
	if err != nil {
		return nil, err
	}
	return e.filter(items)
}

func (e *selectExpr[T]) comparator() Comparator[T] { return e.child.comparator() }
func (e *selectExpr[T]) viewDeps(out map[int]bool) { e.child.viewDeps(out) }
func (e *selectExpr[T]) String() string            { return fmt.Sprintf("Select(%s)", e.child) }
