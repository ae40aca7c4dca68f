package codd

import "slices"

// sortDedup sorts items by cmp in place and collapses adjacent equal
// elements, mirroring Tuples::from in the original codd crate ("the
// content of Tuples is sorted" and deduplicated).
func sortDedup[T any](items []T, cmp Comparator[T]) []T {
	slices.SortFunc(items, cmp)
	return slices.CompactFunc(items, func(a, b T) bool { return cmp(a, b) == 0 })
}

// mergeSortedDedup merges two already-sorted, already-deduplicated slices
// into one sorted, deduplicated slice.
func mergeSortedDedup[T any](a, b []T, cmp Comparator[T]) []T {
	out := make([]T, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := cmp(a[i], b[j]); {
		case c < 0:
			out = append(out, a[i])
			i++
		case c > 0:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// diffSorted returns the elements of a not present in b, both sorted and
// deduplicated with cmp.
func diffSorted[T any](a, b []T, cmp Comparator[T]) []T {
	out := make([]T, 0, len(a))
	i, j := 0, 0
	for i < len(a) {
		if j >= len(b) {
			out = append(out, a[i:]...)
			break
		}
		switch c := cmp(a[i], b[j]); {
		case c < 0:
			out = append(out, a[i])
			i++
		case c > 0:
			j++
		default:
			i++
			j++
		}
	}
	return out
}

// intersectSorted returns the elements common to both a and b, both sorted
// and deduplicated with cmp.
func intersectSorted[T any](a, b []T, cmp Comparator[T]) []T {
	out := make([]T, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := cmp(a[i], b[j]); {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}
