package codd

import (
	"cmp"

	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Instance", func() {
	var in *Instance[int]

	ginkgo.BeforeEach(func() {
		in = NewInstance(Ordered[int]())
	})

	ginkgo.It("starts empty", func() {
		Expect(in.Recent()).To(BeEmpty())
		Expect(in.Stable()).To(BeEmpty())
		Expect(in.All()).To(BeEmpty())
	})

	ginkgo.It("moves an insert through pending -> recent -> stable over two stabilizations", func() {
		in.Insert([]int{3, 1, 2, 1})

		Expect(in.Recent()).To(BeEmpty())
		Expect(in.Stable()).To(BeEmpty())

		changed := in.Stabilize()
		Expect(changed).To(BeTrue())
		Expect(in.Recent()).To(Equal([]int{1, 2, 3}))
		Expect(in.Stable()).To(BeEmpty())

		changed = in.Stabilize()
		Expect(changed).To(BeFalse())
		Expect(in.Recent()).To(BeEmpty())
		Expect(in.Stable()).To(Equal([]int{1, 2, 3}))
		Expect(in.All()).To(Equal([]int{1, 2, 3}))
	})

	ginkgo.It("dedups a re-inserted tuple already in stable", func() {
		in.Insert([]int{1, 2})
		in.Stabilize()
		in.Stabilize()
		Expect(in.Stable()).To(Equal([]int{1, 2}))

		in.Insert([]int{2, 3})
		changed := in.Stabilize()
		Expect(changed).To(BeTrue())
		Expect(in.Recent()).To(Equal([]int{3}))
	})

	ginkgo.It("reports no change once quiescent", func() {
		Expect(in.Stabilize()).To(BeFalse())
		Expect(in.Stabilize()).To(BeFalse())
	})
})

var _ = ginkgo.Describe("sorted-slice helpers", func() {
	c := Ordered[int]()

	ginkgo.It("sortDedup sorts and removes duplicates", func() {
		got := sortDedup([]int{3, 1, 2, 1, 3}, c)
		Expect(got).To(Equal([]int{1, 2, 3}))
	})

	ginkgo.It("mergeSortedDedup merges two sorted deduplicated slices", func() {
		got := mergeSortedDedup([]int{1, 3, 5}, []int{2, 3, 4}, c)
		Expect(got).To(Equal([]int{1, 2, 3, 4, 5}))
	})

	ginkgo.It("diffSorted keeps only elements not in b", func() {
		got := diffSorted([]int{1, 2, 3, 4}, []int{2, 4}, c)
		Expect(got).To(Equal([]int{1, 3}))
	})

	ginkgo.It("intersectSorted keeps only elements in both", func() {
		got := intersectSorted([]int{1, 2, 3, 4}, []int{2, 4, 6}, c)
		Expect(got).To(Equal([]int{2, 4}))
	})
})

var _ = ginkgo.Describe("Comparator helpers", func() {
	ginkgo.It("Ordered matches cmp.Compare", func() {
		c := Ordered[int]()
		Expect(c(1, 2)).To(Equal(cmp.Compare(1, 2)))
	})

	ginkgo.It("PairComparator orders lexicographically", func() {
		c := PairComparator(Ordered[string](), Ordered[int]())
		Expect(c(NewPair("a", 2), NewPair("a", 1))).To(BeNumerically(">", 0))
		Expect(c(NewPair("a", 1), NewPair("b", 0))).To(BeNumerically("<", 0))
	})
})
