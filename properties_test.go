package codd

import (
	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// These specs exercise the universal properties any expression is expected
// to satisfy, independent of any one end-to-end scenario.
var _ = ginkgo.Describe("algebraic properties", func() {
	var db *Database
	var r Relation[int]

	ginkgo.BeforeEach(func() {
		db = NewDatabase(WithLogger(logger))
		var err error
		r, err = AddRelation(db, "r", Ordered[int]())
		Expect(err).NotTo(HaveOccurred())
		Expect(Insert(db, r, []int{1, 2, 3, 4, 5})).To(Succeed())
	})

	ginkgo.It("is deterministic: repeated Evaluate calls agree", func() {
		expr := NewSelect[int](r, func(t int) bool { return t%2 == 0 })
		first, err := Evaluate[int](db, expr)
		Expect(err).NotTo(HaveOccurred())
		second, err := Evaluate[int](db, expr)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Tuples()).To(Equal(second.Tuples()))
	})

	ginkgo.It("is monotone under further inserts for a monotone expression", func() {
		expr := NewSelect[int](r, func(t int) bool { return t > 1 })
		before, err := Evaluate[int](db, expr)
		Expect(err).NotTo(HaveOccurred())

		Expect(Insert(db, r, []int{6})).To(Succeed())

		after, err := Evaluate[int](db, expr)
		Expect(err).NotTo(HaveOccurred())
		Expect(after.Tuples()).To(ContainElements(before.Tuples()))
		Expect(len(after.Tuples())).To(BeNumerically(">", len(before.Tuples())))
	})

	ginkgo.It("composes Project after Select as a single filtered map", func() {
		expr := NewProject[int, int](
			NewSelect[int](r, func(t int) bool { return t%2 == 0 }),
			func(t int) int { return t * 10 },
			Ordered[int](),
		)
		res, err := Evaluate[int](db, expr)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Tuples()).To(Equal([]int{20, 40}))
	})

	ginkgo.It("treats Join as equivalent to Product, filtered by key equality, projected by f", func() {
		s, err := AddRelation(db, "s", Ordered[int]())
		Expect(err).NotTo(HaveOccurred())
		Expect(Insert(db, s, []int{3, 4, 5, 6})).To(Succeed())

		join := NewJoin[int, int, int, int](r, s,
			func(l int) int { return l },
			func(rr int) int { return rr },
			Ordered[int](),
			func(_ int, l, rr int) int { return l + rr },
			Ordered[int](),
		)

		productThenFilterThenProject := NewProject[int, Pair[int, int]](
			NewSelect[Pair[int, int]](
				NewProduct[int, int, Pair[int, int]](r, s, NewPair[int, int], PairComparator(Ordered[int](), Ordered[int]())),
				func(t Pair[int, int]) bool { return t.First == t.Second },
			),
			func(t Pair[int, int]) int { return t.First + t.Second },
			Ordered[int](),
		)

		joinRes, err := Evaluate[int](db, join)
		Expect(err).NotTo(HaveOccurred())
		prodRes, err := Evaluate[int](db, productThenFilterThenProject)
		Expect(err).NotTo(HaveOccurred())
		Expect(joinRes.Tuples()).To(Equal(prodRes.Tuples()))
	})

	ginkgo.It("keeps View equivalent to evaluating its expression directly, for a monotone expression", func() {
		expr := NewSelect[int](r, func(t int) bool { return t > 2 })
		v, err := StoreView[int](db, expr)
		Expect(err).NotTo(HaveOccurred())

		viaView, err := Evaluate[int](db, v)
		Expect(err).NotTo(HaveOccurred())
		direct, err := Evaluate[int](db, expr)
		Expect(err).NotTo(HaveOccurred())
		Expect(viaView.Tuples()).To(Equal(direct.Tuples()))
	})
})
