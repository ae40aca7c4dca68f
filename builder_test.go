package codd

import (
	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Builder", func() {
	var db *Database
	var r Relation[int]
	var s Relation[int]

	ginkgo.BeforeEach(func() {
		db = NewDatabase(WithLogger(logger))
		var err error
		r, err = AddRelation(db, "r", Ordered[int]())
		Expect(err).NotTo(HaveOccurred())
		s, err = AddRelation(db, "s", Ordered[int]())
		Expect(err).NotTo(HaveOccurred())
		Expect(Insert(db, r, []int{1, 2, 3})).To(Succeed())
		Expect(Insert(db, s, []int{2, 3, 4})).To(Succeed())
	})

	ginkgo.It("chains Select/Union equivalently to direct constructors", func() {
		built := From[int](r).
			Select(func(t int) bool { return t > 1 }).
			Union(s).
			Build()

		direct := NewUnion[int](NewSelect[int](r, func(t int) bool { return t > 1 }), s)

		builtRes, err := Evaluate[int](db, built)
		Expect(err).NotTo(HaveOccurred())
		directRes, err := Evaluate[int](db, direct)
		Expect(err).NotTo(HaveOccurred())
		Expect(builtRes.Tuples()).To(Equal(directRes.Tuples()))
	})

	ginkgo.It("chains Minus and Intersect", func() {
		built := From[int](r).Minus(s).Build()
		res, err := Evaluate[int](db, built)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Tuples()).To(Equal([]int{1}))

		built2 := From[int](r).Intersect(s).Build()
		res2, err := Evaluate[int](db, built2)
		Expect(err).NotTo(HaveOccurred())
		Expect(res2.Tuples()).To(Equal([]int{2, 3}))
	})

	ginkgo.It("Project changes the element type via a free function", func() {
		built := Project[int, string](From[int](r), func(t int) string {
			switch t {
			case 1:
				return "one"
			case 2:
				return "two"
			case 3:
				return "three"
			default:
				return "?"
			}
		}, Ordered[string]())

		res, err := Evaluate[string](db, built.Build())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Tuples()).To(Equal([]string{"one", "three", "two"}))
	})

	ginkgo.It("Cross builds the Cartesian product of two builders", func() {
		built := Cross[int, int, Pair[int, int]](From[int](r), From[int](s), NewPair[int, int], PairComparator(Ordered[int](), Ordered[int]()))
		res, err := Evaluate[Pair[int, int]](db, built.Build())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Tuples()).To(HaveLen(9))
	})

	ginkgo.It("WithKey/JoinOn performs an equi-join", func() {
		lk := WithKey[int, int](From[int](r), func(t int) int { return t })
		rk := WithKey[int, int](From[int](s), func(t int) int { return t })
		built := JoinOn[int, int, int, int](lk, rk, Ordered[int](), func(_ int, l, rr int) int { return l + rr }, Ordered[int]())

		res, err := Evaluate[int](db, built.Build())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Tuples()).To(Equal([]int{4, 6}))
	})
})

var _ = ginkgo.Describe("cyclic view detection", func() {
	ginkgo.It("rejects a view expression that references a view from another database", func() {
		db1 := NewDatabase()
		r1, err := AddRelation(db1, "r", Ordered[int]())
		Expect(err).NotTo(HaveOccurred())
		Expect(Insert(db1, r1, []int{1, 2})).To(Succeed())
		v1, err := StoreView[int](db1, NewSelect[int](r1, func(int) bool { return true }))
		Expect(err).NotTo(HaveOccurred())

		db2 := NewDatabase()
		_, err = StoreView[int](db2, NewSelect[int](v1, func(int) bool { return true }))
		Expect(err).To(MatchError(ErrCyclicView))
	})
})
