// Package codd implements a small, in-memory, strongly-typed relational
// evaluation engine with incremental view maintenance.
//
// A client registers named relations holding tuples of a client-chosen
// element type, inserts tuples into them, composes tree-shaped relational
// expressions (selection, projection, join, union, intersection,
// difference, cross-product, singletons) over relations and previously
// stored views, and evaluates those expressions. Views are persistent
// expressions whose results are materialized and kept up to date
// incrementally as new tuples arrive, using the pending/recent/stable
// staging discipline of semi-naive Datalog evaluation.
//
// Key components:
//   - Instance: the three-set staged container backing a relation or view.
//   - Expr: the closed algebra of expression nodes (Relation, View,
//     Singleton, Select, Project, Product, Join, Union, Intersect,
//     Difference), each evaluable in full, recent-delta, or stable mode.
//   - Database: owns relations and views and drives the stabilization
//     sweep to a fixpoint on each StoreView and Evaluate call, picking up
//     every batch inserted since the previous sweep.
//   - Builder: a fluent façade for assembling expression trees.
//
// The database grows monotonically: tuples are never deleted. There is no
// query optimizer, no indices beyond those implicit in a join's sorted
// merge, no durability, and no concurrent writers — see spec.md's
// Non-goals for the full list.
package codd
