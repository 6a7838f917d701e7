// Package hlist provides heterogeneous sequence machinery: type lists,
// tuples shaped by a type list, and curried function values over a
// type list.
//
// A Tuple is represented structurally as right-nested cons cells, each
// cell carrying its element alongside its type descriptor. The type
// tags are the parallel, validated descriptor list: every operation
// moves tags and values in lock-step, so a tuple's shape can always be
// recovered without re-deriving types.
//
// The package exists to bridge two argument orders. Goal introspection
// discovers index values innermost-application-first, the reverse of
// the order a generalized motive must accept them in. Reverse,
// TupleReverse, and Flip form the structure-preserving bridge between
// the two orders.
package hlist
