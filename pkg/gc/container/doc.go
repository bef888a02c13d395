// Package container provides Vector[T, A], a growable contiguous array whose
// storage comes from an allocator satisfying memory.Allocator.
//
// Every operation that touches the allocator or checks bounds returns a
// gc.Result; pure queries (Length, Capacity, Empty) return bare values.
//
// Growth policy: Push and Emplace grow a full vector by doubling its capacity
// (an empty vector grows to one element). Reserve and ShrinkToFit resize to an
// exact capacity. A failed reallocation leaves the vector untouched.
//
// Element types must be pointer free and not zero sized; the factories reject
// other types with InvalidArgument or SizeError. Elements may implement
// traits.Copier, traits.Equaler and traits.Destroyer to customise copying,
// comparison and destruction.
package container
