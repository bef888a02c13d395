package memory

import (
	"github.com/ib-77/gckit/pkg/gc"
)

// Allocator is the capability a type must have to serve as a memory provider.
// It is used as a type-parameter constraint, so providers are resolved at
// build time and calls are not dispatched through an interface value.
//
// Neither method may panic. Allocate returns Err(BadAlloc) on exhaustion and
// never hands out a partial range; a zero size yields the null Slice.
// Deallocate consumes the Slice and is a no-op for the null Slice.
type Allocator interface {
	Allocate(size uint) gc.Result[Slice, gc.Error]
	Deallocate(s Slice)
}

// Default is the provider used when callers have no reason to pick another.
type Default = Heap

var (
	_ Allocator = Heap{}
	_ Allocator = Mmap{}
	_ Allocator = (*Limited[Heap])(nil)
	_ Allocator = (*Tracking[Heap])(nil)
)
