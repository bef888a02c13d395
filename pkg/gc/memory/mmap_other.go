//go:build !unix

package memory

import (
	"github.com/ib-77/gckit/pkg/gc"
)

// Mmap is unavailable on this platform; every request fails with BadAlloc.
type Mmap struct{}

func (Mmap) Allocate(size uint) gc.Result[Slice, gc.Error] {
	if size == 0 {
		return gc.Success(Null())
	}
	return gc.Fail[Slice](gc.BadAlloc)
}

func (Mmap) Deallocate(Slice) {}
