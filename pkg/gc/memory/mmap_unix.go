//go:build unix

package memory

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/ib-77/gckit/pkg/gc"
)

var pageSize = uint(os.Getpagesize())

// Mmap allocates anonymous private mappings straight from the kernel. Each
// allocation is rounded up to whole pages and unmapped on Deallocate. The
// memory is invisible to the garbage collector.
type Mmap struct{}

func (Mmap) Allocate(size uint) gc.Result[Slice, gc.Error] {
	if size == 0 {
		return gc.Success(Null())
	}
	length := roundToPage(size)
	if length < size || length > uint(maxInt) {
		return gc.Fail[Slice](gc.BadAlloc)
	}

	b, err := unix.Mmap(-1, 0, int(length), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		if kind, _ := gc.Kind(err); kind == gc.InsufficientRights {
			return gc.Fail[Slice](kind)
		}
		return gc.Fail[Slice](gc.BadAlloc)
	}
	return gc.Success(Make(unsafe.Pointer(unsafe.SliceData(b)), size))
}

func (Mmap) Deallocate(s Slice) {
	if s.IsNull() {
		return
	}
	mapping := unsafe.Slice((*byte)(s.Pointer()), roundToPage(s.Size()))
	// Munmap only fails for ranges that were never mapped; nothing to recover.
	_ = unix.Munmap(mapping)
}

const maxInt = int(^uint(0) >> 1)

func roundToPage(size uint) uint {
	return (size + pageSize - 1) &^ (pageSize - 1)
}
