package memory

import (
	"math"
	"runtime/debug"
	"unsafe"

	"github.com/ib-77/gckit/pkg/gc"
)

// MaxAllocation is the largest request Heap will ever attempt, in bytes.
const MaxAllocation = 1 << 40

const wordSize = uint(unsafe.Sizeof(uint64(0)))

// Heap allocates from the Go heap. Storage is word aligned and zeroed, and is
// never scanned for pointers. Released storage is reclaimed by the collector
// once nothing refers to it.
//
// The Go runtime aborts the process when it cannot back an allocation, so
// Heap refuses with BadAlloc any request larger than HeapLimit.
type Heap struct{}

// HeapLimit returns the largest request Heap will attempt right now: the
// smallest of MaxAllocation, the runtime soft memory limit and the machine's
// RAM plus swap, where known.
func HeapLimit() uint64 {
	limit := uint64(MaxAllocation)
	if soft := debug.SetMemoryLimit(-1); soft >= 0 && soft < math.MaxInt64 && uint64(soft) < limit {
		limit = uint64(soft)
	}
	if total := totalMemory(); total > 0 && total < limit {
		limit = total
	}
	return limit
}

func (Heap) Allocate(size uint) gc.Result[Slice, gc.Error] {
	if size == 0 {
		return gc.Success(Null())
	}
	if uint64(size) > HeapLimit() {
		return gc.Fail[Slice](gc.BadAlloc)
	}

	words := make([]uint64, (size+wordSize-1)/wordSize)
	return gc.Success(Make(unsafe.Pointer(unsafe.SliceData(words)), size))
}

func (Heap) Deallocate(s Slice) {
	if s.IsNull() {
		return
	}
	clear(s.Bytes())
}
