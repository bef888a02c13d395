package memory

import (
	"unsafe"

	"github.com/ib-77/gckit/pkg/gc"
)

// Slice owns a contiguous byte range handed out by an Allocator. A Slice has
// exactly one owner: hand it on with Move and release it through the
// allocator that produced it, exactly once. The zero value is the null Slice.
type Slice struct {
	data unsafe.Pointer
	size uint
}

// Make adopts size bytes starting at ptr. The range is not validated.
func Make(ptr unsafe.Pointer, size uint) Slice {
	if ptr == nil {
		return Null()
	}
	return Slice{data: ptr, size: size}
}

// MakeRange adopts the bytes in [begin, end). It fails with InvalidArgument
// when begin is past end.
func MakeRange(begin, end unsafe.Pointer) gc.Result[Slice, gc.Error] {
	if uintptr(begin) > uintptr(end) || (begin == nil) != (end == nil) {
		return gc.Fail[Slice](gc.InvalidArgument)
	}
	if begin == nil {
		return gc.Success(Null())
	}
	return gc.Success(Slice{data: begin, size: uint(uintptr(end) - uintptr(begin))})
}

// FromBytes adopts the backing array of b.
func FromBytes(b []byte) Slice {
	if len(b) == 0 {
		return Null()
	}
	return Slice{data: unsafe.Pointer(unsafe.SliceData(b)), size: uint(len(b))}
}

func Null() Slice {
	return Slice{}
}

// Move hands the range to the caller and leaves s null.
func (s *Slice) Move() Slice {
	out := *s
	*s = Null()
	return out
}

func (s Slice) Size() uint {
	return s.size
}

func (s Slice) IsNull() bool {
	return s.data == nil
}

func (s Slice) Pointer() unsafe.Pointer {
	return s.data
}

// Bytes returns a byte view of the range. The view is valid until the Slice
// is released.
func (s Slice) Bytes() []byte {
	if s.data == nil {
		return nil
	}
	return unsafe.Slice((*byte)(s.data), s.size)
}

// BeginAs reinterprets the start of s as a *T. The caller guarantees the
// alignment of the range suits T.
func BeginAs[T any](s Slice) *T {
	return (*T)(s.data)
}

// View reinterprets s as a []T of len(s)/sizeof(T) elements. The caller
// guarantees alignment; trailing bytes that do not fill an element are not
// part of the view.
func View[T any](s Slice) []T {
	var zero T
	size := uint(unsafe.Sizeof(zero))
	if s.data == nil || size == 0 {
		return nil
	}
	return unsafe.Slice((*T)(s.data), s.size/size)
}

// Copy duplicates the bytes of s into a fresh allocation from alloc. The
// copy is released independently of s.
func Copy[A Allocator](alloc A, s Slice) gc.Result[Slice, gc.Error] {
	if s.IsNull() {
		return gc.Success(Null())
	}
	return gc.MapSuccess(alloc.Allocate(s.size), func(dst Slice) Slice {
		copy(dst.Bytes(), s.Bytes())
		return dst
	})
}
