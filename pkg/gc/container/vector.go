package container

import (
	"iter"
	"math"
	"slices"
	"unsafe"

	"github.com/ib-77/gckit/pkg/gc"
	"github.com/ib-77/gckit/pkg/gc/memory"
	"github.com/ib-77/gckit/pkg/gc/solo"
	"github.com/ib-77/gckit/pkg/gc/traits"
)

// Vector is a growable contiguous array of T living in storage obtained from
// an allocator of type A. Elements in [0, Length()) are constructed; slots in
// [Length(), Capacity()) are zeroed and hold nothing.
//
// A Vector owns its storage: pass it on with Move and end its life with
// Release. Pointers returned by At, Front, Back, Push and Emplace stay valid
// until the next operation that reallocates. A Vector is not safe for
// concurrent use.
type Vector[T any, A memory.Allocator] struct {
	alloc  A
	mem    memory.Slice
	length uint
}

// New returns an empty vector. No allocation is performed.
func New[T any, A memory.Allocator](alloc A) *Vector[T, A] {
	return &Vector[T, A]{alloc: alloc}
}

// Make allocates storage for exactly count elements and fills every slot with
// a copy of value. A zero count returns an empty vector without calling the
// allocator.
func Make[T any, A memory.Allocator](alloc A, count uint, value T) gc.Result[*Vector[T, A], gc.Error] {
	return MakeFunc(alloc, count, func(uint) T {
		return traits.CopyOf(value)
	})
}

// MakeFunc allocates storage for exactly count elements and constructs slot i
// with ctor(i).
func MakeFunc[T any, A memory.Allocator](alloc A, count uint, ctor func(i uint) T) gc.Result[*Vector[T, A], gc.Error] {
	return solo.Switch(traits.CheckElement[T](), func(uint) gc.Result[*Vector[T, A], gc.Error] {
		if count == 0 {
			return gc.Success(New[T](alloc))
		}
		return gc.MapSuccess(allocate[T](alloc, count), func(mem memory.Slice) *Vector[T, A] {
			v := &Vector[T, A]{alloc: alloc, mem: mem}
			slots := v.slots()
			for i := range count {
				slots[i] = ctor(i)
			}
			v.length = count
			return v
		})
	})
}

// MakeWithCapacity allocates storage for capacity elements and constructs none.
func MakeWithCapacity[T any, A memory.Allocator](alloc A, capacity uint) gc.Result[*Vector[T, A], gc.Error] {
	return solo.Switch(traits.CheckElement[T](), func(uint) gc.Result[*Vector[T, A], gc.Error] {
		if capacity == 0 {
			return gc.Success(New[T](alloc))
		}
		return gc.MapSuccess(allocate[T](alloc, capacity), func(mem memory.Slice) *Vector[T, A] {
			return &Vector[T, A]{alloc: alloc, mem: mem}
		})
	})
}

// MakeFromRaw adopts storage for size elements starting at ptr, with no
// constructed elements. See MakeFromRawLast.
func MakeFromRaw[T any, A memory.Allocator](alloc A, ptr *T, size uint) gc.Result[*Vector[T, A], gc.Error] {
	return MakeFromRawLast(alloc, ptr, size, ptr)
}

// MakeFromRawLast adopts storage for size elements starting at ptr, of which
// the elements in [ptr, last) are already constructed. The range must have
// come from alloc: the vector releases it there. It fails with
// InvalidArgument when ptr or last is nil, size is zero, or last lies outside
// [ptr, ptr+size].
func MakeFromRawLast[T any, A memory.Allocator](alloc A, ptr *T, size uint, last *T) gc.Result[*Vector[T, A], gc.Error] {
	return solo.Switch(traits.CheckElement[T](), func(elem uint) gc.Result[*Vector[T, A], gc.Error] {
		if ptr == nil || last == nil || size == 0 {
			return gc.Fail[*Vector[T, A]](gc.InvalidArgument)
		}
		if size > math.MaxUint/elem {
			return gc.Fail[*Vector[T, A]](gc.OverflowError)
		}

		begin, end := uintptr(unsafe.Pointer(ptr)), uintptr(unsafe.Pointer(last))
		if end < begin || uint(end-begin) > size*elem || uint(end-begin)%elem != 0 {
			return gc.Fail[*Vector[T, A]](gc.InvalidArgument)
		}

		return gc.Success(&Vector[T, A]{
			alloc:  alloc,
			mem:    memory.Make(unsafe.Pointer(ptr), size*elem),
			length: uint(end-begin) / elem,
		})
	})
}

func (v *Vector[T, A]) Length() uint {
	return v.length
}

func (v *Vector[T, A]) Capacity() uint {
	if v.mem.IsNull() {
		return 0
	}
	return v.mem.Size() / traits.SizeOf[T]()
}

func (v *Vector[T, A]) Empty() bool {
	return v.length == 0
}

func (v *Vector[T, A]) Allocator() A {
	return v.alloc
}

// At returns a pointer to element i, or OutOfRange.
func (v *Vector[T, A]) At(i uint) gc.Result[*T, gc.Error] {
	if v.mem.IsNull() || i >= v.length {
		return gc.Fail[*T](gc.OutOfRange)
	}
	return gc.Success(&v.slots()[i])
}

// Get returns a copy of element i, or OutOfRange.
func (v *Vector[T, A]) Get(i uint) gc.Result[T, gc.Error] {
	return gc.MapSuccess(v.At(i), func(p *T) T { return *p })
}

func (v *Vector[T, A]) Front() gc.Result[*T, gc.Error] {
	return v.At(0)
}

func (v *Vector[T, A]) Back() gc.Result[*T, gc.Error] {
	if v.length == 0 {
		return gc.Fail[*T](gc.OutOfRange)
	}
	return v.At(v.length - 1)
}

// Push appends value, growing the storage first when it is full.
func (v *Vector[T, A]) Push(value T) gc.Result[*T, gc.Error] {
	return v.Emplace(func(slot *T) {
		*slot = value
	})
}

// Emplace constructs a new last element in place with ctor. When the storage
// is full it is reallocated first, doubling the capacity; if that fails the
// vector is left unchanged and ctor is not called.
func (v *Vector[T, A]) Emplace(ctor func(slot *T)) gc.Result[*T, gc.Error] {
	return solo.Switch(v.grow(), func(uint) gc.Result[*T, gc.Error] {
		slot := &v.slots()[v.length]
		ctor(slot)
		v.length++
		return gc.Success(slot)
	})
}

// Pop removes the last element and hands it to the caller.
func (v *Vector[T, A]) Pop() gc.Result[T, gc.Error] {
	if v.length == 0 {
		return gc.Fail[T](gc.UnderflowError)
	}
	slots := v.slots()
	out := slots[v.length-1]
	var zero T
	slots[v.length-1] = zero
	v.length--
	return gc.Success(out)
}

// Reserve makes room for at least capacity elements and returns the
// resulting capacity.
func (v *Vector[T, A]) Reserve(capacity uint) gc.Result[uint, gc.Error] {
	if capacity <= v.Capacity() {
		return gc.Success(v.Capacity())
	}
	return v.reallocate(capacity)
}

// ShrinkToFit reallocates the storage to hold exactly Length() elements. An
// empty vector gives its storage back to the allocator.
func (v *Vector[T, A]) ShrinkToFit() gc.Result[uint, gc.Error] {
	switch {
	case v.length == v.Capacity():
		return gc.Success(v.length)
	case v.length == 0:
		v.alloc.Deallocate(v.mem.Move())
		return gc.Success(uint(0))
	}
	return v.reallocate(v.length)
}

// Clear destroys every element and keeps the storage.
func (v *Vector[T, A]) Clear() {
	if v.length == 0 {
		return
	}
	live := v.slots()[:v.length]
	for i := range live {
		traits.Destroy(&live[i])
	}
	clear(live)
	v.length = 0
}

// Equal reports whether both vectors hold equal elements in the same order.
func (v *Vector[T, A]) Equal(other *Vector[T, A]) bool {
	if v.Length() != other.Length() {
		return false
	}
	if v.length == 0 {
		return true
	}
	a, b := v.slots()[:v.length], other.slots()[:other.length]
	for i := range a {
		if !traits.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (v *Vector[T, A]) NotEqual(other *Vector[T, A]) bool {
	return !v.Equal(other)
}

// Copy returns a deep copy backed by a new allocation of exactly Length()
// elements from the same allocator.
func (v *Vector[T, A]) Copy() gc.Result[*Vector[T, A], gc.Error] {
	if v.length == 0 {
		return gc.Success(New[T](v.alloc))
	}
	src := v.slots()[:v.length]
	return MakeFunc(v.alloc, v.length, func(i uint) T {
		return traits.CopyOf(src[i])
	})
}

// Move transfers the storage and elements to a new vector and leaves v empty.
func (v *Vector[T, A]) Move() *Vector[T, A] {
	out := &Vector[T, A]{alloc: v.alloc, mem: v.mem.Move(), length: v.length}
	v.length = 0
	return out
}

// Release destroys every element and returns the storage to the allocator.
// Releasing an empty or already released vector does nothing.
func (v *Vector[T, A]) Release() {
	if v.mem.IsNull() {
		return
	}
	v.Clear()
	v.alloc.Deallocate(v.mem.Move())
}

// All yields the index and a copy of every element in order.
func (v *Vector[T, A]) All() iter.Seq2[uint, T] {
	return func(yield func(uint, T) bool) {
		for i := uint(0); i < v.length; i++ {
			if !yield(i, v.slots()[i]) {
				return
			}
		}
	}
}

// ForEach calls f with a pointer to every element in order.
func (v *Vector[T, A]) ForEach(f func(*T)) {
	for i := uint(0); i < v.length; i++ {
		f(&v.slots()[i])
	}
}

// Transform replaces every element with f applied to it.
func (v *Vector[T, A]) Transform(f func(T) T) {
	v.ForEach(func(p *T) {
		*p = f(*p)
	})
}

// ToSlice copies the elements into a Go slice.
func (v *Vector[T, A]) ToSlice() []T {
	if v.length == 0 {
		return []T{}
	}
	return slices.Clone(v.slots()[:v.length])
}

func (v *Vector[T, A]) slots() []T {
	return memory.View[T](v.mem)
}

func (v *Vector[T, A]) grow() gc.Result[uint, gc.Error] {
	capacity := v.Capacity()
	if v.length < capacity {
		return gc.Success(capacity)
	}
	if capacity == 0 {
		return v.reallocate(1)
	}
	if capacity > math.MaxUint/2 {
		return gc.Fail[uint](gc.OverflowError)
	}
	return v.reallocate(capacity * 2)
}

// reallocate moves the elements into new storage for capacity elements. When
// the allocation fails nothing about v changes.
func (v *Vector[T, A]) reallocate(capacity uint) gc.Result[uint, gc.Error] {
	if capacity < v.length {
		return gc.Fail[uint](gc.InvalidArgument)
	}
	return gc.MapSuccess(allocate[T](v.alloc, capacity), func(mem memory.Slice) uint {
		old := v.mem.Move()
		src := memory.View[T](old)
		copy(memory.View[T](mem), src[:v.length])
		// the elements now live in mem; the old slots own nothing
		clear(src[:v.length])
		v.alloc.Deallocate(old)
		v.mem = mem
		return v.Capacity()
	})
}

func allocate[T any, A memory.Allocator](alloc A, count uint) gc.Result[memory.Slice, gc.Error] {
	return solo.Switch(traits.CheckElement[T](), func(elem uint) gc.Result[memory.Slice, gc.Error] {
		if count > math.MaxUint/elem {
			return gc.Fail[memory.Slice](gc.OverflowError)
		}
		return alloc.Allocate(count * elem)
	})
}
