package container

import (
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/gckit/pkg/gc"
	"github.com/ib-77/gckit/pkg/gc/memory"
)

type point struct {
	X, Y int32
}

// resource counts its destructions in a per-test pool.
type resource struct {
	pool uint32
	id   uint32
}

var (
	destroyedMu sync.Mutex
	destroyed   = map[uint32]map[uint32]int{}
)

func (r *resource) Destroy() {
	destroyedMu.Lock()
	defer destroyedMu.Unlock()
	if destroyed[r.pool] == nil {
		destroyed[r.pool] = map[uint32]int{}
	}
	destroyed[r.pool][r.id]++
}

func destructions(pool uint32) map[uint32]int {
	destroyedMu.Lock()
	defer destroyedMu.Unlock()
	out := map[uint32]int{}
	for k, v := range destroyed[pool] {
		out[k] = v
	}
	return out
}

// versioned copies bump their generation and compare by key only.
type versioned struct {
	key        int64
	generation int64
}

func (v versioned) Copy() versioned {
	v.generation++
	return v
}

func (v versioned) Equal(o versioned) bool {
	return v.key == o.key
}

func tracked(t *testing.T) *memory.Tracking[memory.Heap] {
	t.Helper()
	return memory.NewTracking(memory.Heap{}, memory.TrackingOptions{})
}

func TestMake_FillsEveryElement(t *testing.T) {
	t.Parallel()

	for _, n := range []uint{1, 2, 5, 64, 1000} {
		v := Make(memory.Heap{}, n, 45).UnwrapValue()
		assert.Equal(t, n, v.Length())
		assert.Equal(t, n, v.Capacity())
		assert.False(t, v.Empty())
		for i := range n {
			assert.Equal(t, 45, v.Get(i).UnwrapValue())
		}
		v.Release()
	}
}

func TestMake_ZeroCountSkipsAllocator(t *testing.T) {
	t.Parallel()

	alloc := tracked(t)
	v := Make(alloc, 0, 45).UnwrapValue()

	assert.Zero(t, v.Length())
	assert.Zero(t, v.Capacity())
	assert.True(t, v.Empty())
	assert.Zero(t, alloc.Stats().Allocations)
	assert.Zero(t, alloc.Stats().Failures)
}

func TestMake_AllocationFailure(t *testing.T) {
	t.Parallel()

	alloc := memory.NewLimited(memory.Heap{}, 16)
	res := Make(alloc, 5, int64(1))
	assert.Equal(t, gc.BadAlloc, res.UnwrapError())
	assert.Zero(t, alloc.Used())
}

func TestMake_Overflow(t *testing.T) {
	t.Parallel()

	alloc := tracked(t)
	assert.Equal(t, gc.OverflowError, Make(alloc, math.MaxUint, int64(0)).UnwrapError())
	assert.Zero(t, alloc.Stats().Allocations+alloc.Stats().Failures)
}

func TestMakeWithCapacity_BeyondHeap(t *testing.T) {
	t.Parallel()

	capacity := uint64(1) << 36 // 512GiB of int64
	if uint64(^uint(0)) < capacity*8 || memory.HeapLimit() >= capacity*8 {
		t.Skip("heap can back the request on this machine")
	}

	alloc := tracked(t)
	assert.Equal(t, gc.BadAlloc, MakeWithCapacity[int64](alloc, uint(capacity)).UnwrapError())
	assert.Equal(t, 1, alloc.Stats().Failures)
}

func TestMake_RejectsUnsupportedElements(t *testing.T) {
	t.Parallel()

	assert.Equal(t, gc.InvalidArgument, Make(memory.Heap{}, 3, "text").UnwrapError())
	assert.Equal(t, gc.InvalidArgument, MakeWithCapacity[*int](memory.Heap{}, 3).UnwrapError())
	assert.Equal(t, gc.SizeError, Make(memory.Heap{}, 3, struct{}{}).UnwrapError())
}

func TestMakeFunc(t *testing.T) {
	t.Parallel()

	v := MakeFunc(memory.Heap{}, 4, func(i uint) point {
		return point{X: int32(i), Y: int32(i * i)}
	}).UnwrapValue()
	defer v.Release()

	want := []point{{0, 0}, {1, 1}, {2, 4}, {3, 9}}
	if diff := cmp.Diff(want, v.ToSlice()); diff != "" {
		t.Fatalf("elements mismatch (-want +got):\n%s", diff)
	}
}

func TestMakeWithCapacity(t *testing.T) {
	t.Parallel()

	v := MakeWithCapacity[point](memory.Heap{}, 8).UnwrapValue()
	defer v.Release()

	assert.Zero(t, v.Length())
	assert.Equal(t, uint(8), v.Capacity())
	assert.True(t, v.Empty())
	assert.Equal(t, gc.OutOfRange, v.At(0).UnwrapError())

	empty := MakeWithCapacity[point](memory.Heap{}, 0).UnwrapValue()
	assert.Zero(t, empty.Capacity())
}

func TestAt_BoundsChecked(t *testing.T) {
	t.Parallel()

	v := Make(memory.Heap{}, 5, 45).UnwrapValue()
	defer v.Release()

	for i := range uint(5) {
		at := v.At(i)
		require.True(t, at.IsOk(), "at(%d)", i)
		assert.Equal(t, 45, *at.UnwrapValue())
	}
	assert.Equal(t, gc.OutOfRange, v.At(5).UnwrapError())
	assert.Equal(t, gc.OutOfRange, v.Get(math.MaxUint).UnwrapError())

	*v.At(2).UnwrapValue() = 7
	assert.Equal(t, 7, v.Get(2).UnwrapValue())

	empty := New[int](memory.Heap{})
	assert.Equal(t, gc.OutOfRange, empty.At(0).UnwrapError())
}

func TestFrontBack(t *testing.T) {
	t.Parallel()

	v := MakeFunc(memory.Heap{}, 3, func(i uint) int { return int(i) + 1 }).UnwrapValue()
	defer v.Release()

	assert.Equal(t, 1, *v.Front().UnwrapValue())
	assert.Equal(t, 3, *v.Back().UnwrapValue())

	empty := New[int](memory.Heap{})
	assert.Equal(t, gc.OutOfRange, empty.Front().UnwrapError())
	assert.Equal(t, gc.OutOfRange, empty.Back().UnwrapError())
}

func TestEqual(t *testing.T) {
	t.Parallel()

	a := Make(memory.Heap{}, 5, 45).UnwrapValue()
	b := Make(memory.Heap{}, 5, 45).UnwrapValue()
	c := Make(memory.Heap{}, 5, 46).UnwrapValue()
	d := Make(memory.Heap{}, 4, 45).UnwrapValue()

	assert.True(t, a.Equal(b))
	assert.False(t, a.NotEqual(b))
	assert.False(t, a.Equal(c))
	assert.True(t, a.NotEqual(c))
	assert.False(t, a.Equal(d))
	assert.True(t, New[int](memory.Heap{}).Equal(New[int](memory.Heap{})))

	*b.Back().UnwrapValue() = 0
	assert.False(t, a.Equal(b))
}

func TestEqual_UsesElementEquality(t *testing.T) {
	t.Parallel()

	a := Make(memory.Heap{}, 2, versioned{key: 1, generation: 0}).UnwrapValue()
	b := Make(memory.Heap{}, 2, versioned{key: 1, generation: 9}).UnwrapValue()
	assert.True(t, a.Equal(b))
}

func TestCopy_RoundTrip(t *testing.T) {
	t.Parallel()

	alloc := tracked(t)
	v := MakeFunc(alloc, 6, func(i uint) point { return point{X: int32(i)} }).UnwrapValue()
	require.True(t, v.Pop().IsOk())

	res := v.Copy()
	require.True(t, res.IsOk())
	dup := res.UnwrapValue()

	assert.Equal(t, v.Length(), dup.Length())
	assert.Equal(t, dup.Length(), dup.Capacity(), "copies are exact fit")
	assert.True(t, dup.Equal(v))
	assert.Equal(t, 2, alloc.Stats().Allocations)

	*dup.Front().UnwrapValue() = point{X: 100}
	assert.Equal(t, point{}, v.Get(0).UnwrapValue())
	assert.False(t, dup.Equal(v))

	v.Release()
	dup.Release()
	assert.Empty(t, alloc.Leaks())
}

func TestCopy_UsesElementCopy(t *testing.T) {
	t.Parallel()

	alloc := tracked(t)
	v := Make(alloc, 3, versioned{key: 4}).UnwrapValue()
	dup := v.Copy().UnwrapValue()

	assert.Equal(t, int64(1), v.Get(0).UnwrapValue().generation)
	assert.Equal(t, int64(2), dup.Get(0).UnwrapValue().generation)

	v.Release()
	dup.Release()
	assert.Empty(t, alloc.Leaks())
	assert.Zero(t, alloc.Stats().BadReleases)
}

func TestCopy_Failure(t *testing.T) {
	t.Parallel()

	alloc := memory.NewLimited(memory.Heap{}, 0)
	v := Make(alloc, 4, 1).UnwrapValue()
	alloc.FailAfter(0)

	assert.Equal(t, gc.BadAlloc, v.Copy().UnwrapError())
	assert.Equal(t, uint(4), v.Length())

	empty := New[int](alloc).Copy()
	assert.True(t, empty.IsOk(), "copying an empty vector does not allocate")
}

func TestPush_GrowsByDoubling(t *testing.T) {
	t.Parallel()

	alloc := tracked(t)
	v := New[int](alloc)

	var capacities []uint
	for i := range 9 {
		p := v.Push(i * 10)
		require.True(t, p.IsOk())
		assert.Equal(t, i*10, *p.UnwrapValue())
		capacities = append(capacities, v.Capacity())
	}

	assert.Equal(t, []uint{1, 2, 4, 4, 8, 8, 8, 8, 16}, capacities)
	assert.Equal(t, []int{0, 10, 20, 30, 40, 50, 60, 70, 80}, v.ToSlice())
	assert.Equal(t, uint(9), v.Length())

	v.Release()
	assert.Empty(t, alloc.Leaks())
	assert.Equal(t, 5, alloc.Stats().Allocations)
	assert.Equal(t, 5, alloc.Stats().Deallocations)
}

func TestPush_FailureLeavesVectorUnchanged(t *testing.T) {
	t.Parallel()

	alloc := memory.NewLimited(memory.Heap{}, 0)
	v := Make(alloc, 4, point{X: 1, Y: 2}).UnwrapValue()
	alloc.FailAfter(0)

	res := v.Push(point{X: 9})
	assert.Equal(t, gc.BadAlloc, res.UnwrapError())
	assert.Equal(t, uint(4), v.Length())
	assert.Equal(t, uint(4), v.Capacity())
	for _, p := range v.All() {
		assert.Equal(t, point{X: 1, Y: 2}, p)
	}

	alloc.FailAfter(-1)
	require.True(t, v.Push(point{X: 9}).IsOk())
	assert.Equal(t, uint(8), v.Capacity())
}

func TestReserve_AllOrNothing(t *testing.T) {
	t.Parallel()

	alloc := memory.NewLimited(memory.Heap{}, 256)
	v := MakeFunc(alloc, 10, func(i uint) int64 { return int64(i) }).UnwrapValue()
	before := v.ToSlice()

	assert.Equal(t, gc.BadAlloc, v.Reserve(100).UnwrapError())
	assert.Equal(t, uint(10), v.Length())
	assert.Equal(t, uint(10), v.Capacity())
	if diff := cmp.Diff(before, v.ToSlice()); diff != "" {
		t.Fatalf("elements changed after failed reserve (-before +after):\n%s", diff)
	}

	assert.Equal(t, uint(10), v.Reserve(4).UnwrapValue(), "reserving less keeps capacity")
	assert.Equal(t, uint(16), v.Reserve(16).UnwrapValue())
	assert.Equal(t, uint(16*8), alloc.Used())
	if diff := cmp.Diff(before, v.ToSlice()); diff != "" {
		t.Fatalf("elements changed after reserve (-before +after):\n%s", diff)
	}
}

func TestShrinkToFit(t *testing.T) {
	t.Parallel()

	alloc := tracked(t)
	v := MakeWithCapacity[int32](alloc, 16).UnwrapValue()
	v.Push(1)
	v.Push(2)
	v.Push(3)

	assert.Equal(t, uint(3), v.ShrinkToFit().UnwrapValue())
	assert.Equal(t, uint(3), v.Capacity())
	assert.Equal(t, []int32{1, 2, 3}, v.ToSlice())
	assert.Equal(t, uint(12), alloc.Stats().LiveBytes)

	v.Clear()
	assert.Zero(t, v.ShrinkToFit().UnwrapValue())
	assert.Zero(t, v.Capacity())
	assert.Empty(t, alloc.Leaks())
}

func TestPop(t *testing.T) {
	t.Parallel()

	v := MakeFunc(memory.Heap{}, 2, func(i uint) int { return int(i) + 1 }).UnwrapValue()
	defer v.Release()

	assert.Equal(t, 2, v.Pop().UnwrapValue())
	assert.Equal(t, 1, v.Pop().UnwrapValue())
	assert.Equal(t, gc.UnderflowError, v.Pop().UnwrapError())
	assert.Equal(t, uint(2), v.Capacity())
}

func TestClear_IsIdempotent(t *testing.T) {
	t.Parallel()

	const pool = 1
	v := MakeFunc(memory.Heap{}, 3, func(i uint) resource { return resource{pool: pool, id: uint32(i)} }).UnwrapValue()
	defer v.Release()

	v.Clear()
	assert.Zero(t, v.Length())
	assert.Equal(t, uint(3), v.Capacity())

	v.Clear()
	assert.Zero(t, v.Length())

	assert.Equal(t, map[uint32]int{0: 1, 1: 1, 2: 1}, destructions(pool))
}

func TestRelease_DestroysAndDeallocates(t *testing.T) {
	t.Parallel()

	const pool = 2
	alloc := tracked(t)
	v := MakeFunc(alloc, 2, func(i uint) resource { return resource{pool: pool, id: uint32(i)} }).UnwrapValue()
	require.True(t, v.Reserve(8).IsOk(), "moved elements must not be destroyed")

	v.Release()
	v.Release()

	assert.Equal(t, map[uint32]int{0: 1, 1: 1}, destructions(pool))
	assert.Zero(t, v.Capacity())
	assert.Empty(t, alloc.Leaks())
	assert.Zero(t, alloc.Stats().BadReleases)
}

func TestMove(t *testing.T) {
	t.Parallel()

	alloc := tracked(t)
	src := Make(alloc, 3, 8).UnwrapValue()
	dst := src.Move()

	assert.Zero(t, src.Length())
	assert.Zero(t, src.Capacity())
	assert.Equal(t, gc.OutOfRange, src.At(0).UnwrapError())
	assert.Equal(t, []int{8, 8, 8}, dst.ToSlice())

	src.Release()
	dst.Release()
	assert.Zero(t, alloc.Stats().BadReleases)
	assert.Empty(t, alloc.Leaks())
}

func TestMakeFromRaw(t *testing.T) {
	t.Parallel()

	alloc := tracked(t)
	adopt := func(words uint) (*int64, []int64) {
		s := alloc.Allocate(words * 8).UnwrapValue()
		return memory.BeginAs[int64](s), memory.View[int64](s)
	}

	assert.Equal(t, gc.InvalidArgument, MakeFromRaw[int](alloc, nil, 3).UnwrapError())

	// rejected adoptions leave the storage with the caller
	base, view := adopt(8)
	assert.Equal(t, gc.InvalidArgument, MakeFromRaw(alloc, base, 0).UnwrapError())
	assert.Equal(t, gc.InvalidArgument, MakeFromRawLast(alloc, base, 4, nil).UnwrapError())
	assert.Equal(t, gc.InvalidArgument, MakeFromRawLast(alloc, &view[1], 3, &view[0]).UnwrapError())
	assert.Equal(t, gc.InvalidArgument, MakeFromRawLast(alloc, base, 4, &view[5]).UnwrapError())

	empty := MakeFromRaw(alloc, base, 8).UnwrapValue()
	assert.Zero(t, empty.Length())
	assert.Equal(t, uint(8), empty.Capacity())
	empty.Release()

	base, view = adopt(4)
	view[0], view[1] = 11, 22
	v := MakeFromRawLast(alloc, base, 4, &view[2]).UnwrapValue()
	assert.Equal(t, uint(2), v.Length())
	assert.Equal(t, uint(4), v.Capacity())
	assert.Equal(t, []int64{11, 22}, v.ToSlice())
	require.True(t, v.Push(33).IsOk())
	assert.Equal(t, int64(33), view[2], "the vector works in the adopted storage")
	v.Release()

	assert.Empty(t, alloc.Leaks())
	assert.Zero(t, alloc.Stats().BadReleases)
	assert.Equal(t, 2, alloc.Stats().Deallocations)
}

func TestIteration(t *testing.T) {
	t.Parallel()

	v := MakeFunc(memory.Heap{}, 4, func(i uint) int { return int(i) }).UnwrapValue()
	defer v.Release()

	v.Transform(func(x int) int { return x * 3 })
	v.ForEach(func(p *int) { *p++ })

	var got []int
	for i, x := range v.All() {
		if i == 3 {
			break
		}
		got = append(got, x)
	}
	assert.Equal(t, []int{1, 4, 7}, got)
	assert.Equal(t, []int{1, 4, 7, 10}, v.ToSlice())
	assert.Equal(t, []int{}, New[int](memory.Heap{}).ToSlice())
}

func TestEmplace(t *testing.T) {
	t.Parallel()

	v := New[point](memory.Heap{})
	defer v.Release()

	p := v.Emplace(func(slot *point) {
		slot.X = 3
		slot.Y = 4
	})
	require.True(t, p.IsOk())
	assert.Equal(t, point{3, 4}, v.Get(0).UnwrapValue())
}

func TestMmapBackedVector(t *testing.T) {
	t.Parallel()

	if probe := (memory.Mmap{}).Allocate(1); probe.IsErr() {
		t.Skipf("mmap unavailable: %v", probe.UnwrapError())
	} else {
		memory.Mmap{}.Deallocate(probe.UnwrapValue())
	}

	alloc := memory.NewTracking(memory.Mmap{}, memory.TrackingOptions{})
	v := New[uint64](alloc)
	for i := range uint64(5000) {
		require.True(t, v.Push(i).IsOk())
	}
	assert.Equal(t, uint64(4999), *v.Back().UnwrapValue())

	dup := v.Copy().UnwrapValue()
	assert.True(t, dup.Equal(v))

	v.Release()
	dup.Release()
	assert.Empty(t, alloc.Leaks())
}
