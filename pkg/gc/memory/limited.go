package memory

import (
	"github.com/ib-77/gckit/pkg/gc"
)

// Limited caps the bytes an underlying allocator may hand out at once. It can
// also be armed to fail after a number of successful allocations, which makes
// exhaustion paths reachable in tests. It is not safe for concurrent use.
type Limited[A Allocator] struct {
	inner     A
	budget    uint
	used      uint
	failAfter int // <0 means never
}

// NewLimited wraps inner with a budget in bytes; zero means unlimited.
func NewLimited[A Allocator](inner A, budget uint) *Limited[A] {
	return &Limited[A]{inner: inner, budget: budget, failAfter: -1}
}

// FailAfter makes every allocation after the next n successful ones fail with
// BadAlloc. A negative n disarms it.
func (l *Limited[A]) FailAfter(n int) {
	l.failAfter = n
}

func (l *Limited[A]) Used() uint {
	return l.used
}

func (l *Limited[A]) Budget() uint {
	return l.budget
}

func (l *Limited[A]) Allocate(size uint) gc.Result[Slice, gc.Error] {
	if size == 0 {
		return gc.Success(Null())
	}
	if l.failAfter == 0 {
		return gc.Fail[Slice](gc.BadAlloc)
	}
	if l.budget != 0 && (size > l.budget || l.used > l.budget-size) {
		return gc.Fail[Slice](gc.BadAlloc)
	}

	return l.inner.Allocate(size).OnSuccess(func(s Slice) {
		l.used += s.Size()
		if l.failAfter > 0 {
			l.failAfter--
		}
	})
}

func (l *Limited[A]) Deallocate(s Slice) {
	if s.IsNull() {
		return
	}
	if s.Size() > l.used {
		l.used = 0
	} else {
		l.used -= s.Size()
	}
	l.inner.Deallocate(s)
}
