package memory

import (
	"slices"
	"time"
	"unsafe"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ib-77/gckit/pkg/gc"
)

// Allocation describes a live allocation recorded by Tracking.
type Allocation struct {
	ID        uuid.UUID
	Size      uint
	CreatedAt time.Time
}

// Stats is a snapshot of the counters kept by Tracking.
type Stats struct {
	Allocations   int
	Failures      int
	Deallocations int
	BadReleases   int
	LiveBytes     uint
	PeakBytes     uint
}

// TrackingOptions configures a Tracking allocator.
type TrackingOptions struct {
	// Logger receives a debug entry per allocation and an error entry per
	// release of a Slice this allocator does not own. Nil disables logging.
	Logger *zap.SugaredLogger
	// Clock returns the creation time stamped on each allocation. Nil means time.Now.
	Clock func() time.Time
}

// Tracking wraps an allocator and records every live allocation. Releasing a
// Slice it does not know, or one already released, is counted and logged and
// is not forwarded to the wrapped allocator. It is not safe for concurrent use.
type Tracking[A Allocator] struct {
	inner  A
	logger *zap.SugaredLogger
	clock  func() time.Time
	live   map[unsafe.Pointer]Allocation
	stats  Stats
}

const trackingLoggerName = "tracking-allocator"

func NewTracking[A Allocator](inner A, options TrackingOptions) *Tracking[A] {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	clock := options.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Tracking[A]{
		inner:  inner,
		logger: logger.Named(trackingLoggerName),
		clock:  clock,
		live:   make(map[unsafe.Pointer]Allocation),
	}
}

func (t *Tracking[A]) Allocate(size uint) gc.Result[Slice, gc.Error] {
	if size == 0 {
		return gc.Success(Null())
	}
	return t.inner.Allocate(size).
		OnSuccess(func(s Slice) {
			a := Allocation{ID: uuid.New(), Size: s.Size(), CreatedAt: t.clock().UTC()}
			t.live[s.Pointer()] = a
			t.stats.Allocations++
			t.stats.LiveBytes += a.Size
			t.stats.PeakBytes = max(t.stats.PeakBytes, t.stats.LiveBytes)
			t.logger.Debugw("allocated", "id", a.ID, "size", a.Size)
		}).
		OnFail(func(e gc.Error) {
			t.stats.Failures++
			t.logger.Debugw("allocation failed", "size", size, "error", e)
		})
}

func (t *Tracking[A]) Deallocate(s Slice) {
	if s.IsNull() {
		return
	}
	a, ok := t.live[s.Pointer()]
	if !ok || a.Size != s.Size() {
		t.stats.BadReleases++
		t.logger.Errorw("release of a slice not owned by this allocator", "size", s.Size())
		return
	}
	delete(t.live, s.Pointer())
	t.stats.Deallocations++
	t.stats.LiveBytes -= a.Size
	t.logger.Debugw("released", "id", a.ID, "size", a.Size)
	t.inner.Deallocate(s)
}

func (t *Tracking[A]) Stats() Stats {
	return t.stats
}

// Leaks returns the allocations not yet released, oldest first.
func (t *Tracking[A]) Leaks() []Allocation {
	out := make([]Allocation, 0, len(t.live))
	for _, a := range t.live {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b Allocation) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
	return out
}
