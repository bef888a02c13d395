//go:build !linux && !darwin && !freebsd && !openbsd && !dragonfly && !netbsd

package memory

// totalMemory is unknown here; Heap falls back to MaxAllocation and the
// runtime memory limit.
func totalMemory() uint64 {
	return 0
}
