// Package memory provides Slice, an owning view over a contiguous byte range,
// and the Allocator capability that produces and releases slices.
//
// Providers:
//   - Heap: the Go heap, word aligned and zeroed. It is the Default.
//   - Mmap: anonymous kernel mappings (unix only).
//   - Limited: a byte budget and fault injection around another allocator.
//   - Tracking: leak and double-release detection around another allocator.
//
// Memory handed out by these providers is not scanned by the garbage
// collector: values stored in it must not hold Go pointers.
package memory
