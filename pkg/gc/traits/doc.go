// Package traits detects the optional capabilities of element types (copy,
// equality, destruction) and checks whether a type may be stored in raw
// allocator memory.
//
// The allocator capability itself is the memory.Allocator constraint; types
// that do not satisfy it are rejected at build time wherever they are used as
// a type argument.
package traits
