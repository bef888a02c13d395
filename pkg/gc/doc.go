// Package gc provides Result[T, E], a value holding exactly one of a success
// value or an error value, and Error, the closed set of failure kinds used by
// the memory and container packages.
//
// Highlights:
// - Ok/Err (and Success/Fail for the Error set): construct a Result
// - AndThen/OrElse: chain fallible steps and recover from errors
// - MapSuccess/MapError: transform one side and pass the other through
// - UnwrapValue/UnwrapError: unchecked accessors that panic on misuse
// - UnwrapValueOr/UnwrapValueOrElse: total accessors
// - Kind/FromError: classify Go errors into the Error set
package gc
