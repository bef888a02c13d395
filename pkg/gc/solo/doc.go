// Package solo contains single-value, synchronous combinators that operate on
// gc.Result[T, E]. Go methods cannot introduce type parameters, so every
// combinator that changes the success type lives here as a free function.
//
// Highlights:
// - Succeed/Fail: construct Result[T, E]
// - Validate/AndValidate/ValidateAll: turn predicate failures into errors
// - Switch: move from Result[In, E] to Result[Out, E] through a fallible step
// - Map/DoubleMap: transform successful values
// - Try: call a function (Out, error) and classify the error into gc.Error
// - Tee/TeeIf/DoubleTee: side-effect helpers
// - Finally: reduce to a concrete value via success/error handlers
package solo
