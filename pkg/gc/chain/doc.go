// Package chain provides a fluent wrapper around gc.Result[T, E]
// for building synchronous chains using solo primitives.
//
// Key operations:
// - Start/FromValue: begin a chain from a Result or a value
// - Then: continue with a fallible step; failures short-circuit
// - Recover: replace a failure with a fallback step
// - Map: transform the successful value
// - RepeatUntil/While: loop a step while it keeps succeeding
// - Or/And: pick among several chains
// - Ensure: run side effects without changing the result
// - Finally: collapse the chain into a final value via handlers
package chain
