package chain

import (
	"github.com/ib-77/gckit/pkg/gc"
	"github.com/ib-77/gckit/pkg/gc/solo"
)

// Chain wraps a gc.Result to enable fluent chaining
type Chain[T, E any] struct {
	res gc.Result[T, E]
}

// Start creates a new chain from a gc.Result
func Start[T, E any](r gc.Result[T, E]) Chain[T, E] {
	return Chain[T, E]{res: r}
}

// FromValue creates a new chain from a successful value
func FromValue[T, E any](v T) Chain[T, E] {
	return Start(gc.Ok[T, E](v))
}

func (c Chain[T, E]) Result() gc.Result[T, E] {
	return c.res
}

// Then composes functions that already return gc.Result[T, E]
func (c Chain[T, E]) Then(onSuccess func(t T) gc.Result[T, E]) Chain[T, E] {
	return Chain[T, E]{res: c.res.AndThen(onSuccess)}
}

// Recover replaces a failure with the outcome of onError
func (c Chain[T, E]) Recover(onError func(err E) gc.Result[T, E]) Chain[T, E] {
	return Chain[T, E]{res: c.res.OrElse(onError)}
}

func (c Chain[T, E]) RepeatUntil(onSuccess func(t T) gc.Result[T, E],
	until func(t T) bool) Chain[T, E] {

	if c.res.IsErr() {
		return c
	}

	for {
		c = c.Then(onSuccess)

		if c.res.IsErr() || !until(c.res.UnwrapValue()) {
			return c
		}
	}
}

func (c Chain[T, E]) While(onSuccess func(t T) gc.Result[T, E],
	while func(t T) bool) Chain[T, E] {

	for c.res.IsOk() && while(c.res.UnwrapValue()) {
		c = c.Then(onSuccess)
	}
	return c
}

// Or returns the first successful chain, or the first failure when none succeeds
func (c Chain[T, E]) Or(alternatives ...Chain[T, E]) Chain[T, E] {
	if c.res.IsOk() {
		return c
	}
	for _, ch := range alternatives {
		if ch.res.IsOk() {
			return ch
		}
	}
	return c
}

// And returns the first failing chain, or the last one when all succeed
func (c Chain[T, E]) And(required ...Chain[T, E]) Chain[T, E] {
	last := c
	for _, ch := range append([]Chain[T, E]{c}, required...) {
		if ch.res.IsErr() {
			return ch
		}
		last = ch
	}
	return last
}

// Map transforms the successful value to a new value
func (c Chain[T, E]) Map(onSuccess func(t T) T) Chain[T, E] {
	return Chain[T, E]{res: gc.MapSuccess(c.res, onSuccess)}
}

// Ensure triggers side effects for success/failure without changing the result
func (c Chain[T, E]) Ensure(onSuccess func(T), onFailure func(E)) Chain[T, E] {
	v, err, ok := c.res.Get()
	if ok {
		if onSuccess != nil {
			onSuccess(v)
		}
		return c
	}
	if onFailure != nil {
		onFailure(err)
	}
	return c
}

// Finally collapses the chain to a final value, delegating to solo.Finally
func (c Chain[T, E]) Finally(onSuccess func(T) T, onFailure func(E) T) T {
	return solo.Finally(c.res, onSuccess, onFailure)
}
