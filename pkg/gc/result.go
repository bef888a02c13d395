package gc

// Result holds exactly one of a success value of type T or an error value of
// type E. The zero value is the error state carrying the zero E.
type Result[T, E any] struct {
	value T
	err   E
	ok    bool
}

func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{
		value: v,
		ok:    true,
	}
}

func Err[T, E any](e E) Result[T, E] {
	return Result[T, E]{
		err: e,
		ok:  false,
	}
}

// Success is Ok specialised to the closed Error set.
func Success[T any](v T) Result[T, Error] {
	return Ok[T, Error](v)
}

// Fail is Err specialised to the closed Error set.
func Fail[T any](e Error) Result[T, Error] {
	return Err[T](e)
}

func (r Result[T, E]) IsOk() bool {
	return r.ok
}

func (r Result[T, E]) IsErr() bool {
	return !r.ok
}

// Get returns the success value, the error value and whether the result is a
// success. Only the member selected by the flag is meaningful.
func (r Result[T, E]) Get() (T, E, bool) {
	return r.value, r.err, r.ok
}

// AndThen replaces a success with the result of f. An error passes through
// and f is not called.
func (r Result[T, E]) AndThen(f func(T) Result[T, E]) Result[T, E] {
	if !r.ok {
		return r
	}
	return f(r.value)
}

// OrElse replaces an error with the result of f. A success passes through.
func (r Result[T, E]) OrElse(f func(E) Result[T, E]) Result[T, E] {
	if r.ok {
		return r
	}
	return f(r.err)
}

// OnSuccess calls f with the success value, if any.
func (r Result[T, E]) OnSuccess(f func(T)) Result[T, E] {
	if r.ok {
		f(r.value)
	}
	return r
}

// OnFail calls f with the error value, if any.
func (r Result[T, E]) OnFail(f func(E)) Result[T, E] {
	if !r.ok {
		f(r.err)
	}
	return r
}

// UnwrapValue returns the success value. It panics with a *ContractViolation
// when called on an error.
func (r Result[T, E]) UnwrapValue() T {
	if !r.ok {
		panic(&ContractViolation{Accessor: "UnwrapValue", Held: r.err})
	}
	return r.value
}

// UnwrapError returns the error value. It panics with a *ContractViolation
// when called on a success.
func (r Result[T, E]) UnwrapError() E {
	if r.ok {
		panic(&ContractViolation{Accessor: "UnwrapError", Held: r.value})
	}
	return r.err
}

func (r Result[T, E]) UnwrapValueOr(def T) T {
	if r.ok {
		return r.value
	}
	return def
}

func (r Result[T, E]) UnwrapValueOrElse(f func() T) T {
	if r.ok {
		return r.value
	}
	return f()
}

// MapSuccess transforms the success value, passing an error through.
// f must not fail; use AndThen or solo.Switch for fallible steps.
func MapSuccess[T, U, E any](r Result[T, E], f func(T) U) Result[U, E] {
	if r.ok {
		return Ok[U, E](f(r.value))
	}
	return Err[U](r.err)
}

// MapError transforms the error value, passing a success through.
func MapError[T, E, F any](r Result[T, E], f func(E) F) Result[T, F] {
	if r.ok {
		return Ok[T, F](r.value)
	}
	return Err[T](f(r.err))
}
