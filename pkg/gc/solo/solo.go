package solo

import (
	"github.com/ib-77/gckit/pkg/gc"
)

func Succeed[T, E any](input T) gc.Result[T, E] {
	return gc.Ok[T, E](input)
}

func Fail[T, E any](err E) gc.Result[T, E] {
	return gc.Err[T](err)
}

func Validate[T, E any](input T, validate func(in T) (isValid bool, err E)) gc.Result[T, E] {
	return AndValidate(Succeed[T, E](input), validate)
}

func AndValidate[T, E any](input gc.Result[T, E],
	validate func(in T) (valid bool, err E)) gc.Result[T, E] {

	return input.AndThen(func(v T) gc.Result[T, E] {
		if isValid, err := validate(v); !isValid {
			return gc.Err[T](err)
		}
		return gc.Ok[T, E](v)
	})
}

// ValidateAll runs every step against the input. With breakOnError the first
// failing step ends the run; otherwise the last failure is reported.
func ValidateAll[T, E any](
	input gc.Result[T, E],
	breakOnError bool, // exit on first error
	inputsF ...func(in gc.Result[T, E]) gc.Result[T, E]) gc.Result[T, E] {

	var failed *gc.Result[T, E]
	return Join(
		input,
		breakOnError,
		func(current gc.Result[T, E]) gc.Result[T, E] {
			if current.IsErr() {
				failed = &current
			}
			if failed != nil {
				return *failed
			}
			return current
		},
		inputsF...,
	)
}

func Switch[In, Out, E any](input gc.Result[In, E],
	onSuccess func(r In) gc.Result[Out, E]) gc.Result[Out, E] {

	v, err, ok := input.Get()
	if ok {
		return onSuccess(v)
	}
	return gc.Err[Out](err)
}

func Map[In, Out, E any](input gc.Result[In, E], onSuccess func(r In) Out) gc.Result[Out, E] {
	return gc.MapSuccess(input, onSuccess)
}

func Tee[T, E any](input gc.Result[T, E], onSuccess func(r gc.Result[T, E])) gc.Result[T, E] {
	if input.IsOk() {
		onSuccess(input)
	}
	return input
}

func TeeIf[T, E any](input gc.Result[T, E],
	condition func(r gc.Result[T, E]) bool,
	onSuccessAndCondition func(r gc.Result[T, E])) gc.Result[T, E] {

	if input.IsOk() && condition(input) {
		onSuccessAndCondition(input)
	}
	return input
}

func DoubleTee[T, E any](input gc.Result[T, E],
	onSuccess func(r T),
	onError func(err E)) gc.Result[T, E] {

	v, err, ok := input.Get()
	if ok {
		onSuccess(v)
	} else {
		onError(err)
	}
	return input
}

// DoubleMap maps a success and reports an error to onError before passing it through.
func DoubleMap[In, Out, E any](input gc.Result[In, E],
	onSuccess func(r In) Out,
	onError func(err E)) gc.Result[Out, E] {

	v, err, ok := input.Get()
	if ok {
		return gc.Ok[Out, E](onSuccess(v))
	}
	onError(err)
	return gc.Err[Out](err)
}

// Try runs a Go-style function and classifies its error into gc.Error.
func Try[In, Out any](input gc.Result[In, gc.Error],
	onTryExecute func(r In) (Out, error)) gc.Result[Out, gc.Error] {

	return Switch(input, func(v In) gc.Result[Out, gc.Error] {
		out, err := onTryExecute(v)
		return gc.FromError(out, err)
	})
}

func FailOnError[T, E any](input gc.Result[T, E], maybeErr func(in T) (E, bool)) gc.Result[T, E] {
	return input.AndThen(func(v T) gc.Result[T, E] {
		if err, failed := maybeErr(v); failed {
			return gc.Err[T](err)
		}
		return input
	})
}

func Finally[In, Out, E any](input gc.Result[In, E],
	onSuccess func(r In) Out,
	onError func(err E) Out) Out {

	v, err, ok := input.Get()
	if ok {
		return onSuccess(v)
	}
	return onError(err)
}

// Join feeds the input through every step in order, passing each step's output
// through concat. With breakOnError the first failure is returned immediately.
func Join[T, E any](input gc.Result[T, E],
	breakOnError bool, // exit on first error
	concat func(current gc.Result[T, E]) gc.Result[T, E],
	inputsF ...func(in gc.Result[T, E]) gc.Result[T, E]) gc.Result[T, E] {

	if len(inputsF) == 0 || concat == nil {
		return input
	}

	finalResult := concat(inputsF[0](input))

	if finalResult.IsOk() || !breakOnError {
		for _, in := range inputsF[1:] {
			nextRes := concat(in(finalResult))
			if nextRes.IsErr() && breakOnError {
				return nextRes
			}
			finalResult = nextRes
		}
	}
	return finalResult
}
