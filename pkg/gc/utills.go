package gc

import (
	"reflect"
)

func IsNil(i interface{}) bool {
	if i == nil {
		return true
	}
	v := reflect.ValueOf(i)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func GetErrors(err error) []error {
	if IsNil(err) {
		return []error{}
	}

	e, ok := err.(interface{ Unwrap() []error })
	if ok {
		return e.Unwrap()
	}

	return []error{err}
}

// FromError converts a Go (value, error) pair into a Result, classifying the
// error with Kind.
func FromError[T any](v T, err error) Result[T, Error] {
	if IsNil(err) {
		return Success(v)
	}
	kind, _ := Kind(err)
	return Fail[T](kind)
}

// ToError returns the error held by r as a Go error, or nil on success.
func ToError[T any, E error](r Result[T, E]) error {
	if r.ok {
		return nil
	}
	return r.err
}
