package gc

import (
	"errors"
	"fmt"
	"syscall"
)

// Error is the closed set of failure kinds surfaced by this module.
// The zero value is UnknownError.
type Error uint8

const (
	UnknownError Error = iota
	InvalidArgument
	DomainError
	SizeError
	OutOfRange
	FutureError
	RangeError
	OverflowError
	UnderflowError
	BadAlloc
	InsufficientRights
)

// allErrors is the ordered closed set. Unexported so callers cannot mutate it.
var allErrors = []Error{
	InvalidArgument,
	DomainError,
	SizeError,
	OutOfRange,
	FutureError,
	RangeError,
	OverflowError,
	UnderflowError,
	BadAlloc,
	InsufficientRights,
	UnknownError,
}

var errorNames = map[Error]string{
	UnknownError:       "unknown_error",
	InvalidArgument:    "invalid_argument",
	DomainError:        "domain_error",
	SizeError:          "size_error",
	OutOfRange:         "out_of_range",
	FutureError:        "future_error",
	RangeError:         "range_error",
	OverflowError:      "overflow_error",
	UnderflowError:     "underflow_error",
	BadAlloc:           "bad_alloc",
	InsufficientRights: "insufficient_rights",
}

// Errors returns a copy of every Error value in a stable order.
func Errors() []Error {
	out := make([]Error, len(allErrors))
	copy(out, allErrors)
	return out
}

// IsKnown reports whether e belongs to the closed set.
func (e Error) IsKnown() bool {
	_, ok := errorNames[e]
	return ok
}

func (e Error) String() string {
	if name, ok := errorNames[e]; ok {
		return name
	}
	return fmt.Sprintf("error(%d)", uint8(e))
}

func (e Error) Error() string {
	return e.String()
}

// Kind classifies err into the closed set. The members of a joined error
// are classified in order and the first known kind wins. The boolean is
// false for a nil err.
func Kind(err error) (Error, bool) {
	if IsNil(err) {
		return UnknownError, false
	}
	for _, member := range GetErrors(err) {
		if kind := classify(member); kind != UnknownError {
			return kind, true
		}
	}
	return UnknownError, true
}

func classify(err error) Error {
	var e Error
	if errors.As(err, &e) {
		return e
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ENOMEM:
			return BadAlloc
		case syscall.EACCES, syscall.EPERM:
			return InsufficientRights
		case syscall.EINVAL:
			return InvalidArgument
		case syscall.ERANGE:
			return RangeError
		case syscall.EOVERFLOW:
			return OverflowError
		}
	}
	return UnknownError
}

// ContractViolation is the panic payload raised by the unchecked accessors
// UnwrapValue and UnwrapError.
type ContractViolation struct {
	Accessor string
	Held     any
}

func (c *ContractViolation) Error() string {
	return fmt.Sprintf("gc: %s called on a result holding %v", c.Accessor, c.Held)
}
