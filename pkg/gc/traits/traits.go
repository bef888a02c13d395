package traits

import (
	"reflect"
	"unsafe"

	"github.com/ib-77/gckit/pkg/gc"
)

// Copier is implemented by element types that need more than a bitwise copy.
type Copier[T any] interface {
	Copy() T
}

// Equaler is implemented by element types with their own notion of equality.
type Equaler[T any] interface {
	Equal(T) bool
}

// Destroyer is implemented by element types that release something when the
// slot holding them is destroyed.
type Destroyer interface {
	Destroy()
}

// CopyOf returns v.Copy() when T implements Copier, otherwise v itself.
func CopyOf[T any](v T) T {
	if c, ok := any(v).(Copier[T]); ok {
		return c.Copy()
	}
	if c, ok := any(&v).(Copier[T]); ok {
		return c.Copy()
	}
	return v
}

// Equal compares a and b with Equaler when available and == otherwise.
// T must be comparable when it does not implement Equaler.
func Equal[T any](a, b T) bool {
	if e, ok := any(a).(Equaler[T]); ok {
		return e.Equal(b)
	}
	if e, ok := any(&a).(Equaler[T]); ok {
		return e.Equal(b)
	}
	return any(a) == any(b)
}

// Destroy runs the Destroyer capability of *p or p, if any.
func Destroy[T any](p *T) {
	if d, ok := any(p).(Destroyer); ok {
		d.Destroy()
		return
	}
	if d, ok := any(*p).(Destroyer); ok {
		d.Destroy()
	}
}

// IsDestroyer reports whether T or *T implements Destroyer.
func IsDestroyer[T any]() bool {
	t := reflect.TypeFor[T]()
	d := reflect.TypeFor[Destroyer]()
	return t.Implements(d) || reflect.PointerTo(t).Implements(d)
}

func SizeOf[T any]() uint {
	var zero T
	return uint(unsafe.Sizeof(zero))
}

func AlignOf[T any]() uint {
	var zero T
	return uint(unsafe.Alignof(zero))
}

// TypeName returns the Go spelling of T, e.g. "[]int" or "container.point".
func TypeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

// PointerFree reports whether values of T hold no Go pointers. Only such
// values may live in memory the garbage collector does not scan.
func PointerFree[T any]() bool {
	return pointerFree(reflect.TypeFor[T]())
}

func pointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || pointerFree(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if !pointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		// pointers, strings, slices, maps, chans, funcs, interfaces, unsafe.Pointer
		return false
	}
}

// CheckElement validates T as a raw-memory element type. Zero-size types fail
// with SizeError and pointer-holding types with InvalidArgument.
func CheckElement[T any]() gc.Result[uint, gc.Error] {
	size := SizeOf[T]()
	if size == 0 {
		return gc.Fail[uint](gc.SizeError)
	}
	if !PointerFree[T]() {
		return gc.Fail[uint](gc.InvalidArgument)
	}
	return gc.Success(size)
}
