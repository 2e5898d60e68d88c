package enumeration

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNotFound is matched by every lookup miss.
var ErrNotFound = errors.New("enumeration value not found")

// Lookup kinds reported by NotFoundError.
const (
	KindValue       = "value"
	KindDisplayName = "display name"
)

// NotFoundError is returned when a lookup matches no value of a type.
type NotFoundError struct {
	Value any
	Kind  string
	Type  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("'%v' is not a valid %s in %s", e.Value, e.Kind, e.Type)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// All returns every value of T in declaration order. The slice is a copy.
func All[T Registry[T]]() []T {
	var zero T
	return zero.Values()
}

// FromValue returns the value of T with the given id.
func FromValue[T Registry[T]](id int) (T, error) {
	if v, ok := TryFromValue[T](id); ok {
		return v, nil
	}
	var zero T
	return zero, notFound[T](id, KindValue)
}

// FromDisplayName returns the value of T whose name equals name exactly.
func FromDisplayName[T Registry[T]](name string) (T, error) {
	if v, ok := TryFromDisplayName[T](name); ok {
		return v, nil
	}
	var zero T
	return zero, notFound[T](name, KindDisplayName)
}

// TryFromValue is like FromValue but reports a miss with false.
func TryFromValue[T Registry[T]](id int) (T, bool) {
	return find(func(v T) bool { return v.ID() == id })
}

// TryFromDisplayName is like FromDisplayName but reports a miss with false.
func TryFromDisplayName[T Registry[T]](name string) (T, bool) {
	return find(func(v T) bool { return v.Name() == name })
}

func find[T Registry[T]](match func(T) bool) (T, bool) {
	for _, v := range All[T]() {
		if match(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func notFound[T any](value any, kind string) error {
	return &NotFoundError{
		Value: value,
		Kind:  kind,
		Type:  reflect.TypeFor[T]().String(),
	}
}
