// Package enumeration is the runtime base of generated smart enumerations.
//
// A generated type embeds Enumeration and implements Registry over itself:
//
//	type CardTypeEnumeration struct{ enumeration.Enumeration }
//
//	func (CardTypeEnumeration) Values() []CardTypeEnumeration { ... }
//
// Its values are singletons built once during package initialization and never change.
package enumeration

import (
	"cmp"
	"reflect"
)

// Enumeration holds the identity of one enumeration value.
type Enumeration struct {
	id   int
	name string
}

// New returns an Enumeration with the given id and display name.
func New(id int, name string) Enumeration {
	return Enumeration{id: id, name: name}
}

// ID returns the numeric id, the 1-based declaration position of the value.
func (e Enumeration) ID() int {
	return e.id
}

// Name returns the display name.
func (e Enumeration) Name() string {
	return e.name
}

func (e Enumeration) String() string {
	return e.name
}

// HashCode is derived from the id alone.
func (e Enumeration) HashCode() int {
	return e.id
}

// CompareTo orders by id.
func (e Enumeration) CompareTo(other Enumerable) int {
	return cmp.Compare(e.id, other.ID())
}

// MarshalText implements encoding.TextMarshaler using the display name.
func (e Enumeration) MarshalText() ([]byte, error) {
	return []byte(e.name), nil
}

func (e Enumeration) enumeration() Enumeration {
	return e
}

// Enumerable is implemented by every type embedding Enumeration.
type Enumerable interface {
	ID() int
	Name() string
	String() string
	enumeration() Enumeration
}

// Registry is implemented by generated types. Values returns every value of T in
// declaration order.
type Registry[T any] interface {
	Enumerable
	Values() []T
}

// Equal reports whether a and b have the same concrete type and the same id.
func Equal(a, b Enumerable) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.TypeOf(a) == reflect.TypeOf(b) && a.ID() == b.ID()
}

// Compare orders a and b by id. Values of different types compare by id as well.
func Compare(a, b Enumerable) int {
	return cmp.Compare(a.ID(), b.ID())
}

// AbsoluteDifference returns the absolute difference between the ids of a and b.
func AbsoluteDifference(a, b Enumerable) int {
	d := a.ID() - b.ID()
	if d < 0 {
		return -d
	}
	return d
}
