package convert

import (
	"reflect"

	"github.com/signadot/tony-format/go-ydom/dom"
)

// Converter maps values of type T to and from nodes.
//
// Encode returns the zero Node when v cannot be represented. Decode
// reports whether n holds a value of type T; on false, *v may or may not
// have been modified.
type Converter[T any] interface {
	Encode(v T) dom.Node
	Decode(n dom.Node, v *T) bool
}

// Funcs builds a Converter from a pair of functions.
type Funcs[T any] struct {
	EncodeFunc func(T) dom.Node
	DecodeFunc func(dom.Node, *T) bool
}

func (f Funcs[T]) Encode(v T) dom.Node { return f.EncodeFunc(v) }

func (f Funcs[T]) Decode(n dom.Node, v *T) bool { return f.DecodeFunc(n, v) }

// Encode converts v with the converter For[T].
func Encode[T any](v T) dom.Node {
	return For[T]().Encode(v)
}

// Decode converts n into *v with the converter For[T].
func Decode[T any](n dom.Node, v *T) bool {
	return For[T]().Decode(n, v)
}

// As decodes n as a T, returning an error describing the mismatch when
// it cannot.
func As[T any](n dom.Node) (T, error) {
	var v T
	c := For[T]()
	if _, ok := c.(reflectCodec[T]); ok {
		err := Unmarshal(n, &v)
		return v, err
	}
	if !c.Decode(n, &v) {
		return v, typeError("", reflect.TypeFor[T]().String(), n)
	}
	return v, nil
}

// AsOr decodes n as a T, or returns fallback.
func AsOr[T any](n dom.Node, fallback T) T {
	var v T
	if !Decode(n, &v) {
		return fallback
	}
	return v
}

// KeyOf returns a map key matching stored keys which decode as T to a
// value equal to v.
func KeyOf[T comparable](v T) dom.Key {
	return typedKey[T]{v: v}
}

type typedKey[T comparable] struct {
	v T
}

func (k typedKey[T]) MatchKey(n *dom.Ident) bool {
	var got T
	return Decode(dom.Wrap(n, nil), &got) && got == k.v
}

func (k typedKey[T]) KeyNode(mem *dom.Memory) *dom.Ident {
	n := Encode(k.v)
	if !n.Valid() {
		return nil
	}
	mem.Merge(n.Memory())
	return n.Ident()
}
