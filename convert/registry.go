package convert

import (
	"reflect"
	"sync"

	"github.com/signadot/tony-format/go-ydom/debug"
	"github.com/signadot/tony-format/go-ydom/dom"
)

// codec is a Converter with its type erased, so the reflection layer
// can consult registered converters for nested values.
type codec interface {
	encodeValue(v reflect.Value) dom.Node
	decodeValue(n dom.Node, v reflect.Value) bool
}

type erased[T any] struct {
	c Converter[T]
}

func (e erased[T]) encodeValue(v reflect.Value) dom.Node {
	var x T
	reflect.ValueOf(&x).Elem().Set(v)
	return e.c.Encode(x)
}

func (e erased[T]) decodeValue(n dom.Node, v reflect.Value) bool {
	var x T
	if !e.c.Decode(n, &x) {
		return false
	}
	v.Set(reflect.ValueOf(&x).Elem())
	return true
}

var registry = struct {
	mu sync.RWMutex
	m  map[reflect.Type]codec
}{m: map[reflect.Type]codec{}}

// Register installs c as the converter for T, replacing any previous
// one, including a built-in converter. It is used by For, Encode and
// Decode, and by Marshal and Unmarshal for values of type T at any
// depth.
func Register[T any](c Converter[T]) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	t := reflect.TypeFor[T]()
	if debug.Convert() {
		debug.Logf("register converter for %s\n", t)
	}
	registry.m[t] = erased[T]{c: c}
}

// Unregister removes the converter registered for T.
func Unregister[T any]() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	delete(registry.m, reflect.TypeFor[T]())
}

func registered(t reflect.Type) (codec, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	c, ok := registry.m[t]
	return c, ok
}

// For returns the converter for T: the registered one if any, else a
// built-in one, else one based on Marshal and Unmarshal.
func For[T any]() Converter[T] {
	if c, ok := registered(reflect.TypeFor[T]()); ok {
		return c.(erased[T]).c
	}
	if c, ok := builtin[T](); ok {
		return c
	}
	return reflectCodec[T]{}
}

func builtin[T any]() (Converter[T], bool) {
	var c any
	switch any((*T)(nil)).(type) {
	case *string:
		c = StringCodec{}
	case *bool:
		c = BoolCodec{}
	case *Null:
		c = NullCodec{}
	case *dom.Node:
		c = NodeCodec{}
	case *int:
		c = IntCodec[int]{}
	case *int8:
		c = IntCodec[int8]{}
	case *int16:
		c = IntCodec[int16]{}
	case *int32:
		c = IntCodec[int32]{}
	case *int64:
		c = IntCodec[int64]{}
	case *uint:
		c = UintCodec[uint]{}
	case *uint8:
		c = UintCodec[uint8]{}
	case *uint16:
		c = UintCodec[uint16]{}
	case *uint32:
		c = UintCodec[uint32]{}
	case *uint64:
		c = UintCodec[uint64]{}
	case *float32:
		c = FloatCodec[float32]{}
	case *float64:
		c = FloatCodec[float64]{}
	default:
		return nil, false
	}
	return c.(Converter[T]), true
}

type reflectCodec[T any] struct{}

func (reflectCodec[T]) Encode(v T) dom.Node {
	n, err := Marshal(v)
	if err != nil {
		return dom.Node{}
	}
	return n
}

func (reflectCodec[T]) Decode(n dom.Node, v *T) bool {
	return Unmarshal(n, v) == nil
}
