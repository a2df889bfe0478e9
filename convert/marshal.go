package convert

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"github.com/signadot/tony-format/go-ydom/dom"
)

// NodeMarshaler is implemented by types that encode themselves.
type NodeMarshaler interface {
	MarshalNode() (dom.Node, error)
}

// NodeUnmarshaler is implemented by types that decode themselves.
type NodeUnmarshaler interface {
	UnmarshalNode(dom.Node) error
}

var nodeType = reflect.TypeFor[dom.Node]()

// refKey identifies a Go pointer or map. The type is part of the key
// since a struct and its first field share an address.
type refKey struct {
	ptr uintptr
	typ reflect.Type
}

type encoder struct {
	// shared holds the node of every pointer and map encoded so far, so
	// that values reachable several ways, cycles included, encode to one
	// node.
	shared map[refKey]dom.Node
	// active holds slices being encoded, which cannot be shared.
	active map[refKey]string
}

// Marshal converts v to a node by reflection, using registered
// converters, NodeMarshaler and encoding.TextMarshaler where they
// apply.
//
// Pointers and maps reachable several times from v, including through
// cycles, encode as one shared node, so a cyclic Go value encodes as a
// cyclic node graph. A slice that contains itself is an error.
func Marshal(v any) (dom.Node, error) {
	e := &encoder{
		shared: map[refKey]dom.Node{},
		active: map[refKey]string{},
	}
	return e.encode(reflect.ValueOf(v), "")
}

func (e *encoder) encode(val reflect.Value, path string) (dom.Node, error) {
	if !val.IsValid() {
		return dom.NewNull(), nil
	}
	typ := val.Type()
	if c, ok := registered(typ); ok {
		n := c.encodeValue(val)
		if !n.Valid() {
			return dom.Node{}, &MarshalError{Path: path, Message: fmt.Sprintf("converter for %s cannot encode value", typ)}
		}
		return n, nil
	}
	if typ == nodeType {
		n := val.Interface().(dom.Node)
		if !n.Valid() {
			return dom.NewNull(), nil
		}
		return n, nil
	}
	switch typ.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if val.IsNil() {
			return dom.NewNull(), nil
		}
	}
	if n, ok, err := e.marshaler(val, path); ok {
		return n, err
	}

	switch typ.Kind() {
	case reflect.Pointer:
		return e.shareable(val, func() (dom.Node, error) {
			return e.encode(val.Elem(), path)
		})
	case reflect.Interface:
		return e.encode(val.Elem(), path)
	case reflect.String:
		return dom.NewScalar(val.String()), nil
	case reflect.Bool:
		return dom.NewScalar(strconv.FormatBool(val.Bool())), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return dom.NewScalar(strconv.FormatInt(val.Int(), 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return dom.NewScalar(strconv.FormatUint(val.Uint(), 10)), nil
	case reflect.Float32, reflect.Float64:
		return dom.NewScalar(formatFloat(val.Float(), typ.Bits())), nil
	case reflect.Slice:
		k := refKey{val.Pointer(), typ}
		if prev, seen := e.active[k]; seen {
			return dom.Node{}, &MarshalError{
				Path:    path,
				Message: fmt.Sprintf("circular reference: slice at %s contains itself (first seen at %s)", path, prev),
			}
		}
		e.active[k] = path
		defer delete(e.active, k)
		return e.encodeSeq(val, path)
	case reflect.Array:
		return e.encodeSeq(val, path)
	case reflect.Map:
		return e.shareable(val, func() (dom.Node, error) {
			return e.encodeMap(val, path)
		})
	case reflect.Struct:
		res := dom.NewType(dom.MapType)
		if err := e.encodeFields(res, val, path); err != nil {
			return dom.Node{}, err
		}
		return res, nil
	}
	return dom.Node{}, &MarshalError{Path: path, Message: fmt.Sprintf("unsupported type: %s", typ)}
}

// marshaler encodes val with its own MarshalNode or MarshalText method,
// reporting whether it had one.
func (e *encoder) marshaler(val reflect.Value, path string) (dom.Node, bool, error) {
	if !val.CanInterface() {
		return dom.Node{}, false, nil
	}
	candidates := []reflect.Value{val}
	if val.CanAddr() {
		candidates = append(candidates, val.Addr())
	}
	for _, c := range candidates {
		switch m := c.Interface().(type) {
		case NodeMarshaler:
			n, err := m.MarshalNode()
			if err != nil {
				return dom.Node{}, true, &MarshalError{Path: path, Message: err.Error(), Err: err}
			}
			if !n.Valid() {
				return dom.NewNull(), true, nil
			}
			return n, true, nil
		case encoding.TextMarshaler:
			text, err := m.MarshalText()
			if err != nil {
				return dom.Node{}, true, &MarshalError{Path: path, Message: err.Error(), Err: err}
			}
			return dom.NewScalar(string(text)), true, nil
		}
	}
	return dom.Node{}, false, nil
}

// shareable encodes a pointer or map once. The returned node is created
// before build runs and aliased to its result afterwards, so references
// back to val from inside build resolve to the same node.
func (e *encoder) shareable(val reflect.Value, build func() (dom.Node, error)) (dom.Node, error) {
	k := refKey{val.Pointer(), val.Type()}
	if n, ok := e.shared[k]; ok {
		return n, nil
	}
	res := dom.New()
	e.shared[k] = res
	n, err := build()
	if err != nil {
		return dom.Node{}, err
	}
	res.Assign(n)
	return res, nil
}

func (e *encoder) encodeSeq(val reflect.Value, path string) (dom.Node, error) {
	res := dom.NewType(dom.SequenceType)
	for i := range val.Len() {
		n, err := e.encode(val.Index(i), indexPath(path, i))
		if err != nil {
			return dom.Node{}, err
		}
		res.Append(n)
	}
	return res, nil
}

func (e *encoder) encodeMap(val reflect.Value, path string) (dom.Node, error) {
	type entry struct{ k, v dom.Node }
	entries := make([]entry, 0, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		k, err := e.encode(iter.Key(), path)
		if err != nil {
			return dom.Node{}, err
		}
		if !k.IsDefined() {
			return dom.Node{}, &MarshalError{Path: path, Message: fmt.Sprintf("map key %v refers to itself", iter.Key())}
		}
		v, err := e.encode(iter.Value(), joinPath(path, k.String()))
		if err != nil {
			return dom.Node{}, err
		}
		entries = append(entries, entry{k, v})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return dom.Compare(a.k.Ident(), b.k.Ident())
	})
	res := dom.NewType(dom.MapType)
	for _, ent := range entries {
		res.Insert(ent.k, ent.v)
	}
	return res, nil
}

func (e *encoder) encodeFields(res dom.Node, val reflect.Value, path string) error {
	for _, f := range fieldsOf(val.Type()) {
		fv := val.FieldByIndex(f.index)
		if f.omitEmpty && fv.IsZero() {
			continue
		}
		n, err := e.encode(fv, joinPath(path, f.name))
		if err != nil {
			return err
		}
		res.Insert(dom.NewScalar(f.name), n)
	}
	return nil
}
