package convert

import (
	"encoding"
	"fmt"
	"reflect"

	"github.com/signadot/tony-format/go-ydom/dom"
)

type ptrKey struct {
	id  any
	typ reflect.Type
}

type decoder struct {
	// ptrs maps node storages to the Go pointers decoded from them, so
	// aliased and cyclic nodes decode to shared and cyclic pointers.
	ptrs map[ptrKey]reflect.Value
	// active holds storages being decoded into interface values, which
	// have no pointer to break a cycle with.
	active map[any]bool
}

// Unmarshal decodes n into the value v points to, by reflection, using
// registered converters, NodeUnmarshaler and encoding.TextUnmarshaler
// where they apply.
//
// Structs decode from maps by field name; entries with no field and
// fields with no entry are ignored. Null decodes to the zero value of
// pointers, slices, maps and interfaces. A node reachable through an
// alias or a cycle decodes to a single Go pointer when the target is a
// pointer; decoding a cycle into an interface value is an error.
func Unmarshal(n dom.Node, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &UnmarshalError{Message: fmt.Sprintf("target must be a non-nil pointer, got %T", v)}
	}
	d := &decoder{
		ptrs:   map[ptrKey]reflect.Value{},
		active: map[any]bool{},
	}
	return d.decode(n, rv.Elem(), "")
}

func (d *decoder) decode(n dom.Node, val reflect.Value, path string) error {
	typ := val.Type()
	if c, ok := registered(typ); ok {
		if !c.decodeValue(n, val) {
			return typeError(path, typ.String(), n)
		}
		return nil
	}
	if typ == nodeType {
		val.Set(reflect.ValueOf(n))
		return nil
	}
	if !n.IsDefined() {
		return typeError(path, typ.String(), n)
	}
	if n.IsNull() {
		switch typ.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
			val.SetZero()
			return nil
		}
	}
	if ok, err := d.unmarshaler(n, val, path); ok {
		return err
	}

	switch typ.Kind() {
	case reflect.Pointer:
		k := ptrKey{n.StorageID(), typ}
		if p, ok := d.ptrs[k]; ok {
			val.Set(p)
			return nil
		}
		p := reflect.New(typ.Elem())
		d.ptrs[k] = p
		if err := d.decode(n, p.Elem(), path); err != nil {
			return err
		}
		val.Set(p)
		return nil
	case reflect.Interface:
		if typ.NumMethod() != 0 {
			return &UnmarshalError{Path: path, Message: fmt.Sprintf("cannot decode into non-empty interface %s", typ)}
		}
		x, err := d.generic(n, path)
		if err != nil {
			return err
		}
		if x == nil {
			val.SetZero()
		} else {
			val.Set(reflect.ValueOf(x))
		}
		return nil
	case reflect.String:
		if !n.IsScalar() {
			return typeError(path, typ.String(), n)
		}
		val.SetString(n.Scalar())
		return nil
	case reflect.Bool:
		b, ok := parseBool(n.Scalar())
		if !n.IsScalar() || !ok {
			return typeError(path, typ.String(), n)
		}
		val.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := parseInt(n.Scalar(), typ.Bits())
		if !n.IsScalar() || !ok {
			return typeError(path, typ.String(), n)
		}
		val.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, ok := parseUint(n.Scalar(), typ.Bits())
		if !n.IsScalar() || !ok {
			return typeError(path, typ.String(), n)
		}
		val.SetUint(u)
		return nil
	case reflect.Float32, reflect.Float64:
		f, ok := parseFloat(n.Scalar(), typ.Bits())
		if !n.IsScalar() || !ok {
			return typeError(path, typ.String(), n)
		}
		val.SetFloat(f)
		return nil
	case reflect.Slice:
		if !n.IsSequence() {
			return typeError(path, typ.String(), n)
		}
		res := reflect.MakeSlice(typ, 0, n.Size())
		i := 0
		for e := range n.Values() {
			x := reflect.New(typ.Elem()).Elem()
			if err := d.decode(e, x, indexPath(path, i)); err != nil {
				return err
			}
			res = reflect.Append(res, x)
			i++
		}
		val.Set(res)
		return nil
	case reflect.Array:
		if !n.IsSequence() {
			return typeError(path, typ.String(), n)
		}
		i := 0
		for e := range n.Values() {
			if i == val.Len() {
				break
			}
			if err := d.decode(e, val.Index(i), indexPath(path, i)); err != nil {
				return err
			}
			i++
		}
		for ; i < val.Len(); i++ {
			val.Index(i).SetZero()
		}
		return nil
	case reflect.Map:
		if !n.IsMap() {
			return typeError(path, typ.String(), n)
		}
		res := reflect.MakeMapWithSize(typ, n.Size())
		for kn, vn := range n.Pairs() {
			k := reflect.New(typ.Key()).Elem()
			if err := d.decode(kn, k, path); err != nil {
				return err
			}
			x := reflect.New(typ.Elem()).Elem()
			if err := d.decode(vn, x, joinPath(path, kn.String())); err != nil {
				return err
			}
			res.SetMapIndex(k, x)
		}
		val.Set(res)
		return nil
	case reflect.Struct:
		if !n.IsMap() {
			return typeError(path, typ.String(), n)
		}
		for _, f := range fieldsOf(typ) {
			fn := n.Lookup(dom.ScalarKey(f.name))
			if !fn.Valid() {
				continue
			}
			if err := d.decode(fn, val.FieldByIndex(f.index), joinPath(path, f.name)); err != nil {
				return err
			}
		}
		return nil
	}
	return &UnmarshalError{Path: path, Message: fmt.Sprintf("unsupported type: %s", typ)}
}

// unmarshaler decodes n with val's own UnmarshalNode or UnmarshalText
// method, reporting whether it had one.
func (d *decoder) unmarshaler(n dom.Node, val reflect.Value, path string) (bool, error) {
	if !val.CanAddr() || !val.Addr().CanInterface() {
		return false, nil
	}
	switch u := val.Addr().Interface().(type) {
	case NodeUnmarshaler:
		if err := u.UnmarshalNode(n); err != nil {
			return true, &UnmarshalError{Path: path, Err: err}
		}
		return true, nil
	case encoding.TextUnmarshaler:
		if !n.IsScalar() {
			return true, typeError(path, val.Type().String(), n)
		}
		if err := u.UnmarshalText([]byte(n.Scalar())); err != nil {
			return true, &UnmarshalError{Path: path, Err: err}
		}
		return true, nil
	}
	return false, nil
}

// generic decodes n into nil, string, []any or map[string]any.
func (d *decoder) generic(n dom.Node, path string) (any, error) {
	switch n.Type() {
	case dom.NullType:
		return nil, nil
	case dom.ScalarType:
		return n.Scalar(), nil
	case dom.UndefinedType:
		return nil, typeError(path, "interface {}", n)
	}
	id := n.StorageID()
	if d.active[id] {
		return nil, &UnmarshalError{Path: path, Message: "cyclic node cannot be decoded into an interface value"}
	}
	d.active[id] = true
	defer delete(d.active, id)

	if n.IsSequence() {
		res := make([]any, 0, n.Size())
		i := 0
		for e := range n.Values() {
			x, err := d.generic(e, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			res = append(res, x)
			i++
		}
		return res, nil
	}
	res := make(map[string]any, n.Size())
	for k, v := range n.Pairs() {
		if !k.IsScalar() {
			return nil, &UnmarshalError{Path: path, Message: fmt.Sprintf("non-scalar key %s", k)}
		}
		x, err := d.generic(v, joinPath(path, k.Scalar()))
		if err != nil {
			return nil, err
		}
		res[k.Scalar()] = x
	}
	return res, nil
}
