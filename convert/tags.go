package convert

import (
	"reflect"
	"slices"
	"strings"
	"sync"
)

// field is a struct field as seen by Marshal and Unmarshal.
type field struct {
	name      string
	index     []int
	omitEmpty bool
}

var fieldCache sync.Map // reflect.Type -> []field

// fieldsOf lists the fields of struct type t. Fields come from the
// `ydom:"name,omitempty"` tag or the Go field name; "-" skips a field.
// Fields of embedded structs without a tag name are promoted, and names
// declared at a shallower depth win.
func fieldsOf(t reflect.Type) []field {
	if fs, ok := fieldCache.Load(t); ok {
		return fs.([]field)
	}
	var fs []field
	collectFields(t, nil, map[string]bool{}, &fs)
	fieldCache.Store(t, fs)
	return fs
}

func collectFields(t reflect.Type, index []int, seen map[string]bool, out *[]field) {
	var embedded []reflect.StructField
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, opts := parseTag(sf.Tag.Get("ydom"))
		if name == "-" {
			continue
		}
		if sf.Anonymous && name == "" && sf.Type.Kind() == reflect.Struct {
			embedded = append(embedded, sf)
			continue
		}
		if name == "" {
			name = sf.Name
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		*out = append(*out, field{
			name:      name,
			index:     append(slices.Clone(index), i),
			omitEmpty: slices.Contains(opts, "omitempty"),
		})
	}
	for _, sf := range embedded {
		collectFields(sf.Type, append(slices.Clone(index), sf.Index...), seen, out)
	}
}

func parseTag(tag string) (string, []string) {
	if tag == "" {
		return "", nil
	}
	parts := strings.Split(tag, ",")
	return parts[0], parts[1:]
}
