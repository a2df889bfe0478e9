package convert

import (
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/signadot/tony-format/go-ydom/dom"
)

// Null is the Go value of a null node.
type Null struct{}

type StringCodec struct{}

func (StringCodec) Encode(v string) dom.Node { return dom.NewScalar(v) }

func (StringCodec) Decode(n dom.Node, v *string) bool {
	if !n.IsScalar() {
		return false
	}
	*v = n.Scalar()
	return true
}

type NullCodec struct{}

func (NullCodec) Encode(Null) dom.Node { return dom.NewNull() }

func (NullCodec) Decode(n dom.Node, _ *Null) bool { return n.IsNull() }

// BoolCodec encodes true and false. It decodes y/n, yes/no, true/false
// and on/off, each in lower, Title or UPPER case.
type BoolCodec struct{}

func (BoolCodec) Encode(v bool) dom.Node { return dom.NewScalar(strconv.FormatBool(v)) }

func (BoolCodec) Decode(n dom.Node, v *bool) bool {
	if !n.IsScalar() {
		return false
	}
	b, ok := parseBool(n.Scalar())
	if ok {
		*v = b
	}
	return ok
}

// NodeCodec passes nodes through unchanged.
type NodeCodec struct{}

func (NodeCodec) Encode(v dom.Node) dom.Node { return v }

func (NodeCodec) Decode(n dom.Node, v *dom.Node) bool {
	*v = n
	return n.Valid()
}

type IntCodec[T constraints.Signed] struct{}

func (IntCodec[T]) Encode(v T) dom.Node {
	return dom.NewScalar(strconv.FormatInt(int64(v), 10))
}

func (IntCodec[T]) Decode(n dom.Node, v *T) bool {
	if !n.IsScalar() {
		return false
	}
	i, ok := parseInt(n.Scalar(), reflect.TypeFor[T]().Bits())
	if ok {
		*v = T(i)
	}
	return ok
}

type UintCodec[T constraints.Unsigned] struct{}

func (UintCodec[T]) Encode(v T) dom.Node {
	return dom.NewScalar(strconv.FormatUint(uint64(v), 10))
}

func (UintCodec[T]) Decode(n dom.Node, v *T) bool {
	if !n.IsScalar() {
		return false
	}
	u, ok := parseUint(n.Scalar(), reflect.TypeFor[T]().Bits())
	if ok {
		*v = T(u)
	}
	return ok
}

type FloatCodec[T constraints.Float] struct{}

func (FloatCodec[T]) Encode(v T) dom.Node {
	return dom.NewScalar(formatFloat(float64(v), reflect.TypeFor[T]().Bits()))
}

func (FloatCodec[T]) Decode(n dom.Node, v *T) bool {
	if !n.IsScalar() {
		return false
	}
	f, ok := parseFloat(n.Scalar(), reflect.TypeFor[T]().Bits())
	if ok {
		*v = T(f)
	}
	return ok
}

// SliceCodec converts slices to sequences. A nil Elem uses For[T].
type SliceCodec[T any] struct {
	Elem Converter[T]
}

func (c SliceCodec[T]) elem() Converter[T] {
	if c.Elem == nil {
		return For[T]()
	}
	return c.Elem
}

func (c SliceCodec[T]) Encode(v []T) dom.Node {
	elem := c.elem()
	res := dom.NewType(dom.SequenceType)
	for _, x := range v {
		n := elem.Encode(x)
		if !n.Valid() {
			return dom.Node{}
		}
		res.Append(n)
	}
	return res
}

// Decode replaces *v with the decoded elements. *v is left untouched
// when any element fails to decode.
func (c SliceCodec[T]) Decode(n dom.Node, v *[]T) bool {
	if !n.IsSequence() {
		return false
	}
	elem := c.elem()
	res := make([]T, 0, n.Size())
	for e := range n.Values() {
		var x T
		if !elem.Decode(e, &x) {
			return false
		}
		res = append(res, x)
	}
	*v = res
	return true
}

// MapCodec converts Go maps to map nodes. Entries are encoded in key
// order, so equal maps encode to identical nodes. Nil Key or Value
// converters use For.
type MapCodec[K comparable, V any] struct {
	Key   Converter[K]
	Value Converter[V]
}

func (c MapCodec[K, V]) converters() (Converter[K], Converter[V]) {
	kc, vc := c.Key, c.Value
	if kc == nil {
		kc = For[K]()
	}
	if vc == nil {
		vc = For[V]()
	}
	return kc, vc
}

func (c MapCodec[K, V]) Encode(v map[K]V) dom.Node {
	kc, vc := c.converters()
	type entry struct{ k, v dom.Node }
	entries := make([]entry, 0, len(v))
	for k, x := range v {
		kn, vn := kc.Encode(k), vc.Encode(x)
		if !kn.IsDefined() || !vn.Valid() {
			return dom.Node{}
		}
		entries = append(entries, entry{kn, vn})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return dom.Compare(a.k.Ident(), b.k.Ident())
	})
	res := dom.NewType(dom.MapType)
	for _, e := range entries {
		res.Insert(e.k, e.v)
	}
	return res
}

// Decode replaces *v with a new map holding the decoded entries. *v is
// left untouched when any entry fails to decode.
func (c MapCodec[K, V]) Decode(n dom.Node, v *map[K]V) bool {
	if !n.IsMap() {
		return false
	}
	kc, vc := c.converters()
	res := make(map[K]V, n.Size())
	for kn, vn := range n.Pairs() {
		var k K
		var x V
		if !kc.Decode(kn, &k) || !vc.Decode(vn, &x) {
			return false
		}
		res[k] = x
	}
	*v = res
	return true
}

var boolSpellings = []struct{ t, f string }{
	{"y", "n"},
	{"yes", "no"},
	{"true", "false"},
	{"on", "off"},
}

func parseBool(s string) (bool, bool) {
	if !flexibleCase(s) {
		return false, false
	}
	s = strings.ToLower(s)
	for _, b := range boolSpellings {
		switch s {
		case b.t:
			return true, true
		case b.f:
			return false, true
		}
	}
	return false, false
}

// flexibleCase reports whether s is lower case, or starts with an upper
// case letter followed by all lower or all upper case.
func flexibleCase(s string) bool {
	if s == "" || s == strings.ToLower(s) {
		return true
	}
	first, rest := s[:1], s[1:]
	if first != strings.ToUpper(first) || first == strings.ToLower(first) {
		return false
	}
	return rest == strings.ToLower(rest) || rest == strings.ToUpper(rest)
}

func parseInt(s string, bits int) (int64, bool) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 0, bits)
	return i, err == nil
}

func parseUint(s string, bits int) (uint64, bool) {
	u, err := strconv.ParseUint(strings.TrimSpace(s), 0, bits)
	return u, err == nil
}

func parseFloat(s string, bits int) (float64, bool) {
	switch s {
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return math.Inf(1), true
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1), true
	case ".nan", ".NaN", ".NAN":
		return math.NaN(), true
	}
	s = strings.TrimSpace(s)
	// strconv spells infinities and NaN as words; only the sentinels
	// above are accepted.
	if strings.ContainsAny(s, "iInN") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, bits)
	return f, err == nil
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}
