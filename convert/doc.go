// Package convert maps Go values to and from dom nodes.
//
// # Usage
//
//	// Encode and decode with the converter for a type
//	n := convert.Encode(map[string]int{"a": 1, "b": 2})
//	var m map[string]int
//	ok := convert.Decode(n, &m)
//
//	// Decode with an error describing the mismatch
//	port, err := convert.As[int](n.Lookup(dom.ScalarKey("port")))
//
//	// Look up a map entry by a typed key
//	v := n.Lookup(convert.KeyOf(42))
//
// Converters for strings, booleans, null and the numeric types are
// built in. Register installs a converter for any other type; types
// with none fall back to reflection (Marshal and Unmarshal), which
// handles structs, slices, arrays, maps, pointers and interfaces.
//
// Numeric scalars accept Go base prefixes. Floating point scalars also
// accept the YAML sentinels .inf, -.inf and .nan in lower, Title and
// UPPER case; integer types reject them.
package convert
