package dom

// A Key locates an entry of a map node. Stored keys are matched by
// value, not identity.
type Key interface {
	// MatchKey reports whether the stored key k holds the key's value.
	MatchKey(k *Ident) bool
	// KeyNode returns a defined node holding the key's value, allocating
	// from mem if needed.
	KeyNode(mem *Memory) *Ident
}

type nodeKey struct {
	n   *Ident
	mem *Memory
}

// NodeKey uses n itself as a key. Stored keys match when they are Equal
// to n.
func NodeKey(n *Ident) Key {
	return nodeKey{n: n}
}

func (k nodeKey) MatchKey(o *Ident) bool {
	return k.n == o || Equal(k.n, o)
}

func (k nodeKey) KeyNode(mem *Memory) *Ident {
	if k.mem != nil && mem != nil {
		mem.Merge(k.mem)
	}
	return k.n
}

// ScalarKey matches stored scalar keys with the same text.
type ScalarKey string

func (k ScalarKey) MatchKey(o *Ident) bool {
	return o.Type() == ScalarType && o.Scalar() == string(k)
}

func (k ScalarKey) KeyNode(mem *Memory) *Ident {
	n := mem.CreateNode()
	n.SetScalar(string(k))
	return n
}
