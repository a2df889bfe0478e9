package dom

import "iter"

// Node is a handle on a node and the memory that owns it. It is the
// surface converters and applications use; copying a Node copies the
// handle, not the value.
//
// The zero Node, also returned by Lookup on a miss, is the undefined
// sentinel: it reports UndefinedType and panics on mutation.
type Node struct {
	n   *Ident
	mem *Memory
}

// New returns an undefined node in a fresh memory.
func New() Node {
	mem := NewMemory()
	return Node{n: mem.CreateNode(), mem: mem}
}

// NewIn returns an undefined node allocated from mem.
func NewIn(mem *Memory) Node {
	return Node{n: mem.CreateNode(), mem: mem}
}

func NewNull() Node {
	res := New()
	res.n.SetNull()
	return res
}

func NewScalar(s string) Node {
	res := New()
	res.n.SetScalar(s)
	return res
}

// NewType returns a defined, empty node of type t.
func NewType(t Type) Node {
	res := New()
	if t == UndefinedType {
		return res
	}
	res.n.SetType(t)
	res.n.MarkDefined()
	return res
}

// Wrap returns a handle on n, which must be owned by mem.
func Wrap(n *Ident, mem *Memory) Node {
	return Node{n: n, mem: mem}
}

func (x Node) Ident() *Ident { return x.n }
func (x Node) Memory() *Memory { return x.mem }

// Valid reports whether x refers to a node, as opposed to being the
// undefined sentinel.
func (x Node) Valid() bool { return x.n != nil }

func (x Node) Type() Type {
	if x.n == nil {
		return UndefinedType
	}
	return x.n.Type()
}

func (x Node) IsDefined() bool { return x.n != nil && x.n.IsDefined() }
func (x Node) IsNull() bool { return x.Type() == NullType }
func (x Node) IsScalar() bool { return x.Type() == ScalarType }
func (x Node) IsSequence() bool { return x.Type() == SequenceType }
func (x Node) IsMap() bool { return x.Type() == MapType }

func (x Node) Scalar() string {
	if x.n == nil {
		return ""
	}
	return x.n.Scalar()
}

func (x Node) Tag() string {
	if x.n == nil {
		return ""
	}
	return x.n.Tag()
}

func (x Node) Size() int {
	if x.n == nil {
		return 0
	}
	return x.n.Size()
}

func (x Node) wrap(n *Ident) Node {
	if n == nil {
		return Node{}
	}
	return Node{n: n, mem: x.mem}
}

// Elements iterates the node's contents; sequence elements come with a
// zero key.
func (x Node) Elements() iter.Seq2[Node, Node] {
	return func(yield func(Node, Node) bool) {
		if x.n == nil {
			return
		}
		for k, v := range x.n.Elements() {
			if !yield(x.wrap(k), x.wrap(v)) {
				return
			}
		}
	}
}

func (x Node) Values() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if x.n == nil {
			return
		}
		for v := range x.n.Values() {
			if !yield(x.wrap(v)) {
				return
			}
		}
	}
}

func (x Node) Pairs() iter.Seq2[Node, Node] {
	return func(yield func(Node, Node) bool) {
		if x.n == nil {
			return
		}
		for k, v := range x.n.Pairs() {
			if !yield(x.wrap(k), x.wrap(v)) {
				return
			}
		}
	}
}

// Index returns the i'th sequence element or the undefined sentinel.
func (x Node) Index(i int) Node {
	if x.Type() != SequenceType || i < 0 || i >= len(x.n.d.seq) {
		return Node{}
	}
	return x.wrap(x.n.d.seq[i])
}

func (x Node) must(op string) {
	if x.n == nil {
		panic(&ContractError{Op: op, Type: UndefinedType, Err: ErrInvalidNode})
	}
}

func (x Node) SetTag(tag string) {
	x.must("SetTag")
	x.n.SetTag(tag)
}

func (x Node) SetNull() {
	x.must("SetNull")
	x.n.SetNull()
}

func (x Node) SetScalar(s string) {
	x.must("SetScalar")
	x.n.SetScalar(s)
}

// Append adds v to the end of the sequence x, taking ownership of v's
// memory.
func (x Node) Append(v Node) {
	x.must("Append")
	v.must("Append")
	x.mem.Merge(v.mem)
	x.n.Append(v.n)
}

// Insert stores the pair k, v in the map x, taking ownership of their
// memory.
func (x Node) Insert(k, v Node) {
	x.must("Insert")
	k.must("Insert")
	v.must("Insert")
	x.mem.Merge(k.mem)
	x.mem.Merge(v.mem)
	x.n.Insert(k.n, v.n, x.mem)
}

// Get returns the value under key, creating an undefined entry when
// there is none.
func (x Node) Get(key Key) Node {
	x.must("Get")
	return x.wrap(x.n.Get(key, x.mem))
}

// Lookup returns the value under key, or the undefined sentinel. It does
// not modify x.
func (x Node) Lookup(key Key) Node {
	if x.n == nil {
		return Node{}
	}
	return x.wrap(x.n.Lookup(key))
}

// Set stores v under key, aliasing v's storage.
func (x Node) Set(key Key, v Node) {
	x.Get(key).Assign(v)
}

func (x Node) Remove(key Key) bool {
	if x.n == nil {
		return false
	}
	return x.n.Remove(key)
}

// Assign makes x denote the same value as v: both share v's storage from
// now on, and x's memory takes ownership of v's.
func (x Node) Assign(v Node) {
	x.must("Assign")
	v.must("Assign")
	x.mem.Merge(v.mem)
	x.n.SetData(&v.n.Ref)
}

// Key returns a key matching x's value, which can be used to insert x
// itself as a key into another map.
func (x Node) Key() Key {
	x.must("Key")
	return nodeKey{n: x.n, mem: x.mem}
}

// Is reports whether x and o are handles on the same identity.
func (x Node) Is(o Node) bool {
	return x.n == o.n
}

// StorageID identifies the storage x denotes; aliases share it. The
// sentinel has a nil StorageID.
func (x Node) StorageID() any {
	if x.n == nil {
		return nil
	}
	return x.n.StorageID()
}

func (x Node) Equal(o Node) bool {
	return Equal(x.n, o.n)
}

func (x Node) Hash() uint64 {
	x.must("Hash")
	return Hash(x.n)
}
