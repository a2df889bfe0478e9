package dom

import (
	"iter"

	"github.com/signadot/tony-format/go-ydom/debug"
)

// Ref points at one node storage and forwards every query and mutator
// to it. Several Refs may point at the same storage, in which case each
// observes the others' mutations. SetData is the only way to change
// which storage a Ref points at.
type Ref struct {
	d *data
}

func (r *Ref) IsDefined() bool { return r.d.isDefined() }
func (r *Ref) Type() Type { return r.d.nodeType() }
func (r *Ref) Scalar() string { return r.d.scalar }
func (r *Ref) Tag() string { return r.d.tag }

func (r *Ref) MarkDefined() { r.d.markDefined() }

// SetData makes r share o's storage. Refs that shared r's previous
// storage keep it.
func (r *Ref) SetData(o *Ref) {
	if o == nil || o.d == nil {
		violateErr("SetData", r.d.typ, ErrInvalidNode)
	}
	if debug.Alias() && r.d != o.d {
		debug.Logf("alias %s storage -> %s storage\n", r.d.nodeType(), o.d.nodeType())
	}
	r.d = o.d
}

// SameData reports whether r and o point at the same storage.
func (r *Ref) SameData(o *Ref) bool {
	return o != nil && r.d == o.d
}

// StorageID returns a comparable value identifying r's storage. Refs
// with SameData have equal StorageIDs.
func (r *Ref) StorageID() any { return r.d }

func (r *Ref) SetType(t Type) { r.d.setType(t) }
func (r *Ref) SetTag(tag string) { r.d.setTag(tag) }
func (r *Ref) SetNull() { r.d.setNull() }
func (r *Ref) SetScalar(s string) { r.d.setScalar(s) }

func (r *Ref) Size() int { return r.d.size() }

// Elements iterates the current contents of the node. Sequence elements
// are yielded with a nil key. Each range over the result starts from
// the node's state at that moment.
func (r *Ref) Elements() iter.Seq2[*Ident, *Ident] {
	return func(yield func(*Ident, *Ident) bool) {
		r.d.each(yield)
	}
}

func (r *Ref) Values() iter.Seq[*Ident] {
	return func(yield func(*Ident) bool) {
		r.d.each(func(_, v *Ident) bool {
			return yield(v)
		})
	}
}

func (r *Ref) Pairs() iter.Seq2[*Ident, *Ident] {
	return func(yield func(*Ident, *Ident) bool) {
		if r.d.nodeType() != MapType {
			return
		}
		r.d.each(yield)
	}
}

func (r *Ref) Append(n *Ident) { r.d.append(n) }

func (r *Ref) Insert(k, v *Ident, mem *Memory) { r.d.insert(k, v, mem) }

// Get returns the value stored under key, creating an undefined value
// under a new key node allocated from mem when there is none.
func (r *Ref) Get(key Key, mem *Memory) *Ident { return r.d.get(key, mem) }

// Lookup returns the value stored under key or nil. It never mutates.
func (r *Ref) Lookup(key Key) *Ident { return r.d.lookup(key) }

func (r *Ref) Remove(key Key) bool { return r.d.remove(key) }
