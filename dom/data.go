package dom

import (
	"slices"
	"strconv"

	"github.com/signadot/tony-format/go-ydom/debug"
)

type pair struct {
	key   *Ident
	value *Ident
}

// data is the typed payload shared by every Ref pointing at it.
//
// A map keeps two lists: entries, whose values were defined when they
// were last written, and pending, whose values were still undefined.
// Pending pairs move to entries, in order, the next time the map is
// sized or iterated after their value becomes defined.
type data struct {
	defined bool
	typ     Type
	tag     string
	tagSet  bool

	scalar string

	seq     []*Ident
	seqSize int

	entries []pair
	pending []pair
}

func newData() *data {
	return &data{}
}

func (d *data) isDefined() bool {
	return d.defined
}

func (d *data) nodeType() Type {
	if !d.defined {
		return UndefinedType
	}
	return d.typ
}

func (d *data) markDefined() {
	d.defined = true
}

func (d *data) setType(t Type) {
	if t == d.typ {
		return
	}
	switch {
	case d.typ == UndefinedType:
	case d.typ == SequenceType && t == MapType && len(d.seq) == 0:
	default:
		violate("SetType("+t.String()+")", d.typ)
	}
	d.typ = t
	if !d.tagSet {
		d.tag = t.ImplicitTag()
	}
}

func (d *data) setTag(tag string) {
	d.tag = tag
	d.tagSet = true
}

func (d *data) setNull() {
	switch d.typ {
	case UndefinedType, NullType:
	default:
		violate("SetNull", d.typ)
	}
	d.setType(NullType)
	d.markDefined()
}

func (d *data) setScalar(s string) {
	switch d.typ {
	case UndefinedType, ScalarType:
	default:
		violate("SetScalar", d.typ)
	}
	d.setType(ScalarType)
	d.scalar = s
	d.markDefined()
}

func (d *data) size() int {
	switch d.nodeType() {
	case SequenceType:
		d.computeSeqSize()
		return d.seqSize
	case MapType:
		d.reconcile()
		return len(d.entries)
	}
	return 0
}

// computeSeqSize extends the cached count over the defined prefix of
// the sequence.
func (d *data) computeSeqSize() {
	for d.seqSize < len(d.seq) && d.seq[d.seqSize].IsDefined() {
		d.seqSize++
	}
}

func (d *data) each(yield func(*Ident, *Ident) bool) {
	switch d.nodeType() {
	case SequenceType:
		for i := 0; i < len(d.seq); i++ {
			if !yield(nil, d.seq[i]) {
				return
			}
		}
	case MapType:
		d.reconcile()
		for i := 0; i < len(d.entries); i++ {
			e := d.entries[i]
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

func (d *data) append(n *Ident) {
	if n == nil {
		violateErr("Append", d.typ, ErrInvalidNode)
	}
	switch d.typ {
	case UndefinedType:
		d.setType(SequenceType)
	case SequenceType:
	default:
		violate("Append", d.typ)
	}
	d.markDefined()
	d.seq = append(d.seq, n)
}

func (d *data) insert(k, v *Ident, mem *Memory) {
	if k == nil || v == nil {
		violateErr("Insert", d.typ, ErrInvalidNode)
	}
	d.ensureMap("Insert", mem)
	if !k.IsDefined() {
		violateErr("Insert", d.typ, ErrUndefinedKey)
	}
	d.insertPair(k, v)
}

// ensureMap promotes d to a map, converting a sequence into index keyed
// entries.
func (d *data) ensureMap(op string, mem *Memory) {
	switch d.typ {
	case UndefinedType:
		d.setType(MapType)
	case SequenceType:
		d.convertSequenceToMap(mem)
	case MapType:
	default:
		violate(op, d.typ)
	}
	d.markDefined()
}

func (d *data) convertSequenceToMap(mem *Memory) {
	if mem == nil {
		violateErr("ConvertToMap", d.typ, ErrNoMemory)
	}
	seq := d.seq
	d.seq = nil
	d.seqSize = 0
	d.setType(MapType)
	if debug.Promote() {
		debug.Logf("promote sequence of %d elements to map\n", len(seq))
	}
	for i, v := range seq {
		k := mem.CreateNode()
		k.SetScalar(strconv.Itoa(i))
		d.insertPair(k, v)
	}
}

func (d *data) insertPair(k, v *Ident) {
	key := NodeKey(k)
	d.dropPending(key)
	i := d.findEntry(key)
	if v.IsDefined() {
		if i >= 0 {
			d.entries[i].value = v
			return
		}
		d.entries = append(d.entries, pair{key: k, value: v})
		return
	}
	if i >= 0 {
		d.entries = slices.Delete(d.entries, i, i+1)
	}
	d.pending = append(d.pending, pair{key: k, value: v})
}

func (d *data) findEntry(key Key) int {
	for i := range d.entries {
		if key.MatchKey(d.entries[i].key) {
			return i
		}
	}
	return -1
}

func (d *data) findPending(key Key) int {
	for i := range d.pending {
		if key.MatchKey(d.pending[i].key) {
			return i
		}
	}
	return -1
}

func (d *data) dropPending(key Key) bool {
	n := len(d.pending)
	d.pending = slices.DeleteFunc(d.pending, func(p pair) bool {
		return key.MatchKey(p.key)
	})
	return len(d.pending) != n
}

func (d *data) reconcile() {
	if len(d.pending) == 0 {
		return
	}
	pending := d.pending
	d.pending = nil
	moved := 0
	for _, p := range pending {
		if !p.value.IsDefined() {
			d.pending = append(d.pending, p)
			continue
		}
		moved++
		if i := d.findEntry(NodeKey(p.key)); i >= 0 {
			d.entries[i].value = p.value
			continue
		}
		d.entries = append(d.entries, p)
	}
	if moved != 0 && debug.Reconcile() {
		debug.Logf("reconciled %d pending pairs, %d still pending\n", moved, len(d.pending))
	}
}

func (d *data) lookup(key Key) *Ident {
	if d.nodeType() != MapType {
		return nil
	}
	if i := d.findEntry(key); i >= 0 {
		return d.entries[i].value
	}
	if i := d.findPending(key); i >= 0 {
		return d.pending[i].value
	}
	return nil
}

func (d *data) get(key Key, mem *Memory) *Ident {
	if mem == nil {
		violateErr("Get", d.typ, ErrNoMemory)
	}
	d.ensureMap("Get", mem)
	if v := d.lookup(key); v != nil {
		return v
	}
	k := key.KeyNode(mem)
	if k == nil || !k.IsDefined() {
		violateErr("Get", d.typ, ErrUndefinedKey)
	}
	v := mem.CreateNode()
	d.insertPair(k, v)
	return v
}

func (d *data) remove(key Key) bool {
	if d.nodeType() != MapType {
		return false
	}
	n := len(d.entries)
	d.entries = slices.DeleteFunc(d.entries, func(p pair) bool {
		return key.MatchKey(p.key)
	})
	removed := d.dropPending(key)
	return removed || len(d.entries) != n
}
