package dom

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hash returns a 64-bit hash of the node's value. It is deterministic
// across processes, ignores tags and map insertion order, and agrees
// with Equal on acyclic nodes.
// It panics if n is nil.
func Hash(n *Ident) uint64 {
	if n == nil {
		panic(ErrInvalidNode)
	}
	h := &hasher{active: make(map[*data]bool)}
	return h.hash(n)
}

type hasher struct {
	active map[*data]bool
}

func (h *hasher) hash(n *Ident) uint64 {
	d := n.d
	t := d.nodeType()
	x := xxhash.New()
	var b [8]byte
	x.Write([]byte{byte(t)})

	switch t {
	case ScalarType:
		x.WriteString(d.scalar)
	case SequenceType, MapType:
		if h.active[d] {
			x.WriteString("\x00cycle")
			return x.Sum64()
		}
		h.active[d] = true
		defer delete(h.active, d)
		if t == SequenceType {
			for _, v := range d.seq {
				binary.LittleEndian.PutUint64(b[:], h.hash(v))
				x.Write(b[:])
			}
			break
		}
		d.reconcile()
		// entries combine commutatively so insertion order is irrelevant.
		var sum uint64
		var kv [16]byte
		for _, e := range d.entries {
			binary.LittleEndian.PutUint64(kv[:8], h.hash(e.key))
			binary.LittleEndian.PutUint64(kv[8:], h.hash(e.value))
			sum += xxhash.Sum64(kv[:])
		}
		binary.LittleEndian.PutUint64(b[:], uint64(len(d.entries)))
		x.Write(b[:])
		binary.LittleEndian.PutUint64(b[:], sum)
		x.Write(b[:])
	}
	return x.Sum64()
}
