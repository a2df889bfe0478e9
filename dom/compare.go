package dom

import (
	"cmp"
	"slices"
	"strings"
)

// Compare returns an integer comparing the values of two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
//
// Types order as Undefined < Null < Scalar < Sequence < Map. Scalars
// compare by text, sequences element by element, maps by their entries
// sorted by key, so insertion order does not matter. Tags are ignored.
// Nodes reached again through a cycle compare equal.
func Compare(a, b *Ident) int {
	c := &comparer{}
	return c.compare(a, b)
}

// Equal reports whether a and b hold the same value.
func Equal(a, b *Ident) bool {
	return Compare(a, b) == 0
}

type dataPair struct {
	a, b *data
}

type comparer struct {
	active map[dataPair]bool
}

func (c *comparer) compare(a, b *Ident) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	da, db := a.d, b.d
	if da == db {
		return 0
	}
	ta, tb := da.nodeType(), db.nodeType()
	if ta != tb {
		return cmp.Compare(ta, tb)
	}
	switch ta {
	case ScalarType:
		return strings.Compare(da.scalar, db.scalar)
	case SequenceType, MapType:
		p := dataPair{da, db}
		if c.active[p] {
			return 0
		}
		if c.active == nil {
			c.active = make(map[dataPair]bool)
		}
		c.active[p] = true
		defer delete(c.active, p)
		if ta == SequenceType {
			return c.compareSequences(da, db)
		}
		return c.compareMaps(da, db)
	}
	return 0
}

func (c *comparer) compareSequences(a, b *data) int {
	lenA := len(a.seq)
	lenB := len(b.seq)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if r := c.compare(a.seq[i], b.seq[i]); r != 0 {
			return r
		}
	}
	return cmp.Compare(lenA, lenB)
}

func (c *comparer) compareMaps(a, b *data) int {
	a.reconcile()
	b.reconcile()
	if r := cmp.Compare(len(a.entries), len(b.entries)); r != 0 {
		return r
	}
	ea := c.sorted(a.entries)
	eb := c.sorted(b.entries)
	for i := range ea {
		if r := c.compare(ea[i].key, eb[i].key); r != 0 {
			return r
		}
		if r := c.compare(ea[i].value, eb[i].value); r != 0 {
			return r
		}
	}
	return 0
}

func (c *comparer) sorted(entries []pair) []pair {
	res := slices.Clone(entries)
	slices.SortStableFunc(res, func(x, y pair) int {
		return c.compare(x.key, y.key)
	})
	return res
}
