package dom

import (
	"strings"
	"testing"
)

func TestSetDataAliasing(t *testing.T) {
	mem := NewMemory()
	a := mem.CreateNode()
	b := mem.CreateNode()
	c := mem.CreateNode()
	old := mem.CreateNode()
	old.SetData(&a.Ref)

	a.SetData(&b.Ref)
	if !a.SameData(&b.Ref) {
		t.Fatal("a should share b's storage")
	}
	b.Append(scalar(mem, "x"))
	if a.Type() != SequenceType || a.Size() != 1 {
		t.Errorf("mutation through b not visible through a: %s %d", a.Type(), a.Size())
	}
	a.Append(scalar(mem, "y"))
	if b.Size() != 2 {
		t.Errorf("mutation through a not visible through b: %d", b.Size())
	}
	if c.Type() != UndefinedType {
		t.Errorf("unrelated node changed to %s", c.Type())
	}
	if old.SameData(&a.Ref) || old.Type() != UndefinedType {
		t.Errorf("previous sharer of a's storage should keep it")
	}
}

func TestAliasDefinesPendingValue(t *testing.T) {
	mem := NewMemory()
	m := mem.CreateNode()
	slot := m.Get(ScalarKey("k"), mem)
	anchor := scalar(mem, "v")
	slot.SetData(&anchor.Ref)
	if m.Size() != 1 {
		t.Errorf("expected aliased value to reconcile, size %d", m.Size())
	}
}

func TestSelfReferentialMap(t *testing.T) {
	mem := NewMemory()
	build := func() *Ident {
		m := mem.CreateNode()
		m.Insert(scalar(mem, "name"), scalar(mem, "loop"), mem)
		m.Insert(scalar(mem, "self"), m, mem)
		return m
	}
	m1, m2 := build(), build()
	if m1.Size() != 2 {
		t.Errorf("expected size 2, got %d", m1.Size())
	}
	if self := m1.Lookup(ScalarKey("self")); self != m1 {
		t.Error("expected self reference")
	}
	if !Equal(m1, m2) {
		t.Error("structurally identical cycles should be equal")
	}
	if Hash(m1) != Hash(m2) {
		t.Error("structurally identical cycles should hash equal")
	}
	got := Wrap(m1, mem).String()
	if want := "{name: loop, self: <cycle>}"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNodeExampleScenario(t *testing.T) {
	m := New()
	m.Set(ScalarKey("a"), NewScalar("1"))
	m.Set(ScalarKey("b"), NewScalar("2"))
	if !m.IsMap() {
		t.Fatalf("expected map, got %s", m.Type())
	}
	if m.Size() != 2 {
		t.Errorf("expected size 2, got %d", m.Size())
	}
	if got := m.Lookup(ScalarKey("b")).Scalar(); got != "2" {
		t.Errorf("expected 2, got %q", got)
	}
	if !m.Remove(ScalarKey("a")) {
		t.Error("expected remove to succeed")
	}
	if got, want := m.String(), "{b: 2}"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNodeMemoryMerge(t *testing.T) {
	doc := New()
	v := NewScalar("x")
	doc.Append(v)
	if !doc.Memory().Shares(v.Memory()) {
		t.Error("append should merge memories")
	}
	if doc.Memory().Len() != 2 {
		t.Errorf("expected 2 nodes, got %d", doc.Memory().Len())
	}
}

func TestSentinel(t *testing.T) {
	m := NewType(MapType)
	miss := m.Lookup(ScalarKey("nope"))
	if miss.Valid() {
		t.Fatal("expected sentinel")
	}
	if miss.Type() != UndefinedType || miss.IsDefined() || miss.Size() != 0 || miss.Scalar() != "" {
		t.Error("sentinel should look undefined and empty")
	}
	if miss.Lookup(ScalarKey("x")).Valid() {
		t.Error("lookup on sentinel should give sentinel")
	}
	if m.Size() != 0 {
		t.Errorf("lookup mutated map, size %d", m.Size())
	}
	expectContract(t, "set on sentinel", func() { miss.SetScalar("x") })
	expectContract(t, "assign sentinel", func() { New().Assign(miss) })
	var zero Node
	if !zero.Is(miss) {
		t.Error("all sentinels are the same identity")
	}
}

func TestNodeIndexAndIteration(t *testing.T) {
	seq := NewType(SequenceType)
	for _, s := range []string{"a", "b"} {
		seq.Append(NewScalar(s))
	}
	if got := seq.Index(1).Scalar(); got != "b" {
		t.Errorf("expected b, got %q", got)
	}
	if seq.Index(2).Valid() || seq.Index(-1).Valid() {
		t.Error("out of range index should give sentinel")
	}
	var got []string
	for k, v := range seq.Elements() {
		if k.Valid() {
			t.Error("sequence elements should have no key")
		}
		got = append(got, v.Scalar())
	}
	if strings.Join(got, ",") != "a,b" {
		t.Errorf("unexpected elements %v", got)
	}
	for range seq.Pairs() {
		t.Error("sequence should have no pairs")
	}
}

func TestNodeKeyAcrossMemories(t *testing.T) {
	key := NewType(SequenceType)
	key.Append(NewScalar("k"))
	m := New()
	m.Insert(key, NewScalar("v"))
	if got := m.Lookup(key.Key()).Scalar(); got != "v" {
		t.Errorf("expected v, got %q", got)
	}
	other := NewType(SequenceType)
	other.Append(NewScalar("k"))
	m.Get(other.Key()).SetScalar("w")
	if m.Size() != 1 {
		t.Errorf("expected equal key to overwrite, size %d", m.Size())
	}
	if got := m.Lookup(key.Key()).Scalar(); got != "w" {
		t.Errorf("expected w, got %q", got)
	}
	fresh := NewType(SequenceType)
	fresh.Append(NewScalar("z"))
	m.Get(fresh.Key()).SetScalar("x")
	if m.Size() != 2 {
		t.Errorf("expected size 2, got %d", m.Size())
	}
	if !m.Memory().Shares(fresh.Memory()) {
		t.Error("key memory should be merged")
	}
}

func TestString(t *testing.T) {
	tagged := NewScalar("1")
	tagged.SetTag("!int")
	seq := NewType(SequenceType)
	seq.Append(NewScalar("a b"))
	seq.Append(NewScalar(""))
	seq.Append(NewNull())
	seq.Append(New())
	tests := []struct {
		node Node
		want string
	}{
		{NewNull(), "null"},
		{NewScalar("x"), "x"},
		{NewScalar("a: b"), `"a: b"`},
		{tagged, "!int 1"},
		{seq, `[a b, "", null, <undefined>]`},
		{Node{}, "<invalid>"},
	}
	for _, tt := range tests {
		if got := tt.node.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}
