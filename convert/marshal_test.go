package convert

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/tony-format/go-ydom/dom"
)

type Address struct {
	Street string `ydom:"street"`
	Zip    string `ydom:"zip,omitempty"`
}

type Meta struct {
	Labels map[string]string `ydom:"labels,omitempty"`
}

type Person struct {
	Meta
	Name     string    `ydom:"name"`
	Age      int       `ydom:"age"`
	Score    float64   `ydom:"score"`
	Admin    bool      `ydom:"admin"`
	Tags     []string  `ydom:"tags"`
	Home     *Address  `ydom:"home"`
	Born     time.Time `ydom:"born"`
	Secret   string    `ydom:"-"`
	internal int
}

func TestMarshalStruct(t *testing.T) {
	p := Person{
		Meta:  Meta{Labels: map[string]string{"team": "core"}},
		Name:  "Alice",
		Age:   30,
		Score: 0.5,
		Admin: true,
		Tags:  []string{"a", "b"},
		Home:  &Address{Street: "Main"},
		Born:  time.Date(1990, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	n, err := Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	want := "{name: Alice, age: 30, score: 0.5, admin: true, tags: [a, b], home: {street: Main}, born: \"1990-01-02T03:04:05Z\", labels: {team: core}}"
	if got := n.String(); got != want {
		t.Errorf("expected\n%s\ngot\n%s", want, got)
	}

	var back Person
	if err := Unmarshal(n, &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(p, back, cmp.AllowUnexported(Person{})); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalIgnoresUnknownAndMissing(t *testing.T) {
	n := dom.New()
	n.Set(dom.ScalarKey("name"), dom.NewScalar("Bob"))
	n.Set(dom.ScalarKey("shoe"), dom.NewScalar("44"))
	n.Set(dom.ScalarKey("home"), dom.NewNull())
	back := Person{Age: 7, Home: &Address{}}
	if err := Unmarshal(n, &back); err != nil {
		t.Fatal(err)
	}
	if back.Name != "Bob" || back.Age != 7 || back.Home != nil {
		t.Errorf("unexpected result %+v", back)
	}
}

func TestUnmarshalTypeError(t *testing.T) {
	n := dom.New()
	tags := n.Get(dom.ScalarKey("tags"))
	tags.Append(dom.NewScalar("ok"))
	tags.Append(dom.NewType(dom.MapType))
	var p Person
	err := Unmarshal(n, &p)
	var te *TypeError
	if !errors.As(err, &te) {
		t.Fatalf("expected TypeError, got %v", err)
	}
	if te.Path != "tags[1]" || te.Expected != "string" || te.Actual != dom.MapType {
		t.Errorf("unexpected error %+v", te)
	}
	if err := Unmarshal(n, p); err == nil {
		t.Error("expected error for non-pointer target")
	}
}

type Employee struct {
	Name    string      `ydom:"name"`
	Boss    *Employee   `ydom:"boss"`
	Reports []*Employee `ydom:"reports"`
}

func TestMarshalPointerCycle(t *testing.T) {
	alice := &Employee{Name: "alice"}
	bob := &Employee{Name: "bob", Boss: alice}
	alice.Boss = alice
	alice.Reports = []*Employee{bob}

	n, err := Marshal(alice)
	if err != nil {
		t.Fatal(err)
	}
	if self := n.Lookup(dom.ScalarKey("boss")); self.StorageID() != n.StorageID() {
		t.Error("self pointer should encode as the same node")
	}
	bobNode := n.Lookup(dom.ScalarKey("reports")).Index(0)
	if boss := bobNode.Lookup(dom.ScalarKey("boss")); boss.StorageID() != n.StorageID() {
		t.Error("shared pointer should encode as the same node")
	}

	var back *Employee
	if err := Unmarshal(n, &back); err != nil {
		t.Fatal(err)
	}
	if back.Name != "alice" || back.Boss != back {
		t.Fatalf("expected self cycle, got %+v", back)
	}
	if len(back.Reports) != 1 || back.Reports[0].Name != "bob" || back.Reports[0].Boss != back {
		t.Errorf("expected bob reporting to alice, got %+v", back.Reports)
	}
}

func TestMarshalMapCycle(t *testing.T) {
	m := map[string]any{"name": "loop"}
	m["self"] = m
	n, err := Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := n.String(), "{name: loop, self: <cycle>}"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	var back any
	err = Unmarshal(n, &back)
	if err == nil || !strings.Contains(err.Error(), "cyclic") {
		t.Errorf("expected cycle error, got %v", err)
	}
}

func TestMarshalSliceCycle(t *testing.T) {
	s := []any{nil}
	s[0] = s
	_, err := Marshal(s)
	if err == nil || !strings.Contains(err.Error(), "circular") {
		t.Errorf("expected circular reference error, got %v", err)
	}
}

func TestMarshalUnsupported(t *testing.T) {
	_, err := Marshal(struct{ C chan int }{C: make(chan int)})
	var me *MarshalError
	if !errors.As(err, &me) || me.Path != "C" {
		t.Errorf("expected MarshalError at C, got %v", err)
	}
}

func TestUnmarshalGeneric(t *testing.T) {
	n, err := Marshal(map[string]any{
		"list": []any{"a", nil, map[string]any{"k": "v"}},
		"n":    1,
	})
	if err != nil {
		t.Fatal(err)
	}
	var got any
	if err := Unmarshal(n, &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"list": []any{"a", nil, map[string]any{"k": "v"}},
		"n":    "1",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

type point struct {
	X, Y int
}

func (p point) MarshalNode() (dom.Node, error) {
	return Encode([]int{p.X, p.Y}), nil
}

func (p *point) UnmarshalNode(n dom.Node) error {
	var xy []int
	if !Decode(n, &xy) || len(xy) != 2 {
		return errors.New("point needs two coordinates")
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

func TestNodeMarshaler(t *testing.T) {
	type shape struct {
		Points []point `ydom:"points"`
	}
	in := shape{Points: []point{{1, 2}, {3, 4}}}
	n, err := Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := n.String(), "{points: [[1, 2], [3, 4]]}"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	var out shape
	if err := Unmarshal(n, &out); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out, cmp.AllowUnexported(shape{})); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	bad := dom.New()
	bad.Get(dom.ScalarKey("points")).Append(dom.NewScalar("1"))
	err = Unmarshal(bad, &out)
	var ue *UnmarshalError
	if !errors.As(err, &ue) || ue.Path != "points[0]" {
		t.Errorf("expected UnmarshalError at points[0], got %v", err)
	}
}

func TestNodeField(t *testing.T) {
	type envelope struct {
		Kind string   `ydom:"kind"`
		Body dom.Node `ydom:"body"`
	}
	body := dom.NewType(dom.SequenceType)
	body.Append(dom.NewScalar("x"))
	n, err := Marshal(envelope{Kind: "raw", Body: body})
	if err != nil {
		t.Fatal(err)
	}
	var out envelope
	if err := Unmarshal(n, &out); err != nil {
		t.Fatal(err)
	}
	if !out.Body.Equal(body) {
		t.Errorf("expected body %s, got %s", body, out.Body)
	}
}

func TestAsReflect(t *testing.T) {
	n := dom.New()
	n.Set(dom.ScalarKey("street"), dom.NewScalar("Main"))
	a, err := As[Address](n)
	if err != nil || a.Street != "Main" {
		t.Errorf("As[Address] = %+v, %v", a, err)
	}
	_, err = As[Address](dom.NewScalar("x"))
	var te *TypeError
	if !errors.As(err, &te) || te.Expected != "convert.Address" {
		t.Errorf("expected TypeError, got %v", err)
	}
}
