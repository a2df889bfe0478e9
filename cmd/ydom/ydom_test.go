package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/tony-format/go-ydom/dom"
	"github.com/signadot/tony-format/go-ydom/yamlsrc"
)

func testConfig() *MainConfig {
	return &MainConfig{Indent: 2, Tags: true, Jobs: 2}
}

func TestLookupPath(t *testing.T) {
	doc, err := yamlsrc.LoadOne([]byte("a:\n  b: [x, {c: y}]\n\"1\": one\n"))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		path string
		want string
	}{
		{"a.b.0", "x"},
		{".a.b.1.c", "y"},
		{"1", "one"},
		{"", doc.String()},
	}
	for _, tt := range tests {
		if got := lookupPath(doc, tt.path).String(); got != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.path, tt.want, got)
		}
	}
	for _, path := range []string{"a.b.2", "a.b.x", "a.missing.c"} {
		if n := lookupPath(doc, path); n.IsDefined() {
			t.Errorf("%q: expected nothing, got %s", path, n)
		}
	}
}

func TestLoadAllKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		file := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(file, []byte("name: "+name+"\n---\n- "+name+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		files = append(files, file)
	}
	srcs, err := loadAll(testConfig(), nil, files)
	if err != nil {
		t.Fatal(err)
	}
	for i, src := range srcs {
		if src.name != files[i] || len(src.docs) != 2 {
			t.Fatalf("source %d: got %s with %d documents", i, src.name, len(src.docs))
		}
	}
	if got := srcs[3].docs[0].Lookup(dom.ScalarKey("name")).Scalar(); got != "d" {
		t.Errorf("expected d, got %q", got)
	}

	_, err = loadAll(testConfig(), nil, append(files, filepath.Join(dir, "missing.yaml")))
	if err == nil || !strings.Contains(err.Error(), "missing.yaml") {
		t.Errorf("expected an error naming the missing file, got %v", err)
	}

	srcs, err = loadAll(testConfig(), strings.NewReader("x\n"), nil)
	if err != nil || len(srcs) != 1 || srcs[0].name != "-" {
		t.Fatalf("expected stdin source, got %v, %v", srcs, err)
	}
}

func TestDumpSources(t *testing.T) {
	srcs, err := loadAll(testConfig(), strings.NewReader("a: 1\n---\nb\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	cfg := &DumpConfig{MainConfig: testConfig()}
	if err := dumpSources(cfg, &buf, srcs); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("a: 1\n---\nb\n", buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	buf.Reset()
	cfg.Hash = true
	if err := dumpSources(cfg, &buf, srcs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if !strings.HasPrefix(lines[0], "# -[0] hash ") || len(lines[0]) != len("# -[0] hash ")+16 {
		t.Errorf("unexpected hash line %q", lines[0])
	}
}

func TestGetSources(t *testing.T) {
	srcs, err := loadAll(testConfig(), strings.NewReader("a: {b: 1}\n---\nc: 2\n---\na: {b: [x]}\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := getSources(&GetConfig{MainConfig: testConfig()}, &buf, "a.b", srcs); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("1\n---\n- x\n", buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDiffSources(t *testing.T) {
	load := func(name, src string) source {
		docs, err := yamlsrc.Load([]byte(src))
		if err != nil {
			t.Fatal(err)
		}
		return source{name: name, docs: docs}
	}
	from := load("x", "a: 1\nb: 2\n")
	to := load("y", "a: 1\nb: 3\n---\nc\n")
	var buf bytes.Buffer
	if err := diffSources(&DiffConfig{MainConfig: testConfig()}, &buf, from, to); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"--- x[0]",
		"+++ y[0]",
		"  a: 1",
		"- b: 2",
		"+ b: 3",
		"--- x[1]",
		"+++ y[1]",
		"- <undefined>",
		"+ c",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
