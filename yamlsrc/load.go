// Package yamlsrc builds dom trees from YAML text.
//
// Parsing is done by gopkg.in/yaml.v3; this package drives the dom
// mutators from the parsed nodes the way any external builder would.
// Anchored nodes become shared storage: each alias is a fresh node whose
// storage is redirected with SetData to the anchored node's, so
// recursive anchors load as cyclic trees.
package yamlsrc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/signadot/tony-format/go-ydom/debug"
	"github.com/signadot/tony-format/go-ydom/dom"
)

// Load returns the documents of src in order.
func Load(src []byte, opts ...Option) ([]dom.Node, error) {
	return LoadReader(bytes.NewReader(src), opts...)
}

// LoadOne returns the first document of src.
func LoadOne(src []byte, opts ...Option) (dom.Node, error) {
	docs, err := Load(src, opts...)
	if err != nil {
		return dom.Node{}, err
	}
	if len(docs) == 0 {
		return dom.Node{}, ErrNoDocument
	}
	return docs[0], nil
}

func LoadFile(path string, opts ...Option) ([]dom.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	docs, err := LoadReader(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}

func LoadReader(r io.Reader, opts ...Option) ([]dom.Node, error) {
	o := &loadOpts{tags: true}
	for _, opt := range opts {
		opt(o)
	}
	dec := yaml.NewDecoder(r)
	var docs []dom.Node
	for {
		var yn yaml.Node
		err := dec.Decode(&yn)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		mem := o.mem
		if mem == nil {
			mem = dom.NewMemory()
		}
		b := &builder{
			opts:    o,
			mem:     mem,
			anchors: map[*yaml.Node]*dom.Ident{},
		}
		n, err := b.build(&yn)
		if err != nil {
			return nil, err
		}
		if debug.Load() {
			debug.Logf("loaded document %d: %s, %d anchors\n", len(docs), n.Type(), len(b.anchors))
		}
		docs = append(docs, dom.Wrap(n, mem))
	}
	return docs, nil
}

type builder struct {
	opts    *loadOpts
	mem     *dom.Memory
	anchors map[*yaml.Node]*dom.Ident
}

func (b *builder) build(yn *yaml.Node) (*dom.Ident, error) {
	if yn.Kind == yaml.DocumentNode {
		if len(yn.Content) == 0 {
			n := b.mem.CreateNode()
			n.SetNull()
			return n, nil
		}
		return b.build(yn.Content[0])
	}
	if yn.Kind == yaml.AliasNode {
		target, ok := b.anchors[yn.Alias]
		if !ok {
			return nil, fmt.Errorf("%w %q at %d:%d", ErrAlias, yn.Value, yn.Line, yn.Column)
		}
		n := b.mem.CreateNode()
		n.SetData(&target.Ref)
		b.record(n, yn)
		return n, nil
	}

	n := b.mem.CreateNode()
	b.record(n, yn)
	switch yn.Kind {
	case yaml.ScalarNode:
		if yn.ShortTag() == "!!null" {
			n.SetNull()
		} else {
			n.SetScalar(yn.Value)
		}
	case yaml.SequenceNode:
		n.SetType(dom.SequenceType)
		n.MarkDefined()
	case yaml.MappingNode:
		n.SetType(dom.MapType)
		n.MarkDefined()
	default:
		return nil, fmt.Errorf("%w: unexpected node kind %d at %d:%d", ErrParse, yn.Kind, yn.Line, yn.Column)
	}
	if b.opts.tags && yn.Style&yaml.TaggedStyle != 0 {
		n.SetTag(yn.Tag)
	}
	// registered before the contents so that aliases inside resolve here
	if yn.Anchor != "" {
		b.anchors[yn] = n
	}

	switch yn.Kind {
	case yaml.SequenceNode:
		for _, c := range yn.Content {
			v, err := b.build(c)
			if err != nil {
				return nil, err
			}
			n.Append(v)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(yn.Content); i += 2 {
			k, err := b.build(yn.Content[i])
			if err != nil {
				return nil, err
			}
			v, err := b.build(yn.Content[i+1])
			if err != nil {
				return nil, err
			}
			n.Insert(k, v, b.mem)
		}
	}
	return n, nil
}

func (b *builder) record(n *dom.Ident, yn *yaml.Node) {
	if b.opts.positions != nil {
		b.opts.positions[n] = Pos{Line: yn.Line, Column: yn.Column}
	}
}
