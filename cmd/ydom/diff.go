package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/tony-format/go-ydom/dom"
	"github.com/signadot/tony-format/go-ydom/dump"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 arguments, got %d", cli.ErrUsage, len(args))
	}
	srcs, err := loadAll(cfg.MainConfig, cc.In, args)
	if err != nil {
		return err
	}
	from, to := srcs[0], srcs[1]
	if cfg.Reverse {
		from, to = to, from
	}
	return diffSources(cfg, cc.Out, from, to)
}

func diffSources(cfg *DiffConfig, w io.Writer, from, to source) error {
	opts := cfg.dumpOpts(w)
	n := max(len(from.docs), len(to.docs))
	for i := range n {
		a, b := docAt(from, i), docAt(to, i)
		d := dump.Diff(a, b, opts...)
		if d == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "--- %s[%d]\n+++ %s[%d]\n%s", from.name, i, to.name, i, d); err != nil {
			return err
		}
	}
	return nil
}

func docAt(src source, i int) dom.Node {
	if i < len(src.docs) {
		return src.docs[i]
	}
	return dom.Node{}
}
