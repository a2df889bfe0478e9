package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/tony-format/go-ydom/dump"
)

func dumpCmd(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	srcs, err := loadAll(cfg.MainConfig, cc.In, args)
	if err != nil {
		return err
	}
	return dumpSources(cfg, cc.Out, srcs)
}

func dumpSources(cfg *DumpConfig, w io.Writer, srcs []source) error {
	opts := cfg.dumpOpts(w)
	first := true
	for _, src := range srcs {
		for i, doc := range src.docs {
			if !first {
				if _, err := io.WriteString(w, "---\n"); err != nil {
					return err
				}
			}
			first = false
			if cfg.Hash {
				if _, err := fmt.Fprintf(w, "# %s[%d] hash %016x\n", src.name, i, doc.Hash()); err != nil {
					return err
				}
			}
			if err := dump.Dump(doc, w, opts...); err != nil {
				return fmt.Errorf("error dumping %s: %w", src.name, err)
			}
		}
	}
	return nil
}
