package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/signadot/tony-format/go-ydom/dom"
	"github.com/signadot/tony-format/go-ydom/dump"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a node path", cli.ErrUsage)
	}
	path := args[0]
	srcs, err := loadAll(cfg.MainConfig, cc.In, args[1:])
	if err != nil {
		return err
	}
	return getSources(cfg, cc.Out, path, srcs)
}

func getSources(cfg *GetConfig, w io.Writer, path string, srcs []source) error {
	opts := cfg.dumpOpts(w)
	first := true
	for _, src := range srcs {
		for _, doc := range src.docs {
			n := lookupPath(doc, path)
			if !n.IsDefined() {
				continue
			}
			if !first {
				if _, err := io.WriteString(w, "---\n"); err != nil {
					return err
				}
			}
			first = false
			if err := dump.Dump(n, w, opts...); err != nil {
				return err
			}
		}
	}
	return nil
}

// lookupPath follows a dotted path from n. A part that is an integer
// indexes a sequence; any other part, or any part applied to a map, is
// a scalar key. The empty path and "." are n itself. Missing parts give
// the undefined node.
func lookupPath(n dom.Node, path string) dom.Node {
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return n
	}
	for _, part := range strings.Split(path, ".") {
		if n.IsSequence() {
			i, err := strconv.Atoi(part)
			if err != nil {
				return dom.Node{}
			}
			n = n.Index(i)
			continue
		}
		n = n.Lookup(dom.ScalarKey(part))
	}
	return n
}
