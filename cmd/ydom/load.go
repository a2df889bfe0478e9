package main

import (
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/signadot/tony-format/go-ydom/dom"
	"github.com/signadot/tony-format/go-ydom/yamlsrc"
)

// source is the documents of one input, named by its file or "-".
type source struct {
	name string
	docs []dom.Node
}

// loadAll loads files at most cfg.Jobs at a time, keeping their order.
// No files means in.
func loadAll(cfg *MainConfig, in io.Reader, files []string) ([]source, error) {
	if len(files) == 0 {
		docs, err := yamlsrc.LoadReader(in, cfg.loadOpts()...)
		if err != nil {
			return nil, fmt.Errorf("error loading stdin: %w", err)
		}
		return []source{{name: "-", docs: docs}}, nil
	}
	res := make([]source, len(files))
	var g errgroup.Group
	g.SetLimit(max(cfg.Jobs, 1))
	for i, file := range files {
		g.Go(func() error {
			var (
				docs []dom.Node
				err  error
			)
			if file == "-" {
				docs, err = yamlsrc.LoadReader(in, cfg.loadOpts()...)
			} else {
				docs, err = yamlsrc.LoadFile(file, cfg.loadOpts()...)
			}
			if err != nil {
				return fmt.Errorf("error loading %s: %w", file, err)
			}
			if cfg.V {
				theLog.Info("loaded", "file", file, "documents", len(docs))
			}
			res[i] = source{name: file, docs: docs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
