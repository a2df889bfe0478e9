package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/tony-format/go-ydom/dump"
	"github.com/signadot/tony-format/go-ydom/yamlsrc"
)

type MainConfig struct {
	Color  bool `cli:"name=color desc='dump with color'"`
	Indent int  `cli:"name=indent desc='spaces per indentation level'"`
	Tags   bool `cli:"name=tags desc='keep explicit tags from the input'"`
	Jobs   int  `cli:"name=j desc='number of files loaded at once'"`
	V      bool `cli:"name=v desc='log loaded files'"`

	Main *cli.Command
}

func (cfg *MainConfig) loadOpts() []yamlsrc.Option {
	return []yamlsrc.Option{yamlsrc.WithTags(cfg.Tags)}
}

func (cfg *MainConfig) dumpOpts(w io.Writer) []dump.Option {
	res := []dump.Option{dump.Indent(cfg.Indent)}
	if cfg.Color {
		return append(res, dump.WithColors(dump.NewColors()))
	}
	colorsSet := false
	var opts []*cli.Opt
	if cfg.Main != nil {
		opts = cfg.Main.Opts
	}
	for _, opt := range opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, dump.WithColors(dump.NewColors()))
	}
	return res
}

type DumpConfig struct {
	*MainConfig
	Hash bool `cli:"name=hash desc='print the hash of each document'"`

	Dump *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}
