package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/KimNorgaard/go-kml"
)

func toMarkup(cfg *MarkupConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Markup.Parse(cc, args)
	if err != nil {
		return err
	}
	inputs, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		if err := markupDoc(cfg, cc.Out, in); err != nil {
			return fmt.Errorf("error processing %s: %w", in.name, err)
		}
	}
	return nil
}

func markupDoc(cfg *MarkupConfig, w io.Writer, in input) error {
	var v any = in.data
	if cfg.YAML {
		doc, err := kml.FromYAML(in.data)
		if err != nil {
			return err
		}
		v = doc
	}
	out, err := kml.Marshal(v, cfg.options()...)
	if err != nil {
		return err
	}
	return writeLine(w, out)
}
