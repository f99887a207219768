package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/KimNorgaard/go-kml"
)

func toJSON(cfg *JSONConfig, cc *cli.Context, args []string) error {
	args, err := cfg.JSON.Parse(cc, args)
	if err != nil {
		return err
	}
	inputs, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		if err := jsonDoc(cfg, cc.Out, in); err != nil {
			return fmt.Errorf("error processing %s: %w", in.name, err)
		}
	}
	return nil
}

func jsonDoc(cfg *JSONConfig, w io.Writer, in input) error {
	markup, err := cfg.readMarkup(in)
	if err != nil {
		return err
	}
	doc, err := kml.Parse(markup, cfg.options()...)
	if err != nil {
		return err
	}
	if cfg.Clean {
		doc.Prune()
	}
	var out []byte
	if cfg.YAML {
		out, err = kml.ToYAML(doc)
	} else {
		out, err = kml.Indent(doc)
	}
	if err != nil {
		return err
	}
	return writeLine(w, out)
}
