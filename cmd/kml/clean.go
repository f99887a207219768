package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/KimNorgaard/go-kml"
)

func clean(cfg *CleanConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Clean.Parse(cc, args)
	if err != nil {
		return err
	}
	inputs, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		if err := cleanDoc(cfg, cc.Out, in); err != nil {
			return fmt.Errorf("error processing %s: %w", in.name, err)
		}
	}
	return nil
}

func cleanDoc(cfg *CleanConfig, w io.Writer, in input) error {
	doc, err := kml.Clean(in.data)
	if err != nil {
		return err
	}
	if cfg.Renumber {
		doc.Renumber()
	}
	out, err := kml.Indent(doc)
	if err != nil {
		return err
	}
	return writeLine(w, out)
}
