package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/KimNorgaard/go-kml"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch file", cli.ErrUsage)
	}
	p, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("could not read patch %q: %w", args[0], err)
	}
	inputs, err := readInputs(cc.In, args[1:])
	if err != nil {
		return err
	}
	for _, in := range inputs {
		if err := patchDoc(cfg, cc.Out, p, in); err != nil {
			return fmt.Errorf("error patching %s: %w", in.name, err)
		}
	}
	return nil
}

func patchDoc(cfg *PatchConfig, w io.Writer, p []byte, in input) error {
	doc, err := kml.Patch(in.data, p)
	if err != nil {
		return err
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
