package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/KimNorgaard/go-kml"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	inputs, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	lossy := 0
	for _, in := range inputs {
		if len(inputs) > 1 {
			fmt.Fprintf(cc.Out, "%s:\n", in.name)
		}
		ok, err := checkDoc(cfg, cc.Out, in)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", in.name, err)
		}
		if !ok {
			lossy++
		}
	}
	if lossy > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkDoc writes the round trip report of in and reports whether the trip
// was lossless.
func checkDoc(cfg *CheckConfig, w io.Writer, in input) (bool, error) {
	markup, err := cfg.readMarkup(in)
	if err != nil {
		return false, err
	}
	report, err := kml.Check(markup, cfg.options()...)
	if err != nil {
		return false, err
	}
	if err := report.Write(w, cfg.colored(w)); err != nil {
		return false, err
	}
	return report.Lossless(), nil
}
