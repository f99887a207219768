package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/scott-cotton/cli"

	"github.com/KimNorgaard/go-kml"
)

func kmlMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	settings, err := LoadSettings(settingsDirs()...)
	if err != nil {
		return err
	}
	cfg.applySettings(settings)

	args, err = cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	cfg.Log = newLogger(os.Stderr, settings.LogLevel, cfg.Verbose)

	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// input is a document named on the command line. The name "-" stands for
// standard input.
type input struct {
	name string
	data []byte
}

func readInputs(stdin io.Reader, args []string) ([]input, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	res := make([]input, 0, len(args))
	for _, arg := range args {
		var (
			data []byte
			err  error
		)
		if arg == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(arg)
		}
		if err != nil {
			return nil, fmt.Errorf("could not read %q: %w", arg, err)
		}
		res = append(res, input{name: arg, data: data})
	}
	return res, nil
}

// readMarkup returns the markup of in as UTF-8. Files are checked to be KML
// unless validation is off; standard input is never checked.
func (cfg *MainConfig) readMarkup(in input) ([]byte, error) {
	opts := cfg.options()
	if cfg.NoValidate || in.name == "-" {
		opts = append(opts, kml.SkipFileValidation())
	}
	s, err := kml.ReadMarkup(&kml.File{Name: filepath.Base(in.name), Body: in.data}, opts...)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func writeLine(w io.Writer, b []byte) error {
	if _, err := w.Write(b); err != nil {
		return err
	}
	if len(b) > 0 && b[len(b)-1] == '\n' {
		return nil
	}
	_, err := io.WriteString(w, "\n")
	return err
}
