package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "kml").
		WithSynopsis("kml [opts] command [opts]").
		WithDescription(mainDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return kmlMain(cfg, cc, args)
		}).
		WithSubs(
			JSONCommand(cfg),
			MarkupCommand(cfg),
			CleanCommand(cfg),
			CheckCommand(cfg),
			PatchCommand(cfg))
}

const mainDescription = `kml converts KML markup to an ordered JSON tree and back.

Defaults for the global options may be set in the environment, as in
KML_STRICT=true, or in a kml.env file in the current directory or in
the kml directory of the user configuration directory.`

func JSONCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &JSONConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.JSON, "json").
		WithAliases("j").
		WithSynopsis("json [-clean] [-y] [files]").
		WithDescription("convert markup to its tree").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return toJSON(cfg, cc, args)
		})
}

func MarkupCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MarkupConfig{MainConfig: mainCfg, Restore: map[string]string{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "restore",
		Description: "write elements keyed by alias under name",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(restoreOptFunc(cfg.Restore)), "(alias=name)"),
	})
	return cli.NewCommandAt(&cfg.Markup, "markup").
		WithAliases("m").
		WithSynopsis("markup [-minify] [-restore alias=name] [-y] [files]").
		WithDescription("convert trees to markup").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return toMarkup(cfg, cc, args)
		})
}

func CleanCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CleanConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Clean, "clean").
		WithSynopsis("clean [-renumber] [files]").
		WithDescription("remove whitespace-only text from trees").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return clean(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [files]").
		WithDescription("report what markup loses on a trip through its tree").
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p").
		WithSynopsis("patch [-y] <patchfile> [files]").
		WithDescription("apply a JSON patch to trees").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}
