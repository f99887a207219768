package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/scott-cotton/cli"
	"github.com/spf13/viper"

	"github.com/KimNorgaard/go-kml"
)

type MainConfig struct {
	Strict          bool `cli:"name=strict desc='fail on malformed markup'"`
	LegacyStyle     bool `cli:"name=legacyStyle desc='key <Style> elements as kml-style'"`
	ContinueLiteral bool `cli:"name=continueLiteral desc='keep parsing siblings after literal blocks'"`
	StripLiteral    bool `cli:"name=stripLiteral desc='drop literal block delimiters'"`
	Color           bool `cli:"name=color desc='color reports'"`
	NoValidate      bool `cli:"name=novalidate desc='accept markup files of any name'"`
	Verbose         bool `cli:"name=v desc='log recovered problems'"`

	Log zerolog.Logger

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// Settings holds the defaults of the global options.
type Settings struct {
	Strict          bool   `mapstructure:"KML_STRICT"`
	LegacyStyle     bool   `mapstructure:"KML_LEGACY_STYLE"`
	ContinueLiteral bool   `mapstructure:"KML_CONTINUE_LITERAL"`
	StripLiteral    bool   `mapstructure:"KML_STRIP_LITERAL"`
	Color           bool   `mapstructure:"KML_COLOR"`
	NoValidate      bool   `mapstructure:"KML_NOVALIDATE"`
	LogLevel        string `mapstructure:"KML_LOG_LEVEL"`
}

// LoadSettings reads kml.env from the given directories, and the
// environment, which takes precedence. A missing file is not an error.
func LoadSettings(dirs ...string) (Settings, error) {
	v := viper.New()
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}
	v.SetConfigName("kml")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("KML_STRICT", false)
	v.SetDefault("KML_LEGACY_STYLE", false)
	v.SetDefault("KML_CONTINUE_LITERAL", false)
	v.SetDefault("KML_STRIP_LITERAL", false)
	v.SetDefault("KML_COLOR", false)
	v.SetDefault("KML_NOVALIDATE", false)
	v.SetDefault("KML_LOG_LEVEL", "warn")

	var settings Settings
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings, fmt.Errorf("error reading settings: %w", err)
		}
	}
	if err := v.Unmarshal(&settings); err != nil {
		return settings, fmt.Errorf("error decoding settings: %w", err)
	}
	return settings, nil
}

func settingsDirs() []string {
	dirs := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "kml"))
	}
	return dirs
}

func (cfg *MainConfig) applySettings(s Settings) {
	cfg.Strict = s.Strict
	cfg.LegacyStyle = s.LegacyStyle
	cfg.ContinueLiteral = s.ContinueLiteral
	cfg.StripLiteral = s.StripLiteral
	cfg.Color = s.Color
	cfg.NoValidate = s.NoValidate
}

// options returns the conversion options selected on the command line.
func (cfg *MainConfig) options() []kml.Option {
	opts := []kml.Option{kml.WithLogger(cfg.Log)}
	if cfg.Strict {
		opts = append(opts, kml.Strict())
	}
	if cfg.LegacyStyle {
		opts = append(opts, kml.LegacyStyleAlias())
	}
	if cfg.ContinueLiteral {
		opts = append(opts, kml.ContinueAfterLiteral())
	}
	if cfg.StripLiteral {
		opts = append(opts, kml.StripLiteralDelimiters())
	}
	return opts
}

// colored reports whether output to w gets color: when asked for, or when
// w is a terminal.
func (cfg *MainConfig) colored(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type JSONConfig struct {
	*MainConfig
	Clean bool `cli:"name=clean desc='drop whitespace-only text'"`
	YAML  bool `cli:"name=y aliases=yaml desc='write YAML'"`

	JSON *cli.Command
}

type MarkupConfig struct {
	*MainConfig
	Minify  bool `cli:"name=minify desc='minify the markup'"`
	YAML    bool `cli:"name=y aliases=yaml desc='read YAML'"`
	Restore map[string]string

	Markup *cli.Command
}

func (cfg *MarkupConfig) options() []kml.Option {
	opts := cfg.MainConfig.options()
	if cfg.Minify {
		opts = append(opts, kml.Minify())
	}
	for alias, name := range cfg.Restore {
		opts = append(opts, kml.RestoreTag(alias, name))
	}
	return opts
}

func restoreOptFunc(restore map[string]string) func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		alias, name, ok := strings.Cut(a, "=")
		if !ok || alias == "" || name == "" {
			return nil, fmt.Errorf("%w: expected alias=name, got %q", cli.ErrUsage, a)
		}
		restore[alias] = name
		return a, nil
	}
}

type CleanConfig struct {
	*MainConfig
	Renumber bool `cli:"name=renumber desc='number siblings from zero again'"`

	Clean *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Check *cli.Command
}

type PatchConfig struct {
	*MainConfig
	YAML bool `cli:"name=y aliases=yaml desc='write YAML'"`

	Patch *cli.Command
}
