package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gering/Tiny-JSON/encode"
	"github.com/gering/Tiny-JSON/parse"

	charmlog "github.com/charmbracelet/log"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color   bool   `cli:"name=color desc='encode with color'"`
	Compact bool   `cli:"name=wire aliases=compact desc='output in compact format'"`
	Indent  int    `cli:"name=indent desc='spaces per level in pretty output'"`
	JSONC   bool   `cli:"name=jsonc desc='accept // and /* */ comments in input'"`
	Verbose bool   `cli:"name=v desc='log debug messages'"`
	Gops    bool   `cli:"name=gops desc='start the gops diagnostics agent'"`
	Config  string `cli:"name=config desc='defaults file (yaml), default $TINYJSON_CONFIG or ~/.config/tinyjson/config.yaml'"`

	Defaults *Defaults
	Log      *charmlog.Logger

	Main *cli.Command
}

// Defaults is the content of the defaults file. Command line options win
// over it.
type Defaults struct {
	Pretty *bool `yaml:"pretty"`
	Color  *bool `yaml:"color"`
	Indent *int  `yaml:"indent"`
	JSONC  bool  `yaml:"jsonc"`
}

func defaultsPath() string {
	if p := os.Getenv("TINYJSON_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tinyjson", "config.yaml")
}

// loadDefaults reads path. A missing file yields empty defaults.
func loadDefaults(path string) (*Defaults, error) {
	res := &Defaults{}
	if path == "" {
		return res, nil
	}
	d, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return res, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(d, res); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

func newLogger(w io.Writer, verbose bool) *charmlog.Logger {
	level := charmlog.InfoLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	return charmlog.NewWithOptions(w, charmlog.Options{
		Prefix:          "tj",
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// optSet reports whether the option name was given on the command line.
func optSet(cmd *cli.Command, name string) bool {
	if cmd == nil {
		return false
	}
	for _, opt := range cmd.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}

func (cfg *MainConfig) defaults() *Defaults {
	if cfg.Defaults == nil {
		return &Defaults{}
	}
	return cfg.Defaults
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	jsonc := cfg.JSONC
	if !optSet(cfg.Main, "jsonc") {
		jsonc = jsonc || cfg.defaults().JSONC
	}
	return []parse.ParseOption{parse.ParseComments(jsonc)}
}

func (cfg *MainConfig) pretty() bool {
	if optSet(cfg.Main, "wire") {
		return !cfg.Compact
	}
	if p := cfg.defaults().Pretty; p != nil {
		return *p
	}
	return !cfg.Compact
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{encode.EncodePretty(cfg.pretty())}
	switch {
	case cfg.Indent >= 0:
		res = append(res, encode.EncodeIndent(cfg.Indent))
	case cfg.defaults().Indent != nil:
		res = append(res, encode.EncodeIndent(*cfg.defaults().Indent))
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	if optSet(cfg.Main, "color") {
		return cfg.Color
	}
	if c := cfg.defaults().Color; c != nil {
		return *c
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type FmtConfig struct {
	*MainConfig
	Diff bool `cli:"name=d desc='show a diff against the input instead of the result'"`

	Fmt *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='only report failures'"`

	Check *cli.Command
}

type EvalConfig struct {
	*MainConfig

	Eval *cli.Command
}

type PatchConfig struct {
	*MainConfig

	Patch *cli.Command
}
