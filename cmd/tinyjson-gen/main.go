package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/gering/Tiny-JSON/gomap/codegen"
	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

func MainCommand() *cli.Command {
	cfg := &Config{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Main, "tinyjson-gen").
		WithSynopsis("tinyjson-gen [opts]").
		WithDescription("Generate typedesc registrations for structs with tiny tags.").
		WithOpts(sOpts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

type Config struct {
	OutputFile string `cli:"name=o desc='output file for generated Go code (default: <package>_tinyjson.go)'"`
	Dir        string `cli:"name=dir desc='directory to scan for Go files (default: current directory)'"`
	Recursive  bool   `cli:"name=recursive desc='scan subdirectories recursively'"`
	Types      string `cli:"name=types desc='comma separated type names to generate for (default: structs with tiny tags)'"`
	Dump       bool   `cli:"name=dump desc='print the extracted member tables instead of writing code'"`

	Main *cli.Command
}

func run(cfg *Config, cc *cli.Context, args []string) error {
	_, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	dir := cfg.Dir
	if dir == "" {
		dir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}
	if cfg.OutputFile != "" && cfg.Recursive {
		return fmt.Errorf("%w: -o cannot be combined with -recursive", cli.ErrUsage)
	}
	gcfg := &codegen.Config{
		OutputFile: cfg.OutputFile,
		Dir:        dir,
		Recursive:  cfg.Recursive,
	}
	if cfg.Types != "" {
		gcfg.Types = strings.Split(cfg.Types, ",")
	}

	pkgs, err := codegen.DiscoverPackages(dir, cfg.Recursive)
	if err != nil {
		return fmt.Errorf("failed to discover packages: %w", err)
	}
	if len(pkgs) == 0 {
		return fmt.Errorf("no Go packages found in %q", dir)
	}
	loader := codegen.NewPackageLoader()
	for _, pkg := range pkgs {
		if err := processPackage(cc, cfg, gcfg, loader, pkg); err != nil {
			return fmt.Errorf("failed to process package %q: %w", pkg.Name, err)
		}
	}
	return nil
}

func processPackage(cc *cli.Context, cfg *Config, gcfg *codegen.Config, loader *codegen.PackageLoader, pkg *codegen.PackageInfo) error {
	loaded, err := loader.LoadDir(pkg.Dir)
	if err != nil {
		return err
	}
	structs, err := codegen.ExtractStructs(loaded.Types, gcfg.Types...)
	if err != nil {
		return err
	}
	if cfg.Dump {
		spew.Fdump(cc.Out, structs)
		return nil
	}
	if len(structs) == 0 {
		return nil
	}
	code, err := codegen.GenerateCode(loaded.Name, structs)
	if err != nil {
		return err
	}
	out := codegen.OutputFile(gcfg, pkg)
	if err := os.WriteFile(out, code, 0644); err != nil {
		return fmt.Errorf("failed to write output file %q: %w", out, err)
	}
	fmt.Fprintf(cc.Out, "wrote %s (%d types)\n", out, len(structs))
	return nil
}
