package main

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/scott-cotton/cli"

	tinyjson "github.com/gering/Tiny-JSON"
	"github.com/gering/Tiny-JSON/encode"
	"github.com/gering/Tiny-JSON/gomap"
	"github.com/gering/Tiny-JSON/ir"
	"github.com/gering/Tiny-JSON/parse"
)

var errRoundTrip = errors.New("round trip differs")

func tjCheck(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	ins, err := readInputs(args)
	if err != nil {
		return err
	}
	failed := 0
	for _, in := range ins {
		err := checkDoc(cfg.MainConfig, in)
		switch {
		case err != nil:
			failed++
			fmt.Fprintf(cc.Out, "%s: %v\n", in.name, err)
		case !cfg.Quiet:
			fmt.Fprintf(cc.Out, "%s: ok\n", in.name)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(ins))
	}
	return nil
}

// checkDoc decodes in into generic Go values, encodes those again and
// compares the result with the input document.
func checkDoc(cfg *MainConfig, in input) error {
	node, err := parse.Parse(in.data, cfg.parseOpts()...)
	if err != nil {
		return err
	}
	if node == nil {
		return nil
	}
	m := gomap.DefaultMapper()
	v, err := m.Decode(node, reflect.TypeFor[any]())
	if err != nil {
		return err
	}
	// comments are gone once parsed, so compare against the canonical form
	orig := encode.MustString(node)
	again := tinyjson.Encode(v.Interface())
	cfg.Log.Debug("round trip", "input", in.name, "bytes", len(again))
	back, err := parse.Parse([]byte(again))
	if err != nil {
		return fmt.Errorf("%w: re-parse: %w", errRoundTrip, err)
	}
	if !ir.Equal(node, back) {
		return fmt.Errorf("%w: %s", errRoundTrip, textDiff(orig, again))
	}
	return nil
}
