package main

import (
	"fmt"
	"io"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"

	"github.com/gering/Tiny-JSON/encode"
	"github.com/gering/Tiny-JSON/parse"
)

func tjPatch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: missing patch file", cli.ErrUsage)
	}
	d, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("could not read %q: %w", args[0], err)
	}
	ops, err := decodePatch(cfg.MainConfig, d)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	ins, err := readInputs(args[1:])
	if err != nil {
		return err
	}
	for _, in := range ins {
		if err := patchDoc(cfg.MainConfig, cc.Out, in, ops); err != nil {
			return fmt.Errorf("%s: %w", in.name, err)
		}
	}
	return nil
}

// decodePatch reads an RFC 6902 patch. The patch document itself may use
// comments when the jsonc option is on.
func decodePatch(cfg *MainConfig, d []byte) (jsonpatch.Patch, error) {
	node, err := parse.Parse(d, cfg.parseOpts()...)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, fmt.Errorf("%w: empty patch", cli.ErrUsage)
	}
	return jsonpatch.DecodePatch([]byte(encode.MustString(node)))
}

func patchDoc(cfg *MainConfig, w io.Writer, in input, ops jsonpatch.Patch) error {
	node, err := parse.Parse(in.data, cfg.parseOpts()...)
	if err != nil {
		return err
	}
	if node == nil {
		cfg.Log.Debug("empty document", "input", in.name)
		return nil
	}
	out, err := ops.Apply([]byte(encode.MustString(node)))
	if err != nil {
		return err
	}
	res, err := parse.Parse(out)
	if err != nil {
		return err
	}
	if err := encode.Encode(res, w, cfg.encOpts(w)...); err != nil {
		return err
	}
	if !cfg.pretty() {
		_, err = io.WriteString(w, "\n")
	}
	return err
}
