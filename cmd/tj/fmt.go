package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/gering/Tiny-JSON/encode"
	"github.com/gering/Tiny-JSON/parse"
)

func tjFmt(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	ins, err := readInputs(args)
	if err != nil {
		return err
	}
	for _, in := range ins {
		if err := formatDoc(cfg, cc.Out, in); err != nil {
			return fmt.Errorf("%s: %w", in.name, err)
		}
	}
	return nil
}

func formatDoc(cfg *FmtConfig, w io.Writer, in input) error {
	node, err := parse.Parse(in.data, cfg.parseOpts()...)
	if err != nil {
		return err
	}
	if node == nil {
		cfg.Log.Debug("empty document", "input", in.name)
		return nil
	}
	if !cfg.Diff {
		if err := encode.Encode(node, w, cfg.encOpts(w)...); err != nil {
			return err
		}
		if !cfg.pretty() {
			_, err = io.WriteString(w, "\n")
		}
		return err
	}
	var buf bytes.Buffer
	opts := append(cfg.encOpts(&buf), encode.EncodeColors(nil))
	if err := encode.Encode(node, &buf, opts...); err != nil {
		return err
	}
	_, err = io.WriteString(w, textDiff(string(in.data), buf.String()))
	return err
}

// textDiff returns the differences between from and to, colored the way
// diffmatchpatch prints them, or "" when they are equal.
func textDiff(from, to string) string {
	if from == to {
		return ""
	}
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(from, to, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}
