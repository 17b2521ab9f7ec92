package main

import (
	"fmt"
	"io"
	"maps"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"

	tinyjson "github.com/gering/Tiny-JSON"
	"github.com/gering/Tiny-JSON/gomap"
	"github.com/gering/Tiny-JSON/parse"
)

func tjEval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: missing expression", cli.ErrUsage)
	}
	prg, err := expr.Compile(args[0], exprOpts()...)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	ins, err := readInputs(args[1:])
	if err != nil {
		return err
	}
	for _, in := range ins {
		if err := evalDoc(cfg.MainConfig, cc.Out, in, prg); err != nil {
			return fmt.Errorf("%s: %w", in.name, err)
		}
	}
	return nil
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Function("encode", func(params ...any) (any, error) {
			return tinyjson.Encode(params[0]), nil
		},
			new(func(any) string)),
		expr.Function("decode", func(params ...any) (any, error) {
			return tinyjson.Decode[any](params[0].(string)), nil
		},
			new(func(string) any)),
	}
}

// evalEnv binds the document to doc. The members of an object document
// are also bound by name.
func evalEnv(doc any) map[string]any {
	env := map[string]any{}
	if obj, ok := doc.(map[string]any); ok {
		maps.Copy(env, obj)
	}
	env["doc"] = doc
	return env
}

func evalDoc(cfg *MainConfig, w io.Writer, in input, prg *vm.Program) error {
	node, err := parse.Parse(in.data, cfg.parseOpts()...)
	if err != nil {
		return err
	}
	var doc any
	if node != nil {
		v, err := gomap.DefaultMapper().Decode(node, reflect.TypeFor[any]())
		if err != nil {
			return err
		}
		doc = v.Interface()
	}
	res, err := expr.Run(prg, evalEnv(doc))
	if err != nil {
		return err
	}
	if err := gomap.DefaultMapper().EncodeTo(w, res, cfg.encOpts(w)...); err != nil {
		return err
	}
	if !cfg.pretty() {
		_, err = io.WriteString(w, "\n")
	}
	return err
}
