package gomap

import (
	"fmt"
	"reflect"

	"github.com/gering/Tiny-JSON/ir"
)

// RegisterEncoder installs a typed encoder for T on r. When T is an
// interface, fn also serves every type implementing it; when T is a struct,
// it also serves structs embedding T, receiving the embedded part. T = any
// replaces the catch-all encoder.
func RegisterEncoder[T any](r *Registry, fn func(s *EncState, v T) error) {
	key := reflect.TypeFor[T]()
	r.RegisterEncoder(key, func(s *EncState, v reflect.Value) error {
		if !v.CanInterface() {
			return fmt.Errorf("%w: cannot access %s", ErrUnsupported, v.Type())
		}
		x, ok := v.Interface().(T)
		if !ok {
			return fmt.Errorf("%w: %s is not %s", ErrUnsupported, v.Type(), key)
		}
		return fn(s, x)
	})
}

// RegisterDecoder installs a typed decoder for T on r. When T is an
// interface, fn also serves targets implementing it; its result must then
// hold a value assignable to the target. T = any replaces the catch-all
// decoder.
func RegisterDecoder[T any](r *Registry, fn func(s *DecState, node *ir.Node) (T, error)) {
	key := reflect.TypeFor[T]()
	r.RegisterDecoder(key, func(s *DecState, t reflect.Type, node *ir.Node) (reflect.Value, error) {
		x, err := fn(s, node)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(&x).Elem(), nil
	})
}
