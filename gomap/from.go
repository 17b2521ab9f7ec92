package gomap

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/gering/Tiny-JSON/debug"
	"github.com/gering/Tiny-JSON/ir"
	"github.com/gering/Tiny-JSON/log"
	"github.com/gering/Tiny-JSON/typedesc"
)

// DecState is passed to decoders. Nested values are decoded with Decode,
// Into or Field so that they go through the registry.
type DecState struct {
	m    *Mapper
	path string
	errs []error
}

func (m *Mapper) newDecState() *DecState {
	return &DecState{m: m}
}

func (s *DecState) Mapper() *Mapper {
	return s.m
}

// Path returns the field path of the value being decoded.
func (s *DecState) Path() string {
	return s.path
}

// Skipped returns the diagnostics recorded so far for members, elements
// and entries which were left at their zero value or skipped.
func (s *DecState) Skipped() []error {
	return s.errs
}

// Decode builds a value of type t from node.
func (s *DecState) Decode(t reflect.Type, node *ir.Node) (reflect.Value, error) {
	return s.decode(t, node)
}

// Into decodes node into the value ptr points to.
func (s *DecState) Into(node *ir.Node, ptr any) error {
	pv := reflect.ValueOf(ptr)
	if !pv.IsValid() || pv.Kind() != reflect.Pointer || pv.IsNil() {
		return &UnmarshalError{FieldPath: s.path, Message: "destination must be a non-nil pointer"}
	}
	v, err := s.decode(pv.Elem().Type(), node)
	if err != nil {
		return err
	}
	pv.Elem().Set(v)
	return nil
}

// Field decodes the member name of the object node into ptr, matching the
// name ignoring case. A missing member leaves ptr untouched.
func (s *DecState) Field(node *ir.Node, name string, ptr any) error {
	val := ir.Lookup(node, name)
	if val == nil {
		return nil
	}
	prev := s.enter(name)
	defer s.leave(prev)
	return s.Into(val, ptr)
}

func (s *DecState) enter(seg string) string {
	prev := s.path
	s.path = joinPath(prev, seg)
	return prev
}

func (s *DecState) leave(prev string) {
	s.path = prev
}

func (s *DecState) skip(msg string, err error) {
	s.errs = append(s.errs, err)
	s.m.Logger().Warn(msg, log.Fields{
		"path":  s.path,
		"error": err.Error(),
	})
}

func (s *DecState) decode(t reflect.Type, node *ir.Node) (reflect.Value, error) {
	if node == nil {
		node = ir.Null()
	}
	if node.Type == ir.NullType && typedesc.Of(t).Nullable {
		return reflect.Zero(t), nil
	}
	fn, src := s.m.registry.Decoder(t)
	if debug.Decode() {
		debug.Logf("tinyjson: decode %s from %s at %q with %s codec\n", t, node.Type, s.path, src)
	}
	v, err := fn(s, t, node)
	if err != nil {
		return reflect.Value{}, s.wrap(t, node, err)
	}
	return s.accept(t, v)
}

func (s *DecState) wrap(t reflect.Type, node *ir.Node, err error) error {
	var (
		uerr *UnmarshalError
		terr *TypeError
	)
	if errors.As(err, &uerr) || errors.As(err, &terr) {
		return err
	}
	return &UnmarshalError{
		FieldPath: s.path,
		Message:   fmt.Sprintf("decoding %s from %s", t, node.Type),
		Err:       err,
	}
}

// accept enforces that a decoded value is assignable to its target.
func (s *DecState) accept(t reflect.Type, v reflect.Value) (reflect.Value, error) {
	if v.IsValid() && v.Kind() == reflect.Interface && t.Kind() != reflect.Interface {
		v = v.Elem()
	}
	if !v.IsValid() {
		if typedesc.Of(t).Nullable {
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, &TypeError{
			FieldPath: s.path,
			Expected:  t.String(),
			Actual:    "nothing",
			Err:       ErrNotAssignable,
		}
	}
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, &TypeError{
			FieldPath: s.path,
			Expected:  t.String(),
			Actual:    v.Type().String(),
			Err:       ErrNotAssignable,
		}
	}
	if v.Type() != t {
		res := reflect.New(t).Elem()
		res.Set(v)
		v = res
	}
	return v, nil
}

// decodeObject is the default catch-all decoder: a zero struct is
// allocated and each member of node is matched to a struct member by wire
// name, ignoring case.
func decodeObject(s *DecState, t reflect.Type, node *ir.Node) (reflect.Value, error) {
	if t.Kind() != reflect.Struct {
		return reflect.Value{}, &TypeError{
			FieldPath: s.path,
			Message:   fmt.Sprintf("no decoder for %s", t),
			Err:       ErrNoCodec,
		}
	}
	if err := shape(s, t, node, ir.ObjectType); err != nil {
		return reflect.Value{}, err
	}
	d := typedesc.Of(t)
	res := reflect.New(t).Elem()
	for i, key := range node.Fields {
		m := d.Member(key.String)
		if m == nil {
			if debug.Decode() {
				debug.Logf("tinyjson: %s has no member %q\n", t, key.String)
			}
			continue
		}
		val := node.Values[i]
		prev := s.enter(m.WireName)
		fv, ok := settableField(res, m.Index)
		switch {
		case !ok:
			s.skip("member not settable", fmt.Errorf("%w: %s.%s", ErrUnsupported, t, m.Name))
		case val.Type == ir.NullType:
			fv.Set(reflect.Zero(fv.Type()))
		default:
			v, err := s.decode(m.Type, val)
			if err != nil {
				s.skip("member left at zero value", err)
				break
			}
			fv.Set(v)
		}
		s.leave(prev)
	}
	return res, nil
}

// settableField walks index like reflect.Value.FieldByIndex, allocating
// nil embedded pointers on the way.
func settableField(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, false
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, v.CanSet()
}
