package gomap

import (
	"fmt"
	"reflect"

	"github.com/gering/Tiny-JSON/debug"
	"github.com/gering/Tiny-JSON/encode"
	"github.com/gering/Tiny-JSON/log"
	"github.com/gering/Tiny-JSON/typedesc"
)

// EncState is passed to encoders. It embeds the Builder the encoder writes
// to; nested values are written with Value or Reflect so that they go
// through the registry.
type EncState struct {
	*encode.Builder
	m       *Mapper
	path    string
	visited map[ref]string // Track visited references by address, type and field path
	errs    []error
}

func (m *Mapper) newEncState(b *encode.Builder) *EncState {
	return &EncState{
		Builder: b,
		m:       m,
		visited: map[ref]string{},
	}
}

func (s *EncState) Mapper() *Mapper {
	return s.m
}

// Path returns the field path of the value being written, such as
// "cargo[1].legs".
func (s *EncState) Path() string {
	return s.path
}

// Value writes v through the registry. It returns an error when v or
// anything below it had to be written as null.
func (s *EncState) Value(v any) error {
	return s.Reflect(reflect.ValueOf(v))
}

// Reflect is Value for a reflect.Value.
func (s *EncState) Reflect(v reflect.Value) error {
	n := len(s.errs)
	s.encode(v)
	if len(s.errs) > n {
		return s.errs[n]
	}
	return nil
}

// Field writes a member name followed by the encoded value. The caller
// writes separators between members.
func (s *EncState) Field(name string, v any) error {
	s.Name(name)
	prev := s.enter(name)
	defer s.leave(prev)
	return s.Value(v)
}

func (s *EncState) enter(seg string) string {
	prev := s.path
	s.path = joinPath(prev, seg)
	return prev
}

func (s *EncState) leave(prev string) {
	s.path = prev
}

// fail records a diagnostic for the value at the current path.
func (s *EncState) fail(msg string, err error) {
	merr := &MarshalError{FieldPath: s.path, Message: msg, Err: err}
	s.errs = append(s.errs, merr)
	s.m.Logger().Warn("value written as null", log.Fields{
		"path":  s.path,
		"error": merr.Error(),
	})
}

func (s *EncState) encode(v reflect.Value) {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			s.Null()
			return
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		s.Null()
		return
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func:
		if v.IsNil() {
			s.Null()
			return
		}
	}
	t := v.Type()
	fn, src := s.m.registry.Encoder(t)
	if debug.Encode() {
		debug.Logf("tinyjson: encode %s at %q with %s codec\n", t, s.path, src)
	}
	if src == SourceBuiltin || src == SourceScalar {
		// built-in codecs report their own failures and always write a value
		_ = fn(s, v)
		return
	}
	s.call(fn, v)
}

// call runs a replaceable codec. If it fails or writes nothing, whatever
// it wrote is discarded and null written in its place.
func (s *EncState) call(fn EncodeFunc, v reflect.Value) {
	mark := s.Mark()
	start := s.Len()
	nerrs := len(s.errs)
	err := fn(s, v)
	if err == nil && s.Len() == start {
		err = fmt.Errorf("%w: codec for %s wrote nothing", ErrUnsupported, v.Type())
	}
	if err == nil {
		return
	}
	s.Reset(mark)
	s.errs = s.errs[:nerrs]
	s.Null()
	s.fail(fmt.Sprintf("encoding %s", v.Type()), err)
}

// encodeObject is the default catch-all encoder: structs are written
// member by member in descriptor order, anything else is unsupported.
func encodeObject(s *EncState, v reflect.Value) error {
	t := v.Type()
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s", ErrUnsupported, t)
	}
	d := typedesc.Of(t)
	if d.Err != nil {
		s.m.Logger().Debug("descriptor problem", log.Fields{"type": t.String(), "error": d.Err.Error()})
	}
	s.BeginObject()
	n := 0
	for i := range d.Members {
		m := &d.Members[i]
		if m.Excluded {
			continue
		}
		fv, err := v.FieldByIndexErr(m.Index)
		if err != nil {
			// nil embedded pointer
			continue
		}
		if n > 0 {
			s.Separator()
		}
		n++
		s.Name(m.WireName)
		prev := s.enter(m.WireName)
		s.encode(fv)
		s.leave(prev)
	}
	s.EndObject()
	return nil
}
