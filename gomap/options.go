package gomap

import (
	"github.com/gering/Tiny-JSON/encode"
	"github.com/gering/Tiny-JSON/log"
	"github.com/gering/Tiny-JSON/parse"
)

// MapperOption configures a Mapper.
type MapperOption func(*Mapper)

// WithRegistry makes the mapper use r instead of a fresh registry.
func WithRegistry(r *Registry) MapperOption {
	return func(m *Mapper) { m.registry = r }
}

// WithLogger routes diagnostics to l.
func WithLogger(l log.Logger) MapperOption {
	return func(m *Mapper) { m.SetLogger(l) }
}

// WithEncodeOptions sets the builder options used by EncodeString and
// EncodeTo.
func WithEncodeOptions(opts ...encode.EncodeOption) MapperOption {
	return func(m *Mapper) { m.encOpts = append(m.encOpts, opts...) }
}

// WithParseOptions sets the parser options used by Unmarshal.
func WithParseOptions(opts ...parse.ParseOption) MapperOption {
	return func(m *Mapper) { m.parseOpts = append(m.parseOpts, opts...) }
}
