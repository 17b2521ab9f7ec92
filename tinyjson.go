// Package tinyjson converts between Go values and JSON text.
//
// Encoding and decoding go through a gomap.Mapper. The package level
// functions use gomap.DefaultMapper unless WithMapper is given, and codecs
// registered with RegisterEncoder and RegisterDecoder land in its registry.
package tinyjson

import (
	"io"
	"reflect"

	"github.com/gering/Tiny-JSON/encode"
	"github.com/gering/Tiny-JSON/gomap"
	"github.com/gering/Tiny-JSON/ir"
	"github.com/gering/Tiny-JSON/log"
)

type config struct {
	mapper *gomap.Mapper
	pretty bool
	colors *encode.Colors
}

type Option func(*config)

// Pretty indents the output and terminates it with a newline.
func Pretty() Option {
	return func(c *config) { c.pretty = true }
}

func WithMapper(m *gomap.Mapper) Option {
	return func(c *config) { c.mapper = m }
}

// WithColors colors the output of Encode and EncodeTo.
func WithColors(cs *encode.Colors) Option {
	return func(c *config) { c.colors = cs }
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.mapper == nil {
		c.mapper = gomap.DefaultMapper()
	}
	return c
}

func (c *config) encodeOptions() []encode.EncodeOption {
	res := []encode.EncodeOption{encode.EncodePretty(c.pretty)}
	if c.colors != nil {
		res = append(res, encode.EncodeColors(c.colors))
	}
	return res
}

// Encode returns v as JSON text. Values which cannot be encoded are
// written as null and reported to the mapper's logger.
func Encode(v any, opts ...Option) string {
	c := newConfig(opts)
	b := encode.NewBuilder(c.encodeOptions()...)
	_ = c.mapper.Encode(v, b)
	return b.Text()
}

// EncodeTo writes v as JSON text to w.
func EncodeTo(w io.Writer, v any, opts ...Option) error {
	c := newConfig(opts)
	return c.mapper.EncodeTo(w, v, c.encodeOptions()...)
}

// Decode parses text into a T. Empty, malformed or mismatched input yields
// the zero T; the reason is reported to the mapper's logger.
func Decode[T any](text string, opts ...Option) T {
	var res T
	c := newConfig(opts)
	node, err := c.mapper.Parse([]byte(text))
	if err != nil {
		c.mapper.Logger().Warn("decode failed", log.Fields{"error": err.Error()})
		return res
	}
	if node == nil {
		return res
	}
	v, err := c.mapper.Decode(node, reflect.TypeFor[T]())
	if err != nil {
		c.mapper.Logger().Warn("decode failed", log.Fields{"error": err.Error()})
		return res
	}
	if !v.IsValid() {
		return res
	}
	reflect.ValueOf(&res).Elem().Set(v)
	return res
}

// Unmarshal is Decode for callers which want the error. On failure the
// value ptr points to is left untouched.
func Unmarshal(data []byte, ptr any, opts ...Option) error {
	return newConfig(opts).mapper.Unmarshal(data, ptr)
}

// RegisterEncoder installs fn on the default mapper. See
// gomap.RegisterEncoder for how T is matched.
func RegisterEncoder[T any](fn func(s *gomap.EncState, v T) error) {
	gomap.RegisterEncoder(gomap.DefaultMapper().Registry(), fn)
}

// RegisterDecoder installs fn on the default mapper.
func RegisterDecoder[T any](fn func(s *gomap.DecState, node *ir.Node) (T, error)) {
	gomap.RegisterDecoder(gomap.DefaultMapper().Registry(), fn)
}

// SetLogger routes the default mapper's diagnostics to l.
func SetLogger(l log.Logger) {
	gomap.DefaultMapper().SetLogger(l)
}
