package gomap

import (
	"errors"
	"io"
	"reflect"
	"sync/atomic"

	"github.com/gering/Tiny-JSON/encode"
	"github.com/gering/Tiny-JSON/ir"
	"github.com/gering/Tiny-JSON/log"
	"github.com/gering/Tiny-JSON/parse"
)

type loggerBox struct{ log.Logger }

// Mapper encodes and decodes Go values using a codec registry.
// A Mapper is safe for concurrent use once its registry is set up.
type Mapper struct {
	registry  *Registry
	logger    atomic.Pointer[loggerBox]
	encOpts   []encode.EncodeOption
	parseOpts []parse.ParseOption
}

// NewMapper creates a Mapper. Without WithRegistry it gets its own
// registry holding only the built-in codecs.
func NewMapper(opts ...MapperOption) *Mapper {
	m := &Mapper{}
	m.logger.Store(&loggerBox{log.NopLogger{}})
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = NewRegistry()
	}
	return m
}

var defaultMapper = NewMapper()

// DefaultMapper returns the process wide Mapper used by the package level
// functions of tinyjson.
func DefaultMapper() *Mapper {
	return defaultMapper
}

func (m *Mapper) Registry() *Registry {
	return m.registry
}

func (m *Mapper) Logger() log.Logger {
	return m.logger.Load().Logger
}

func (m *Mapper) SetLogger(l log.Logger) {
	if l == nil {
		l = log.NopLogger{}
	}
	m.logger.Store(&loggerBox{l})
}

// Encode writes v to b. The document is always complete; the returned
// error joins the diagnostics for every value that was written as null.
func (m *Mapper) Encode(v any, b *encode.Builder) error {
	return m.EncodeValue(reflect.ValueOf(v), b)
}

func (m *Mapper) EncodeValue(v reflect.Value, b *encode.Builder) error {
	s := m.newEncState(b)
	s.encode(v)
	return errors.Join(s.errs...)
}

// EncodeString returns v as JSON text. Diagnostics go to the logger only.
func (m *Mapper) EncodeString(v any, pretty bool) string {
	opts := append([]encode.EncodeOption{}, m.encOpts...)
	opts = append(opts, encode.EncodePretty(pretty))
	b := encode.NewBuilder(opts...)
	_ = m.Encode(v, b)
	return b.Text()
}

// EncodeTo writes v as JSON text to w. Only write errors are returned.
func (m *Mapper) EncodeTo(w io.Writer, v any, opts ...encode.EncodeOption) error {
	all := append(append([]encode.EncodeOption{}, m.encOpts...), opts...)
	b := encode.NewBuilder(all...)
	_ = m.Encode(v, b)
	_, err := w.Write(b.Bytes())
	return err
}

// ToIR converts v to a value tree.
func (m *Mapper) ToIR(v any) (*ir.Node, error) {
	b := encode.NewBuilder()
	diag := m.Encode(v, b)
	node, err := parse.Parse(b.Bytes())
	if err != nil {
		return nil, &MarshalError{Message: "re-reading encoded value", Err: err}
	}
	return node, diag
}

// Decode builds a value of type t from node. A top level failure is
// returned as an error; failures below the top level are logged and leave
// the affected member, element or entry at its zero value or skipped.
func (m *Mapper) Decode(node *ir.Node, t reflect.Type) (reflect.Value, error) {
	s := m.newDecState()
	return s.decode(t, node)
}

// DecodeInto decodes node into the value ptr points to.
func (m *Mapper) DecodeInto(node *ir.Node, ptr any) error {
	return m.newDecState().Into(node, ptr)
}

// Parse reads data into a value tree with the mapper's parse options.
// Empty input yields a nil node.
func (m *Mapper) Parse(data []byte) (*ir.Node, error) {
	return parse.Parse(data, m.parseOpts...)
}

// Unmarshal parses data and decodes it into the value ptr points to.
// Empty input leaves the target untouched and is not an error.
func (m *Mapper) Unmarshal(data []byte, ptr any) error {
	node, err := m.Parse(data)
	if err != nil {
		return &UnmarshalError{Message: "parse", Err: err}
	}
	if node == nil {
		return nil
	}
	return m.DecodeInto(node, ptr)
}
