package encode

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/gering/Tiny-JSON/ir"
	"github.com/gering/Tiny-JSON/token"
)

var (
	ErrEncoding    = errors.New("encoding error")
	ErrUnsupported = fmt.Errorf("%w: unsupported value", ErrEncoding)
)

type frame struct {
	array bool
	items int
}

// Builder accumulates JSON text from a sequence of calls. Callers are
// responsible for issuing calls in a well formed order: Separator between
// members or elements, Name before every object member value.
type Builder struct {
	buf       bytes.Buffer
	pretty    bool
	indent    int
	frames    []frame
	afterName bool

	Color func(ir.Type, ColorAttr, string) string
}

func NewBuilder(opts ...EncodeOption) *Builder {
	b := &Builder{indent: 2}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) Pretty() bool {
	return b.pretty
}

// Mark records the builder state so that a partially written value can be
// discarded with Reset.
type Mark struct {
	n         int
	frames    []frame
	afterName bool
}

func (b *Builder) Mark() Mark {
	return Mark{
		n:         b.buf.Len(),
		frames:    slices.Clone(b.frames),
		afterName: b.afterName,
	}
}

func (b *Builder) Reset(m Mark) {
	b.buf.Truncate(m.n)
	b.frames = m.frames
	b.afterName = m.afterName
}

func (b *Builder) Len() int {
	return b.buf.Len()
}

// Bytes returns the document. In pretty mode a trailing newline is added.
func (b *Builder) Bytes() []byte {
	res := slices.Clone(b.buf.Bytes())
	if b.pretty && len(res) > 0 {
		res = append(res, '\n')
	}
	return res
}

// Text is Bytes as a string.
func (b *Builder) Text() string {
	return string(b.Bytes())
}

func (b *Builder) colored(t ir.Type, a ColorAttr, s string) string {
	if b.Color == nil {
		return s
	}
	return b.Color(t, a, s)
}

func (b *Builder) writeNL() {
	if !b.pretty {
		return
	}
	b.buf.WriteByte('\n')
	b.buf.WriteString(strings.Repeat(" ", b.indent*len(b.frames)))
}

// beginValue writes what precedes a value: nothing after a name, a new
// line inside arrays in pretty mode.
func (b *Builder) beginValue() {
	if b.afterName {
		b.afterName = false
		return
	}
	if n := len(b.frames); n > 0 && b.frames[n-1].array {
		b.frames[n-1].items++
		b.writeNL()
	}
}

func (b *Builder) BeginObject() {
	b.beginValue()
	b.buf.WriteString(b.colored(ir.ObjectType, SepColor, "{"))
	b.frames = append(b.frames, frame{})
}

func (b *Builder) EndObject() {
	b.end(ir.ObjectType, "}")
}

func (b *Builder) BeginArray() {
	b.beginValue()
	b.buf.WriteString(b.colored(ir.ArrayType, SepColor, "["))
	b.frames = append(b.frames, frame{array: true})
}

func (b *Builder) EndArray() {
	b.end(ir.ArrayType, "]")
}

func (b *Builder) end(t ir.Type, s string) {
	n := len(b.frames)
	if n == 0 {
		b.buf.WriteString(b.colored(t, SepColor, s))
		return
	}
	items := b.frames[n-1].items
	b.frames = b.frames[:n-1]
	if items > 0 {
		b.writeNL()
	}
	b.buf.WriteString(b.colored(t, SepColor, s))
}

func (b *Builder) Separator() {
	var t ir.Type = ir.ArrayType
	if n := len(b.frames); n > 0 && !b.frames[n-1].array {
		t = ir.ObjectType
	}
	b.buf.WriteString(b.colored(t, SepColor, ","))
}

func (b *Builder) Name(name string) {
	if n := len(b.frames); n > 0 {
		b.frames[n-1].items++
	}
	b.writeNL()
	b.buf.WriteString(b.colored(ir.ObjectType, FieldColor, token.Quote(name)))
	if b.pretty {
		b.buf.WriteString(b.colored(ir.ObjectType, SepColor, " : "))
	} else {
		b.buf.WriteString(b.colored(ir.ObjectType, SepColor, ":"))
	}
	b.afterName = true
}

func (b *Builder) Null() {
	b.beginValue()
	b.buf.WriteString(b.colored(ir.NullType, ValueColor, "null"))
}

func (b *Builder) Bool(v bool) {
	b.beginValue()
	b.buf.WriteString(b.colored(ir.BoolType, ValueColor, strconv.FormatBool(v)))
}

// Number writes lit verbatim. lit must be a valid JSON number literal.
func (b *Builder) Number(lit string) {
	b.beginValue()
	b.buf.WriteString(b.colored(ir.NumberType, ValueColor, lit))
}

func (b *Builder) String(v string) {
	b.beginValue()
	b.buf.WriteString(b.colored(ir.StringType, ValueColor, token.Quote(v)))
}

func (b *Builder) Int(v int64) {
	b.Number(strconv.FormatInt(v, 10))
}

func (b *Builder) Uint(v uint64) {
	b.Number(strconv.FormatUint(v, 10))
}

// Float writes f in the shortest form that reads back as the same value
// of the given bit size. NaN and infinities have no JSON form: null is
// written and ErrUnsupported returned.
func (b *Builder) Float(f float64, bits int) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		b.Null()
		return fmt.Errorf("%w: %v", ErrUnsupported, f)
	}
	b.Number(FormatFloat(f, bits))
	return nil
}

// Value writes a scalar: nil, bool, string or any Go number. Other values
// are written as null and reported with ErrUnsupported.
func (b *Builder) Value(v any) error {
	switch x := v.(type) {
	case nil:
		b.Null()
		return nil
	case bool:
		b.Bool(x)
		return nil
	case string:
		b.String(x)
		return nil
	case float32:
		return b.Float(float64(x), 32)
	case float64:
		return b.Float(x, 64)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.Uint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return b.Float(rv.Float(), rv.Type().Bits())
	case reflect.Bool:
		b.Bool(rv.Bool())
	case reflect.String:
		b.String(rv.String())
	default:
		b.Null()
		return fmt.Errorf("%w: type %T", ErrUnsupported, v)
	}
	return nil
}

// Array writes vs as an array of scalars. Every element is written even
// when some fail; the first error is returned.
func (b *Builder) Array(vs ...any) error {
	var first error
	b.BeginArray()
	for i, v := range vs {
		if i > 0 {
			b.Separator()
		}
		if err := b.Value(v); err != nil && first == nil {
			first = err
		}
	}
	b.EndArray()
	return first
}

// Dictionary writes m as an object of scalars with keys in sorted order.
func (b *Builder) Dictionary(m map[string]any) error {
	var first error
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	b.BeginObject()
	for i, k := range keys {
		if i > 0 {
			b.Separator()
		}
		b.Name(k)
		if err := b.Value(m[k]); err != nil && first == nil {
			first = err
		}
	}
	b.EndObject()
	return first
}

// FormatFloat formats like the shortest decimal representation that
// round-trips for the given bit size, switching to exponent form for very
// small or large magnitudes.
func FormatFloat(f float64, bits int) string {
	abs := math.Abs(f)
	fmtc := byte('f')
	if abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) ||
			bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			fmtc = 'e'
		}
	}
	d := strconv.AppendFloat(nil, f, fmtc, -1, bits)
	if fmtc == 'e' {
		// clean up e-09 to e-9
		n := len(d)
		if n >= 4 && d[n-4] == 'e' && d[n-3] == '-' && d[n-2] == '0' {
			d[n-2] = d[n-1]
			d = d[:n-1]
		}
	}
	return string(d)
}
