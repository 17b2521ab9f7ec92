package gomap

import (
	"cmp"
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"time"

	"github.com/gering/Tiny-JSON/coerce"
	"github.com/gering/Tiny-JSON/encode"
	"github.com/gering/Tiny-JSON/ir"
	"github.com/gering/Tiny-JSON/typedesc"
)

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

type encBuiltin struct {
	name  string
	match func(d *typedesc.Type) bool
	fn    EncodeFunc
}

type decBuiltin struct {
	name  string
	match func(d *typedesc.Type) bool
	fn    DecodeFunc
}

func kindIs(k typedesc.Kind) func(d *typedesc.Type) bool {
	return func(d *typedesc.Type) bool { return d.Kind == k }
}

func usesText(d *typedesc.Type) bool {
	switch d.Kind {
	case typedesc.Enum, typedesc.Time, typedesc.Node, typedesc.Pointer, typedesc.Interface:
		return false
	}
	return true
}

func isTextMarshaler(d *typedesc.Type) bool {
	return usesText(d) && d.Go.Implements(textMarshalerType)
}

func isTextUnmarshaler(d *typedesc.Type) bool {
	return usesText(d) && reflect.PointerTo(d.Go).Implements(textUnmarshalerType)
}

// The built-in tables refer to codecs which recurse through the registry,
// so they are filled in init.
var (
	encBuiltins []encBuiltin
	decBuiltins []decBuiltin
)

func init() {
	encBuiltins = []encBuiltin{
		{"node", kindIs(typedesc.Node), encodeNode},
		{"pointer", kindIs(typedesc.Pointer), encodePointer},
		{"interface", kindIs(typedesc.Interface), encodeInterface},
		{"time", kindIs(typedesc.Time), encodeTime},
		{"text", isTextMarshaler, encodeText},
		{"map", kindIs(typedesc.Map), encodeMap},
		{"set", kindIs(typedesc.Set), encodeSet},
		{"slice", kindIs(typedesc.Slice), encodeSlice},
		{"array", kindIs(typedesc.Array), encodeArray},
	}
	decBuiltins = []decBuiltin{
		{"node", kindIs(typedesc.Node), decodeNode},
		{"pointer", kindIs(typedesc.Pointer), decodePointer},
		{"interface", kindIs(typedesc.Interface), decodeInterface},
		{"time", kindIs(typedesc.Time), decodeScalar},
		{"text", isTextUnmarshaler, decodeText},
		{"map", kindIs(typedesc.Map), decodeMap},
		{"set", kindIs(typedesc.Set), decodeSet},
		{"slice", kindIs(typedesc.Slice), decodeSlice},
		{"array", kindIs(typedesc.Array), decodeArray},
	}
}

// Builtins lists the names of the built-in structural codecs in lookup
// order.
func Builtins() []string {
	res := make([]string, len(encBuiltins))
	for i, b := range encBuiltins {
		res[i] = b.name
	}
	return res
}

// encode side

func encodeNode(s *EncState, v reflect.Value) error {
	mark := s.Mark()
	if err := s.Node(v.Interface().(*ir.Node)); err != nil {
		s.Reset(mark)
		s.Null()
		s.fail("encoding value tree", err)
	}
	return nil
}

// ref identifies a reference by address and type, so a struct and its
// first field, which share an address, are told apart.
type ref struct {
	addr uintptr
	t    reflect.Type
}

func (s *EncState) cycle(key ref) bool {
	prev, seen := s.visited[key]
	if !seen {
		return false
	}
	s.Null()
	s.fail(fmt.Sprintf("circular reference detected: %s -> %s (previously seen at %s)", prev, s.path, prev), ErrCycle)
	return true
}

func encodePointer(s *EncState, v reflect.Value) error {
	if v.IsNil() {
		s.Null()
		return nil
	}
	key := ref{v.Pointer(), v.Type()}
	if s.cycle(key) {
		return nil
	}
	s.visited[key] = s.path
	s.encode(v.Elem())
	// allows same pointer to appear in different branches
	delete(s.visited, key)
	return nil
}

func encodeInterface(s *EncState, v reflect.Value) error {
	if v.IsNil() {
		s.Null()
		return nil
	}
	s.encode(v.Elem())
	return nil
}

func encodeTime(s *EncState, v reflect.Value) error {
	tm, _ := v.Interface().(time.Time)
	s.String(coerce.FormatTime(tm))
	return nil
}

func encodeText(s *EncState, v reflect.Value) error {
	text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		s.Null()
		s.fail(fmt.Sprintf("MarshalText of %s", v.Type()), err)
		return nil
	}
	s.String(string(text))
	return nil
}

func encodeSlice(s *EncState, v reflect.Value) error {
	if v.IsNil() {
		s.Null()
		return nil
	}
	if v.Len() > 0 {
		key := ref{v.Pointer(), v.Type()}
		if s.cycle(key) {
			return nil
		}
		s.visited[key] = s.path
		defer delete(s.visited, key)
	}
	return encodeArray(s, v)
}

func encodeArray(s *EncState, v reflect.Value) error {
	s.BeginArray()
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			s.Separator()
		}
		prev := s.enter("[" + strconv.Itoa(i) + "]")
		s.encode(v.Index(i))
		s.leave(prev)
	}
	s.EndArray()
	return nil
}

func sortedKeys(v reflect.Value) []reflect.Value {
	keys := v.MapKeys()
	slices.SortFunc(keys, compareKeys)
	return keys
}

func encodeMap(s *EncState, v reflect.Value) error {
	if v.IsNil() {
		s.Null()
		return nil
	}
	key := ref{v.Pointer(), v.Type()}
	if s.cycle(key) {
		return nil
	}
	s.visited[key] = s.path
	defer delete(s.visited, key)

	type entry struct {
		key string
		val reflect.Value
	}
	entries := make([]entry, 0, v.Len())
	for _, k := range sortedKeys(v) {
		ks, err := keyString(k)
		if err != nil {
			s.Null()
			s.fail(fmt.Sprintf("map key of %s", v.Type()), err)
			return nil
		}
		entries = append(entries, entry{key: ks, val: v.MapIndex(k)})
	}
	s.BeginObject()
	for i, e := range entries {
		if i > 0 {
			s.Separator()
		}
		s.Name(e.key)
		prev := s.enter(e.key)
		s.encode(e.val)
		s.leave(prev)
	}
	s.EndObject()
	return nil
}

func encodeSet(s *EncState, v reflect.Value) error {
	if v.IsNil() {
		s.Null()
		return nil
	}
	key := ref{v.Pointer(), v.Type()}
	if s.cycle(key) {
		return nil
	}
	s.visited[key] = s.path
	defer delete(s.visited, key)

	s.BeginArray()
	for i, k := range sortedKeys(v) {
		if i > 0 {
			s.Separator()
		}
		prev := s.enter("[" + strconv.Itoa(i) + "]")
		s.encode(k)
		s.leave(prev)
	}
	s.EndArray()
	return nil
}

func encScalar(d *typedesc.Type) EncodeFunc {
	switch d.Kind {
	case typedesc.Bool:
		return func(s *EncState, v reflect.Value) error {
			s.Bool(v.Bool())
			return nil
		}
	case typedesc.Int:
		return func(s *EncState, v reflect.Value) error {
			s.Int(v.Int())
			return nil
		}
	case typedesc.Uint:
		return func(s *EncState, v reflect.Value) error {
			s.Uint(v.Uint())
			return nil
		}
	case typedesc.Float:
		return func(s *EncState, v reflect.Value) error {
			if err := s.Float(v.Float(), v.Type().Bits()); err != nil {
				s.fail("float without JSON form", err)
			}
			return nil
		}
	case typedesc.String:
		return func(s *EncState, v reflect.Value) error {
			s.String(v.String())
			return nil
		}
	case typedesc.Enum:
		return encodeEnum
	}
	return nil
}

// encodeEnum writes the underlying number of an enum value.
func encodeEnum(s *EncState, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		s.Int(v.Int())
	default:
		s.Uint(v.Uint())
	}
	return nil
}

// keyString renders a map key as an object member name.
func keyString(k reflect.Value) (string, error) {
	if k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}
	d := typedesc.Of(k.Type())
	switch d.Kind {
	case typedesc.String:
		return k.String(), nil
	case typedesc.Enum:
		if name, ok := d.Enum.Name(k); ok {
			return name, nil
		}
		if k.CanInt() {
			return strconv.FormatInt(k.Int(), 10), nil
		}
		return strconv.FormatUint(k.Uint(), 10), nil
	case typedesc.Int:
		return strconv.FormatInt(k.Int(), 10), nil
	case typedesc.Uint:
		return strconv.FormatUint(k.Uint(), 10), nil
	case typedesc.Float:
		return encode.FormatFloat(k.Float(), k.Type().Bits()), nil
	case typedesc.Bool:
		return strconv.FormatBool(k.Bool()), nil
	}
	if d.Go.Implements(textMarshalerType) {
		text, err := k.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return "", err
		}
		return string(text), nil
	}
	return "", fmt.Errorf("%w: key type %s", ErrUnsupported, k.Type())
}

func compareKeys(a, b reflect.Value) int {
	if a.Kind() == reflect.Interface || b.Kind() == reflect.Interface {
		as, _ := keyString(a)
		bs, _ := keyString(b)
		return cmp.Compare(as, bs)
	}
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		return cmp.Compare(a.String(), b.String())
	case reflect.Bool:
		switch {
		case a.Bool() == b.Bool():
			return 0
		case !a.Bool():
			return -1
		}
		return 1
	}
	as, _ := keyString(a)
	bs, _ := keyString(b)
	if c := cmp.Compare(as, bs); c != 0 {
		return c
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// decode side

func decodeNode(_ *DecState, _ reflect.Type, node *ir.Node) (reflect.Value, error) {
	return reflect.ValueOf(node), nil
}

func decodePointer(s *DecState, t reflect.Type, node *ir.Node) (reflect.Value, error) {
	if node.Type == ir.NullType {
		return reflect.Zero(t), nil
	}
	v, err := s.decode(t.Elem(), node)
	if err != nil {
		return reflect.Value{}, err
	}
	p := reflect.New(t.Elem())
	p.Elem().Set(v)
	return p, nil
}

func decodeInterface(s *DecState, t reflect.Type, node *ir.Node) (reflect.Value, error) {
	if node.Type == ir.NullType {
		return reflect.Zero(t), nil
	}
	if t.NumMethod() != 0 {
		return reflect.Value{}, &TypeError{
			FieldPath: s.path,
			Message:   fmt.Sprintf("no decoder registered for interface %s", t),
			Err:       ErrNoCodec,
		}
	}
	x, err := s.generic(node)
	if err != nil {
		return reflect.Value{}, err
	}
	res := reflect.New(t).Elem()
	if x != nil {
		res.Set(reflect.ValueOf(x))
	}
	return res, nil
}

// generic builds the plain Go form of node: nil, bool, int64, float64,
// string, []any or map[string]any.
func (s *DecState) generic(node *ir.Node) (any, error) {
	switch node.Type {
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, el := range node.Values {
			prev := s.enter("[" + strconv.Itoa(i) + "]")
			x, err := s.generic(el)
			s.leave(prev)
			if err != nil {
				s.skip("element set to null", err)
				continue
			}
			res[i] = x
		}
		return res, nil
	case ir.ObjectType:
		res := make(map[string]any, len(node.Values))
		for i, el := range node.Values {
			key := node.Fields[i].String
			prev := s.enter(key)
			x, err := s.generic(el)
			s.leave(prev)
			if err != nil {
				s.skip("entry skipped", err)
				continue
			}
			res[key] = x
		}
		return res, nil
	}
	return coerce.Scalar(node)
}

func decodeScalar(_ *DecState, t reflect.Type, node *ir.Node) (reflect.Value, error) {
	return coerce.Coerce(node, t)
}

func decodeText(_ *DecState, t reflect.Type, node *ir.Node) (reflect.Value, error) {
	if node.Type != ir.StringType {
		if node.Type == ir.NullType {
			return reflect.Value{}, coerce.ErrNoValue
		}
		return reflect.Value{}, &coerce.Error{From: node.Type, To: t, Err: coerce.ErrMismatch}
	}
	p := reflect.New(t)
	if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(node.String)); err != nil {
		return reflect.Value{}, err
	}
	return p.Elem(), nil
}

func shape(s *DecState, t reflect.Type, node *ir.Node, want ir.Type) error {
	if node.Type == want {
		return nil
	}
	if node.Type == ir.NullType {
		return coerce.ErrNoValue
	}
	return &TypeError{
		FieldPath: s.path,
		Expected:  want.String() + " for " + t.String(),
		Actual:    node.Type.String(),
		Err:       ErrShape,
	}
}

func decodeSlice(s *DecState, t reflect.Type, node *ir.Node) (reflect.Value, error) {
	if node.Type == ir.NullType {
		return reflect.Zero(t), nil
	}
	if err := shape(s, t, node, ir.ArrayType); err != nil {
		return reflect.Value{}, err
	}
	res := reflect.MakeSlice(t, len(node.Values), len(node.Values))
	s.fill(res, node.Values)
	return res, nil
}

func decodeArray(s *DecState, t reflect.Type, node *ir.Node) (reflect.Value, error) {
	if err := shape(s, t, node, ir.ArrayType); err != nil {
		return reflect.Value{}, err
	}
	res := reflect.New(t).Elem()
	vals := node.Values
	if len(vals) > t.Len() {
		vals = vals[:t.Len()]
	}
	s.fill(res, vals)
	return res, nil
}

// fill decodes vals into the leading elements of dst. Elements that are
// null or fail to decode keep the zero value.
func (s *DecState) fill(dst reflect.Value, vals []*ir.Node) {
	et := dst.Type().Elem()
	for i, el := range vals {
		prev := s.enter("[" + strconv.Itoa(i) + "]")
		v, err := s.decode(et, el)
		if err != nil {
			if el.Type != ir.NullType {
				s.skip("element set to zero value", err)
			}
		} else {
			dst.Index(i).Set(v)
		}
		s.leave(prev)
	}
}

func decodeSet(s *DecState, t reflect.Type, node *ir.Node) (reflect.Value, error) {
	if node.Type == ir.NullType {
		return reflect.Zero(t), nil
	}
	if err := shape(s, t, node, ir.ArrayType); err != nil {
		return reflect.Value{}, err
	}
	res := reflect.MakeMapWithSize(t, len(node.Values))
	present := reflect.Zero(t.Elem())
	nullable := typedesc.Of(t.Key()).Nullable
	for i, el := range node.Values {
		prev := s.enter("[" + strconv.Itoa(i) + "]")
		k, err := s.decode(t.Key(), el)
		if err != nil {
			if el.Type != ir.NullType {
				s.skip("set element skipped", err)
			}
		} else if el.Type != ir.NullType || nullable {
			res.SetMapIndex(k, present)
		}
		s.leave(prev)
	}
	return res, nil
}

func decodeMap(s *DecState, t reflect.Type, node *ir.Node) (reflect.Value, error) {
	if node.Type == ir.NullType {
		return reflect.Zero(t), nil
	}
	if err := shape(s, t, node, ir.ObjectType); err != nil {
		return reflect.Value{}, err
	}
	res := reflect.MakeMapWithSize(t, len(node.Values))
	vt := t.Elem()
	for i, el := range node.Values {
		key := node.Fields[i].String
		prev := s.enter(key)
		k, err := mapKey(t.Key(), key)
		if err != nil {
			s.skip("entry skipped", err)
			s.leave(prev)
			continue
		}
		v, err := s.decode(vt, el)
		if err != nil {
			if el.Type != ir.NullType {
				s.skip("entry skipped", err)
			}
			s.leave(prev)
			continue
		}
		res.SetMapIndex(k, v)
		s.leave(prev)
	}
	return res, nil
}

// mapKey converts an object member name to a map key of type kt.
func mapKey(kt reflect.Type, key string) (reflect.Value, error) {
	d := typedesc.Of(kt)
	switch d.Kind {
	case typedesc.String:
		return reflect.ValueOf(key).Convert(kt), nil
	case typedesc.Enum:
		if v, ok := d.Enum.Value(key); ok {
			return v.Convert(kt), nil
		}
		n, err := ir.FromNumber(key)
		if err != nil {
			return reflect.Value{}, &coerce.Error{From: ir.StringType, To: kt, Err: coerce.ErrEnum}
		}
		return coerce.Coerce(n, kt)
	case typedesc.Int, typedesc.Uint, typedesc.Float:
		return coerce.Coerce(ir.FromString(key), kt)
	case typedesc.Bool:
		b, err := strconv.ParseBool(key)
		if err != nil {
			return reflect.Value{}, &coerce.Error{From: ir.StringType, To: kt, Err: coerce.ErrMismatch}
		}
		return reflect.ValueOf(b).Convert(kt), nil
	}
	if reflect.PointerTo(kt).Implements(textUnmarshalerType) {
		p := reflect.New(kt)
		if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(key)); err != nil {
			return reflect.Value{}, err
		}
		return p.Elem(), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: key type %s", ErrUnsupported, kt)
}
