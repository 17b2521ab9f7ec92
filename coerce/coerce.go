// Package coerce converts scalar value tree nodes into Go values.
//
// Coercion never panics. A value that cannot be represented in the target
// type yields an *Error wrapping one of the sentinel errors, which the
// mapping engine turns into a skipped member or a zero element.
//
// Numbers are converted with a single rule: fractional values truncate
// toward zero when the target is an integer, and anything outside the range
// of the target fails with ErrRange. Numeric strings such as "33" are read
// as numbers first.
package coerce

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/gering/Tiny-JSON/ir"
	"github.com/gering/Tiny-JSON/typedesc"
)

// Coerce converts a scalar node to a value of type t.
func Coerce(node *ir.Node, t reflect.Type) (reflect.Value, error) {
	if node == nil {
		node = ir.Null()
	}
	d := typedesc.Of(t)
	if node.Type == ir.NullType {
		if d.Nullable {
			return reflect.Zero(t), nil
		}
		return fail(node, t, ErrNoValue)
	}
	switch d.Kind {
	case typedesc.Node:
		return reflect.ValueOf(node), nil
	case typedesc.Pointer:
		v, err := Coerce(node, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(v)
		return p, nil
	case typedesc.Interface:
		if t.NumMethod() != 0 {
			return fail(node, t, ErrMismatch)
		}
		v, err := Scalar(node)
		if err != nil {
			return fail(node, t, err)
		}
		res := reflect.New(t).Elem()
		res.Set(reflect.ValueOf(v))
		return res, nil
	case typedesc.Bool:
		if node.Type != ir.BoolType {
			return fail(node, t, ErrMismatch)
		}
		res := reflect.New(t).Elem()
		res.SetBool(node.Bool)
		return res, nil
	case typedesc.String:
		if node.Type != ir.StringType {
			return fail(node, t, ErrMismatch)
		}
		res := reflect.New(t).Elem()
		res.SetString(node.String)
		return res, nil
	case typedesc.Int, typedesc.Uint, typedesc.Float:
		n, err := readNumber(node)
		if err != nil {
			return fail(node, t, err)
		}
		res, err := n.to(t)
		if err != nil {
			return fail(node, t, err)
		}
		return res, nil
	case typedesc.Enum:
		return enum(node, t, d.Enum)
	case typedesc.Time:
		if node.Type != ir.StringType {
			return fail(node, t, ErrMismatch)
		}
		tm, err := ParseTime(node.String)
		if err != nil {
			return fail(node, t, err)
		}
		return reflect.ValueOf(tm).Convert(t), nil
	}
	return fail(node, t, ErrMismatch)
}

// To is Coerce for a static target type.
func To[T any](node *ir.Node) (T, error) {
	var zero T
	v, err := Coerce(node, reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	res, _ := v.Interface().(T)
	return res, nil
}

// Scalar returns the plain Go form of a scalar node: nil, bool, int64,
// float64 or string. Integral numbers which do not fit in an int64 are
// returned as float64.
func Scalar(node *ir.Node) (any, error) {
	switch node.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.StringType:
		return node.String, nil
	case ir.NumberType:
		if node.Int64 != nil {
			return *node.Int64, nil
		}
		if node.Float64 != nil {
			return *node.Float64, nil
		}
		n, err := readNumber(node)
		if err != nil {
			return nil, err
		}
		return n.f, nil
	}
	return nil, ErrMismatch
}

func enum(node *ir.Node, t reflect.Type, e *typedesc.Enumeration) (reflect.Value, error) {
	switch node.Type {
	case ir.StringType:
		v, ok := e.Value(node.String)
		if !ok {
			return fail(node, t, ErrEnum)
		}
		return v.Convert(t), nil
	case ir.NumberType:
		n, err := readNumber(node)
		if err != nil {
			return fail(node, t, err)
		}
		if n.kind == numFloat && n.f != math.Trunc(n.f) {
			return fail(node, t, ErrEnum)
		}
		v, err := n.to(t)
		if err != nil {
			return fail(node, t, ErrEnum)
		}
		if !e.Has(v) {
			return fail(node, t, ErrEnum)
		}
		return v, nil
	}
	return fail(node, t, ErrMismatch)
}

type numKind int

const (
	numInt numKind = iota
	numUint
	numFloat
)

type number struct {
	kind numKind
	i    int64
	u    uint64
	f    float64
}

func readNumber(node *ir.Node) (number, error) {
	switch node.Type {
	case ir.NumberType:
	case ir.StringType:
		parsed, err := ir.FromNumber(strings.TrimSpace(node.String))
		if err != nil {
			return number{}, ErrMismatch
		}
		node = parsed
	default:
		return number{}, ErrMismatch
	}
	if node.Int64 != nil {
		return number{kind: numInt, i: *node.Int64, f: float64(*node.Int64)}, nil
	}
	if node.Number != "" && !strings.ContainsAny(node.Number, ".eE") {
		if u, err := strconv.ParseUint(node.Number, 10, 64); err == nil {
			return number{kind: numUint, u: u, f: float64(u)}, nil
		}
	}
	if node.Float64 != nil {
		return number{kind: numFloat, f: *node.Float64}, nil
	}
	if node.Number != "" {
		f, err := strconv.ParseFloat(node.Number, 64)
		if err != nil {
			return number{}, ErrRange
		}
		return number{kind: numFloat, f: f}, nil
	}
	return number{}, ErrMismatch
}

// to converts n to the numeric kind underlying t.
func (n number) to(t reflect.Type) (reflect.Value, error) {
	res := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var i int64
		switch n.kind {
		case numInt:
			i = n.i
		case numUint:
			if n.u > math.MaxInt64 {
				return reflect.Value{}, ErrRange
			}
			i = int64(n.u)
		case numFloat:
			f := math.Trunc(n.f)
			if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
				return reflect.Value{}, ErrRange
			}
			i = int64(f)
		}
		if res.OverflowInt(i) {
			return reflect.Value{}, ErrRange
		}
		res.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		var u uint64
		switch n.kind {
		case numInt:
			if n.i < 0 {
				return reflect.Value{}, ErrRange
			}
			u = uint64(n.i)
		case numUint:
			u = n.u
		case numFloat:
			f := math.Trunc(n.f)
			if math.IsNaN(f) || f < 0 || f >= math.MaxUint64 {
				return reflect.Value{}, ErrRange
			}
			u = uint64(f)
		}
		if res.OverflowUint(u) {
			return reflect.Value{}, ErrRange
		}
		res.SetUint(u)
	case reflect.Float32, reflect.Float64:
		if math.IsNaN(n.f) || math.IsInf(n.f, 0) || res.OverflowFloat(n.f) {
			return reflect.Value{}, ErrRange
		}
		res.SetFloat(n.f)
	default:
		return reflect.Value{}, ErrMismatch
	}
	return res, nil
}
