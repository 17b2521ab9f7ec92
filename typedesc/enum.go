package typedesc

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"golang.org/x/exp/constraints"
)

// Enumeration is the set of named values of an enum type.
type Enumeration struct {
	Type    reflect.Type
	names   []string
	byName  map[string]reflect.Value
	byValue map[any]string
}

var enums sync.Map // reflect.Type -> *Enumeration

// RegisterEnum declares E an enum whose values are 0..len(names)-1 in the
// order given.
func RegisterEnum[E constraints.Integer](names ...string) *Enumeration {
	vals := make(map[string]E, len(names))
	for i, name := range names {
		vals[name] = E(i)
	}
	return newEnum(reflect.TypeFor[E](), vals)
}

// RegisterEnumValues declares E an enum with explicit values.
func RegisterEnumValues[E constraints.Integer](vals map[string]E) *Enumeration {
	return newEnum(reflect.TypeFor[E](), vals)
}

func newEnum[E constraints.Integer](t reflect.Type, vals map[string]E) *Enumeration {
	e := &Enumeration{
		Type:    t,
		byName:  make(map[string]reflect.Value, len(vals)),
		byValue: make(map[any]string, len(vals)),
	}
	for name, v := range vals {
		e.names = append(e.names, name)
		e.byName[name] = reflect.ValueOf(v)
		if prev, ok := e.byValue[v]; !ok || name < prev {
			e.byValue[v] = name
		}
	}
	slices.SortFunc(e.names, func(a, b string) int {
		va, vb := vals[a], vals[b]
		switch {
		case va < vb:
			return -1
		case va > vb:
			return 1
		}
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
	enums.Store(t, e)
	derived.Delete(t)
	return e
}

func enumOf(t reflect.Type) *Enumeration {
	if v, ok := enums.Load(t); ok {
		return v.(*Enumeration)
	}
	return nil
}

// EnumOf returns the enumeration registered for t, or nil.
func EnumOf(t reflect.Type) *Enumeration {
	return enumOf(t)
}

// Names returns the member names ordered by value.
func (e *Enumeration) Names() []string {
	return slices.Clone(e.names)
}

// Name returns the name of v, which must be of the enum type.
func (e *Enumeration) Name(v reflect.Value) (string, bool) {
	if v.Type() != e.Type {
		return "", false
	}
	name, ok := e.byValue[v.Interface()]
	return name, ok
}

// Value returns the value named name. Matching is case-sensitive.
func (e *Enumeration) Value(name string) (reflect.Value, bool) {
	v, ok := e.byName[name]
	return v, ok
}

// Has reports whether v is a declared value.
func (e *Enumeration) Has(v reflect.Value) bool {
	_, ok := e.Name(v)
	return ok
}

func (e *Enumeration) String() string {
	return fmt.Sprintf("enum %s %v", e.Type, e.names)
}
