package typedesc

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gering/Tiny-JSON/ir"
	"github.com/gering/Tiny-JSON/naming"
)

var ErrDescriptor = errors.New("type descriptor error")

var (
	timeType = reflect.TypeOf(time.Time{})
	nodeType = reflect.TypeOf((*ir.Node)(nil))
)

// Type is the read-only descriptor of a Go type.
type Type struct {
	Go        reflect.Type
	Kind      Kind
	Nullable  bool
	Numeric   bool
	Float     bool
	Enum      *Enumeration
	SnakeCase bool
	Members   []Member
	Explicit  bool

	// Err records problems found while deriving the descriptor, such as a
	// malformed tag. The descriptor is still usable; the offending tag is
	// ignored.
	Err error

	wireOnce sync.Once
	wires    []string // wire names of non-excluded members
	live     []int    // index into Members for each entry of wires
}

// Member describes one struct field as seen on the wire.
type Member struct {
	Name        string
	WireName    string
	Override    string
	HasOverride bool
	Index       []int
	Type        reflect.Type
	Excluded    bool
}

func (m *Member) String() string {
	if m.Excluded {
		return m.Name + " (excluded)"
	}
	return m.Name + " -> " + m.WireName
}

var (
	derived  sync.Map // reflect.Type -> *Type
	explicit sync.Map // reflect.Type -> *Type
)

// Of returns the descriptor for t. Registered descriptors take precedence,
// otherwise one is derived and cached.
func Of(t reflect.Type) *Type {
	if v, ok := explicit.Load(t); ok {
		return v.(*Type)
	}
	if v, ok := derived.Load(t); ok {
		return v.(*Type)
	}
	v, _ := derived.LoadOrStore(t, derive(t))
	return v.(*Type)
}

// For is Of for the static type T.
func For[T any]() *Type {
	return Of(reflect.TypeFor[T]())
}

// Register installs an explicit descriptor, replacing any derived one.
func Register(t *Type) error {
	if t == nil || t.Go == nil {
		return fmt.Errorf("%w: nil type", ErrDescriptor)
	}
	if t.Go.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s is not a struct", ErrDescriptor, t.Go)
	}
	if err := checkWireNames(t); err != nil {
		return err
	}
	t.Explicit = true
	explicit.Store(t.Go, t)
	derived.Delete(t.Go)
	return nil
}

// MustRegister is Register which panics on error, for use from init
// functions of generated code.
func MustRegister(t *Type, err error) {
	if err != nil {
		panic(err)
	}
	if err := Register(t); err != nil {
		panic(err)
	}
}

// Member returns the first non-excluded member whose wire name matches
// wire ignoring case.
func (t *Type) Member(wire string) *Member {
	t.wireOnce.Do(func() {
		for i, m := range t.Members {
			if !m.Excluded {
				t.wires = append(t.wires, m.WireName)
				t.live = append(t.live, i)
			}
		}
	})
	i := naming.Match(wire, t.wires)
	if i < 0 {
		return nil
	}
	return &t.Members[t.live[i]]
}

// Elem returns the descriptor of the element type for pointers, slices,
// arrays, maps and sets (for sets, the key type).
func (t *Type) Elem() *Type {
	switch t.Kind {
	case Pointer, Slice, Array, Map:
		return Of(t.Go.Elem())
	case Set:
		return Of(t.Go.Key())
	}
	return nil
}

// Key returns the descriptor of the key type of maps and sets.
func (t *Type) Key() *Type {
	switch t.Kind {
	case Map, Set:
		return Of(t.Go.Key())
	}
	return nil
}

func (t *Type) String() string {
	return t.Kind.String() + "(" + t.Go.String() + ")"
}

func kindOf(t reflect.Type) Kind {
	switch t {
	case timeType:
		return Time
	case nodeType:
		return Node
	}
	if enumOf(t) != nil {
		return Enum
	}
	switch t.Kind() {
	case reflect.Bool:
		return Bool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint
	case reflect.Float32, reflect.Float64:
		return Float
	case reflect.String:
		return String
	case reflect.Struct:
		return Struct
	case reflect.Slice:
		return Slice
	case reflect.Array:
		return Array
	case reflect.Map:
		if isSetElem(t.Elem()) {
			return Set
		}
		return Map
	case reflect.Pointer:
		return Pointer
	case reflect.Interface:
		return Interface
	}
	return Unsupported
}

func isSetElem(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.NumField() == 0
}

func derive(t reflect.Type) *Type {
	res := &Type{Go: t, Kind: kindOf(t)}
	switch res.Kind {
	case Pointer, Interface, Slice, Map, Set, Node:
		res.Nullable = true
	case Int, Uint:
		res.Numeric = true
	case Float:
		res.Numeric = true
		res.Float = true
	case Enum:
		res.Enum = enumOf(t)
	case Struct:
		res.SnakeCase, res.Err = snakeCaseOptIn(t)
		ms, err := members(t, res.SnakeCase)
		res.Members = ms
		if res.Err == nil {
			res.Err = err
		}
		if err := checkWireNames(res); err != nil && res.Err == nil {
			res.Err = err
		}
	}
	return res
}

func snakeCaseOptIn(t reflect.Type) (bool, error) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Name != "_" {
			continue
		}
		tag, ok := f.Tag.Lookup(TagKey)
		if !ok {
			continue
		}
		ft, err := parseFieldTag(tag)
		if err != nil {
			return false, fmt.Errorf("%w: %s: %w", ErrDescriptor, t, err)
		}
		if ft.snakeCase {
			return true, nil
		}
	}
	return false, nil
}

type candidate struct {
	Member
	depth int
}

// members walks t own fields first, then embedded structs in declaration
// order. The shallowest field of a given Go name wins.
func members(t reflect.Type, snake bool) ([]Member, error) {
	var (
		cands []candidate
		first error
	)
	var walk func(t reflect.Type, index []int, depth int, visiting map[reflect.Type]bool)
	walk = func(t reflect.Type, index []int, depth int, visiting map[reflect.Type]bool) {
		if visiting[t] {
			return
		}
		visiting[t] = true
		defer delete(visiting, t)

		var embedded []reflect.StructField
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.Name == "_" {
				continue
			}
			tag, err := parseFieldTag(f.Tag.Get(TagKey))
			if err != nil {
				if first == nil {
					first = fmt.Errorf("%w: %s.%s: %w", ErrDescriptor, t, f.Name, err)
				}
				tag = fieldTag{}
			}
			if f.Anonymous && !tag.hasOverride {
				if et, ok := embeddedStruct(f); ok {
					f.Index = append(append([]int{}, index...), i)
					f.Type = et
					embedded = append(embedded, f)
					continue
				}
			}
			if !f.IsExported() {
				continue
			}
			m := Member{
				Name:        f.Name,
				Override:    tag.override,
				HasOverride: tag.hasOverride,
				Index:       append(append([]int{}, index...), i),
				Type:        f.Type,
				Excluded:    tag.omit,
			}
			cands = append(cands, candidate{Member: m, depth: depth})
		}
		for _, f := range embedded {
			walk(f.Type, f.Index, depth+1, visiting)
		}
	}
	walk(t, nil, 0, map[reflect.Type]bool{})

	shallowest := map[string]int{}
	for _, c := range cands {
		if d, ok := shallowest[c.Name]; !ok || c.depth < d {
			shallowest[c.Name] = c.depth
		}
	}
	seen := map[string]bool{}
	res := make([]Member, 0, len(cands))
	for _, c := range cands {
		if c.depth != shallowest[c.Name] || seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		m := c.Member
		m.WireName = wireName(m, snake)
		res = append(res, m)
	}
	return res, first
}

// embeddedStruct returns the struct type promoted by an embedded field.
// Pointers to unexported struct types are skipped since they cannot be
// allocated through reflection.
func embeddedStruct(f reflect.StructField) (reflect.Type, bool) {
	t := f.Type
	if t.Kind() == reflect.Pointer {
		if !f.IsExported() {
			return nil, false
		}
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t == timeType {
		return nil, false
	}
	return t, true
}

func wireName(m Member, snake bool) string {
	return naming.WireName(naming.Member{
		Name:        m.Name,
		Override:    m.Override,
		HasOverride: m.HasOverride,
	}, snake)
}

func checkWireNames(t *Type) error {
	seen := map[string]string{}
	for i := range t.Members {
		m := &t.Members[i]
		if m.Excluded {
			continue
		}
		key := strings.ToLower(m.WireName)
		if other, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s: members %s and %s share wire name %q",
				ErrDescriptor, t.Go, other, m.Name, m.WireName)
		}
		seen[key] = m.Name
	}
	return nil
}
