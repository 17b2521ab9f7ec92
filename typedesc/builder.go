package typedesc

import (
	"fmt"
	"reflect"
)

// Builder assembles an explicit struct descriptor. Members are emitted in
// the order they are added.
//
//	t, err := typedesc.StructFor[Bear]().
//		Rename("Weight", "weight").
//		Omit("ID").
//		Member("Name").
//		Build()
type Builder struct {
	t       reflect.Type
	snake   bool
	members []Member
	err     error
}

func StructFor[T any]() *Builder {
	return StructOf(reflect.TypeFor[T]())
}

func StructOf(t reflect.Type) *Builder {
	b := &Builder{t: t}
	if t.Kind() != reflect.Struct {
		b.err = fmt.Errorf("%w: %s is not a struct", ErrDescriptor, t)
	}
	return b
}

func (b *Builder) SnakeCase() *Builder {
	b.snake = true
	return b
}

// Member adds the field named name with its default wire name.
func (b *Builder) Member(name string) *Builder {
	return b.add(name, "", false, false)
}

// Rename adds the field named name with wire name wire.
func (b *Builder) Rename(name, wire string) *Builder {
	return b.add(name, wire, true, false)
}

// Omit adds the field named name as excluded.
func (b *Builder) Omit(name string) *Builder {
	return b.add(name, "", false, true)
}

func (b *Builder) add(name, override string, hasOverride, omit bool) *Builder {
	if b.err != nil {
		return b
	}
	f, ok := b.t.FieldByName(name)
	if !ok {
		b.err = fmt.Errorf("%w: %s has no field %s", ErrDescriptor, b.t, name)
		return b
	}
	if !f.IsExported() {
		b.err = fmt.Errorf("%w: %s.%s is not exported", ErrDescriptor, b.t, name)
		return b
	}
	if hasOverride && override == "" {
		b.err = fmt.Errorf("%w: %s.%s: empty wire name", ErrDescriptor, b.t, name)
		return b
	}
	b.members = append(b.members, Member{
		Name:        name,
		Override:    override,
		HasOverride: hasOverride,
		Index:       f.Index,
		Type:        f.Type,
		Excluded:    omit,
	})
	return b
}

func (b *Builder) Build() (*Type, error) {
	if b.err != nil {
		return nil, b.err
	}
	res := &Type{
		Go:        b.t,
		Kind:      Struct,
		SnakeCase: b.snake,
		Members:   make([]Member, len(b.members)),
		Explicit:  true,
	}
	for i, m := range b.members {
		m.WireName = wireName(m, b.snake)
		res.Members[i] = m
	}
	if err := checkWireNames(res); err != nil {
		return nil, err
	}
	return res, nil
}
