package typedesc

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/gering/Tiny-JSON/ir"
	"github.com/google/go-cmp/cmp"
)

type animal struct {
	Legs int
	Kind int
	tag  string
}

type Bear struct {
	Weight float64 `tiny:"field=weight"`
	ID     string  `tiny:"omit"`
	Name   string
	Hungry bool
	animal
}

type snaky struct {
	_         struct{} `tiny:"snakecase"`
	FirstName string
	LastName  string `tiny:"field=surname"`
	HTTPPort  int
}

type Inner struct {
	Name  string
	Depth int
}

type outer struct {
	Name string
	*Inner
	Stamp time.Time
}

type clash struct {
	Name  string
	Other string `tiny:"field=name"`
}

func wireNames(t *Type) []string {
	var res []string
	for _, m := range t.Members {
		if m.Excluded {
			res = append(res, "-"+m.Name)
			continue
		}
		res = append(res, m.WireName)
	}
	return res
}

func TestMembersOrder(t *testing.T) {
	d := For[Bear]()
	if d.Kind != Struct {
		t.Fatalf("kind %s", d.Kind)
	}
	if d.Err != nil {
		t.Fatal(d.Err)
	}
	want := []string{"weight", "-ID", "Name", "Hungry", "Legs", "Kind"}
	if diff := cmp.Diff(want, wireNames(d)); diff != "" {
		t.Errorf("members (-want +got):\n%s", diff)
	}
	legs := d.Member("legs")
	if legs == nil {
		t.Fatal("no member legs")
	}
	if diff := cmp.Diff([]int{4, 0}, legs.Index); diff != "" {
		t.Errorf("index (-want +got):\n%s", diff)
	}
	if d.Member("id") != nil {
		t.Error("excluded member matched")
	}
	if d.Member("WEIGHT") == nil {
		t.Error("match should ignore case")
	}
}

func TestMemberSkipsExcluded(t *testing.T) {
	d := &Type{Kind: Struct, Members: []Member{
		{Name: "Old", WireName: "speed", Excluded: true},
		{Name: "Speed", WireName: "Speed"},
		{Name: "Other", WireName: "SPEED"},
	}}
	if m := d.Member("speed"); m == nil || m.Name != "Speed" {
		t.Errorf("got %v want Speed", m)
	}
	if m := d.Member("velocity"); m != nil {
		t.Errorf("unexpected match %v", m)
	}
}

func TestSnakeCase(t *testing.T) {
	d := For[snaky]()
	if !d.SnakeCase {
		t.Fatal("expected snake case opt-in")
	}
	want := []string{"first_name", "surname", "http_port"}
	if diff := cmp.Diff(want, wireNames(d)); diff != "" {
		t.Errorf("members (-want +got):\n%s", diff)
	}
}

func TestShadowing(t *testing.T) {
	d := For[outer]()
	want := []string{"Name", "Stamp", "Depth"}
	if diff := cmp.Diff(want, wireNames(d)); diff != "" {
		t.Errorf("members (-want +got):\n%s", diff)
	}
	if k := Of(d.Members[1].Type).Kind; k != Time {
		t.Errorf("Stamp kind %s", k)
	}
}

func TestDuplicateWireName(t *testing.T) {
	d := For[clash]()
	if !errors.Is(d.Err, ErrDescriptor) {
		t.Errorf("expected descriptor error, got %v", d.Err)
	}
}

func TestKinds(t *testing.T) {
	var iface interface{ M() }
	tests := []struct {
		v        any
		kind     Kind
		nullable bool
		numeric  bool
	}{
		{true, Bool, false, false},
		{int8(1), Int, false, true},
		{uint(1), Uint, false, true},
		{float32(1), Float, false, true},
		{"s", String, false, false},
		{time.Time{}, Time, false, false},
		{&ir.Node{}, Node, true, false},
		{[]int{}, Slice, true, false},
		{[2]int{}, Array, false, false},
		{map[string]int{}, Map, true, false},
		{map[string]struct{}{}, Set, true, false},
		{new(int), Pointer, true, false},
		{&iface, Pointer, true, false},
		{make(chan int), Unsupported, false, false},
		{complex(1, 2), Unsupported, false, false},
	}
	for _, tc := range tests {
		d := Of(reflect.TypeOf(tc.v))
		if d.Kind != tc.kind || d.Nullable != tc.nullable || d.Numeric != tc.numeric {
			t.Errorf("%T: got %s nullable=%v numeric=%v", tc.v, d.Kind, d.Nullable, d.Numeric)
		}
	}
	if k := Of(reflect.TypeOf(&iface).Elem()).Kind; k != Interface {
		t.Errorf("interface kind %s", k)
	}
	if d := For[map[int][]string](); d.Key().Kind != Int || d.Elem().Kind != Slice {
		t.Errorf("map key/elem %s %s", d.Key(), d.Elem())
	}
	if d := For[map[string]struct{}](); d.Elem().Kind != String {
		t.Errorf("set elem %s", d.Elem())
	}
}

func TestParseStructTag(t *testing.T) {
	tests := []struct {
		tag  string
		want map[string]string
		err  bool
	}{
		{"", map[string]string{}, false},
		{"-", map[string]string{"omit": ""}, false},
		{"field=legs", map[string]string{"field": "legs"}, false},
		{"field='two words',omit", map[string]string{"field": "two words", "omit": ""}, false},
		{"snakecase field=x", map[string]string{"snakecase": "", "field": "x"}, false},
		{"field='x", nil, true},
		{"=x", nil, true},
	}
	for _, tc := range tests {
		got, err := ParseStructTag(tc.tag)
		if tc.err {
			if err == nil {
				t.Errorf("%q: expected error", tc.tag)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", tc.tag, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%q (-want +got):\n%s", tc.tag, diff)
		}
	}
}
