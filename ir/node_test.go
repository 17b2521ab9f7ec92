package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromNumber(t *testing.T) {
	tests := []struct {
		lit     string
		isInt   bool
		i       int64
		f       float64
		wantErr bool
	}{
		{lit: "0", isInt: true, i: 0},
		{lit: "-12", isInt: true, i: -12},
		{lit: "2.2", f: 2.2},
		{lit: "1e3", f: 1000},
		{lit: "-0", isInt: true, i: 0},
		{lit: "18446744073709551616", f: 18446744073709551616},
		{lit: "x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			n, err := FromNumber(tt.lit)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.lit)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if n.Number != tt.lit {
				t.Errorf("Number = %q, want %q", n.Number, tt.lit)
			}
			if tt.isInt {
				if n.Int64 == nil || *n.Int64 != tt.i {
					t.Errorf("Int64 = %v, want %d", n.Int64, tt.i)
				}
				return
			}
			if n.Float64 == nil || *n.Float64 != tt.f {
				t.Errorf("Float64 = %v, want %g", n.Float64, tt.f)
			}
		})
	}
}

func TestKeyValsOrder(t *testing.T) {
	obj := FromKeyVals([]KeyVal{
		{Key: "b", Val: FromInt(1)},
		{Key: "a", Val: FromBool(true)},
		{Key: "c"},
	})
	var keys []string
	for _, f := range obj.Fields {
		keys = append(keys, f.String)
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, keys); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if obj.Values[2].Type != NullType {
		t.Errorf("missing value should be null, got %s", obj.Values[2].Type)
	}
	if Get(obj, "A") != nil {
		t.Error("Get should be case sensitive")
	}
	if got := Lookup(obj, "A"); got == nil || !got.Bool {
		t.Error("Lookup should match case-insensitively")
	}
}

func TestPath(t *testing.T) {
	legs := FromInt(2)
	doc := FromKeyVals([]KeyVal{
		{Key: "cargo", Val: FromSlice([]*Node{
			Null(),
			FromKeyVals([]KeyVal{{Key: "legs", Val: legs}}),
		})},
	})
	if got := legs.Path(); got != "cargo[1].legs" {
		t.Errorf("Path() = %q", got)
	}
	if legs.Root() != doc {
		t.Error("Root() should return the document")
	}
}

func TestClone(t *testing.T) {
	orig := FromKeyVals([]KeyVal{{Key: "a", Val: FromSlice([]*Node{FromInt(1), FromString("x")})}})
	c := orig.Clone()
	*c.Values[0].Values[0].Int64 = 5
	if *orig.Values[0].Values[0].Int64 != 1 {
		t.Error("clone shares number storage with original")
	}
	if c.Values[0].Parent != c {
		t.Error("clone parent not rewired")
	}
}

func TestTypeText(t *testing.T) {
	for _, typ := range Types() {
		d, err := typ.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Type
		if err := back.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if back != typ {
			t.Errorf("%s round-tripped to %s", typ, back)
		}
	}
	var bad Type
	if err := bad.UnmarshalText([]byte("Tuple")); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestEqual(t *testing.T) {
	num := func(lit string) *Node {
		n, err := FromNumber(lit)
		if err != nil {
			t.Fatal(err)
		}
		return n
	}
	obj := func(kvs ...KeyVal) *Node { return FromKeyVals(kvs) }
	tests := []struct {
		name string
		a, b *Node
		want bool
	}{
		{"nulls in arrays", FromSlice([]*Node{FromInt(1), Null()}), FromSlice([]*Node{FromInt(1), Null()}), true},
		{"int and float", num("1"), num("1.0"), true},
		{"exponent", num("2.5"), num("25e-1"), true},
		{"different numbers", num("1"), num("2"), false},
		{"field order", obj(KeyVal{"a", FromInt(1)}, KeyVal{"b", Null()}), obj(KeyVal{"b", Null()}, KeyVal{"a", FromInt(1)}), true},
		{"missing field", obj(KeyVal{"a", FromInt(1)}), obj(KeyVal{"b", FromInt(1)}), false},
		{"null versus false", Null(), FromBool(false), false},
		{"array length", FromSlice([]*Node{Null()}), FromSlice(nil), false},
		{"strings", FromString("x"), FromString("x"), true},
		{"nil", nil, Null(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
			if got := Equal(tt.b, tt.a); got != tt.want {
				t.Errorf("Equal reversed = %v, want %v", got, tt.want)
			}
		})
	}
}
