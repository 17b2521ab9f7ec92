package gomap

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/gering/Tiny-JSON/encode"
	"github.com/gering/Tiny-JSON/ir"
	"github.com/gering/Tiny-JSON/parse"
)

type Shape interface {
	Area() float64
}

type Square struct{ Side float64 }

func (s Square) Area() float64 { return s.Side * s.Side }

type Circle struct{ R float64 }

func (c Circle) Area() float64 { return math.Pi * c.R * c.R }

func TestRegistrySources(t *testing.T) {
	r := NewRegistry()
	RegisterEncoder(r, func(s *EncState, v Mission) error {
		s.String(v.Target)
		return nil
	})
	tests := []struct {
		t    reflect.Type
		want Source
	}{
		{reflect.TypeFor[Mission](), SourceExact},
		{reflect.TypeFor[struct{ Mission }](), SourceAssignable},
		{reflect.TypeFor[*Animal](), SourceBuiltin},
		{reflect.TypeFor[map[string]int](), SourceBuiltin},
		{reflect.TypeFor[int](), SourceScalar},
		{reflect.TypeFor[Kind](), SourceScalar},
		{reflect.TypeFor[Animal](), SourceCatchAll},
		{reflect.TypeFor[chan int](), SourceCatchAll},
	}
	for _, tc := range tests {
		if _, got := r.Encoder(tc.t); got != tc.want {
			t.Errorf("%s: got %s want %s", tc.t, got, tc.want)
		}
	}
	if _, got := r.Decoder(reflect.TypeFor[Mission]()); got != SourceCatchAll {
		t.Errorf("decoder for Mission from %s", got)
	}
	enc, dec := r.Keys()
	if len(enc) != 1 || len(dec) != 0 {
		t.Errorf("keys %v %v", enc, dec)
	}
}

func TestEncoderOverride(t *testing.T) {
	m, _ := testMapper()
	r := m.Registry()

	RegisterEncoder(r, func(s *EncState, a Animal) error {
		s.String(fmt.Sprintf("animal with %d legs", a.Legs))
		return nil
	})
	bear := NewBear(3)
	bear.Legs = 4

	if got, want := encodeString(t, m, Animal{Legs: 2}), `"animal with 2 legs"`; got != want {
		t.Errorf("exact: got %s want %s", got, want)
	}
	if got, want := encodeString(t, m, bear), `"animal with 4 legs"`; got != want {
		t.Errorf("embedding: got %s want %s", got, want)
	}

	RegisterEncoder(r, func(s *EncState, b Bear) error {
		s.String("bear " + b.Name)
		return nil
	})
	if got, want := encodeString(t, m, bear), `"bear Baloo"`; got != want {
		t.Errorf("more specific: got %s want %s", got, want)
	}

	RegisterEncoder(r, func(s *EncState, sh Shape) error {
		s.BeginObject()
		if err := s.Field("area", sh.Area()); err != nil {
			return err
		}
		s.EndObject()
		return nil
	})
	if got, want := encodeString(t, m, []Shape{Square{2}, nil}), `[{"area":4},null]`; got != want {
		t.Errorf("interface: got %s want %s", got, want)
	}
	if got, want := encodeString(t, m, Square{3}), `{"area":9}`; got != want {
		t.Errorf("implementation: got %s want %s", got, want)
	}
}

func TestEncoderRollback(t *testing.T) {
	m, rec := testMapper()
	errHalf := errors.New("half way")
	RegisterEncoder(m.Registry(), func(s *EncState, v Mission) error {
		s.BeginObject()
		s.Name("target")
		s.String(v.Target)
		return errHalf
	})
	RegisterEncoder(m.Registry(), func(s *EncState, v Vector2) error {
		return nil
	})
	b := encode.NewBuilder()
	err := m.Encode([]any{Mission{Target: "x"}, Vector2{}, 1}, b)
	if got, want := b.Text(), `[null,null,1]`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	if !errors.Is(err, errHalf) {
		t.Errorf("expected codec error, got %v", err)
	}
	if n := len(rec.Messages("warn")); n != 2 {
		t.Errorf("got %d warnings", n)
	}
}

func TestCatchAllReplacement(t *testing.T) {
	m, _ := testMapper()
	RegisterEncoder(m.Registry(), func(s *EncState, v any) error {
		s.String(reflect.TypeOf(v).Name())
		return nil
	})
	RegisterDecoder(m.Registry(), func(s *DecState, node *ir.Node) (any, error) {
		return Animal{Legs: node.Len()}, nil
	})
	if got, want := encodeString(t, m, []any{Animal{}, 7, "s"}), `["Animal",7,"s"]`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
	a := mustDecode[Animal](t, m, `{"a":1,"b":2}`)
	if a.Legs != 2 {
		t.Errorf("catch-all decoder not used: %+v", a)
	}
	if _, err := decodeString[Bear](t, m, `{}`); !errors.Is(err, ErrNotAssignable) {
		t.Errorf("expected ErrNotAssignable, got %v", err)
	}
}

func TestDecoderOverride(t *testing.T) {
	m, rec := testMapper()
	RegisterDecoder(m.Registry(), func(s *DecState, node *ir.Node) (Shape, error) {
		var side float64
		if err := s.Field(node, "side", &side); err != nil {
			return nil, err
		}
		if side < 0 {
			return Circle{R: -side}, nil
		}
		return Square{Side: side}, nil
	})
	type Drawing struct {
		Main  Shape
		Tile  Square
		Other []Shape
	}
	d := mustDecode[Drawing](t, m, `{"main":{"side":2},"tile":{"side":3},"other":[{"side":1},{"side":-1},null]}`)
	if d.Main != (Square{2}) || d.Tile != (Square{3}) {
		t.Errorf("got %+v", d)
	}
	if len(d.Other) != 3 || d.Other[0] != (Square{1}) || d.Other[1] != (Circle{1}) || d.Other[2] != nil {
		t.Errorf("other %+v", d.Other)
	}

	tile := mustDecode[Drawing](t, m, `{"tile":{"side":-4}}`).Tile
	if tile != (Square{}) {
		t.Errorf("circle assigned to square: %+v", tile)
	}
	if len(rec.Messages("warn")) != 1 {
		t.Errorf("expected one warning, got %v", rec.Messages(""))
	}
	if msg := fmt.Sprint(rec.Entries[0].Fields["error"]); !strings.Contains(msg, "type error") {
		t.Errorf("expected type error, got %s", msg)
	}
}

func TestConcurrentUse(t *testing.T) {
	m, _ := testMapper()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := map[string]Animal{"a": {Legs: i}}
			text := m.EncodeString(in, i%2 == 0)
			node, err := parse.Parse([]byte(text))
			if err != nil {
				t.Error(err)
				return
			}
			out, err := m.Decode(node, reflect.TypeOf(in))
			if err != nil {
				t.Error(err)
				return
			}
			if got := out.Interface().(map[string]Animal)["a"].Legs; got != i {
				t.Errorf("goroutine %d got %d", i, got)
			}
		}(i)
	}
	wg.Wait()
}
