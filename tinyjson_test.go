package tinyjson

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gering/Tiny-JSON/gomap"
	"github.com/gering/Tiny-JSON/ir"
	"github.com/gering/Tiny-JSON/log"
	"github.com/gering/Tiny-JSON/parse"
	"github.com/gering/Tiny-JSON/typedesc"
	"github.com/google/go-cmp/cmp"
)

type Species int

const (
	Unknown Species = iota
	Reptile
	Bird
	Mammal
)

func init() {
	typedesc.RegisterEnum[Species]("Unknown", "Reptile", "Bird", "Mammal")
}

type Animal struct {
	Legs    int     `tiny:"field=legs"`
	Species Species `tiny:"field=species"`
}

type Zoo struct {
	Name    string
	Opened  time.Time
	Animals []Animal
	Keepers map[string]int
	Closed  *bool
}

func newMapper() (*gomap.Mapper, *log.Recorder) {
	rec := &log.Recorder{}
	return gomap.NewMapper(gomap.WithLogger(rec)), rec
}

func TestEncode(t *testing.T) {
	m, rec := newMapper()
	zoo := Zoo{
		Name:    "Hellabrunn",
		Opened:  time.Date(1911, 8, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600)),
		Animals: []Animal{{Legs: 4, Species: Mammal}, {Legs: 2, Species: Bird}},
		Keepers: map[string]int{"b": 2, "a": 1},
	}
	got := Encode(zoo, WithMapper(m))
	want := `{"Name":"Hellabrunn","Opened":"1911-08-01T09:00:00.000Z",` +
		`"Animals":[{"legs":4,"species":3},{"legs":2,"species":2}],` +
		`"Keepers":{"a":1,"b":2},"Closed":null}`
	if got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	if len(rec.Entries) != 0 {
		t.Errorf("unexpected diagnostics %v", rec.Entries)
	}
}

func TestEncodePretty(t *testing.T) {
	m, _ := newMapper()
	got := Encode(Animal{Legs: 4}, WithMapper(m), Pretty())
	want := "{\n  \"legs\" : 4,\n  \"species\" : 0\n}\n"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestEncodeEscaping(t *testing.T) {
	if got, want := Encode("€ ö Ü é"), `"\u20ac \u00f6 \u00dc \u00e9"`; got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestEncodeTo(t *testing.T) {
	m, _ := newMapper()
	buf := &bytes.Buffer{}
	if err := EncodeTo(buf, []int{1, 2}, WithMapper(m)); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "[1,2]" {
		t.Errorf("got %q", buf.String())
	}
}

func TestDecode(t *testing.T) {
	m, _ := newMapper()
	text := `{"name":"Hellabrunn","opened":"1911-08-01T09:00:00.000Z",
	  "animals":[{"legs":4,"species":"Mammal"},{"legs":null,"species":2}],
	  "keepers":{"a":1,"b":null},"closed":true,"unknown":[1,2]}`
	got := Decode[Zoo](text, WithMapper(m))
	closed := true
	want := Zoo{
		Name:    "Hellabrunn",
		Opened:  time.Date(1911, 8, 1, 9, 0, 0, 0, time.UTC),
		Animals: []Animal{{Legs: 4, Species: Mammal}, {Species: Bird}},
		Keepers: map[string]int{"a": 1},
		Closed:  &closed,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDecodeParseOptions(t *testing.T) {
	rec := &log.Recorder{}
	m := gomap.NewMapper(gomap.WithLogger(rec), gomap.WithParseOptions(parse.ParseComments(true)))
	text := `{
		// quadruped
		"legs": 4, /* mammal */ "species": 3,
	}`
	if got := Decode[Animal](text, WithMapper(m)); got != (Animal{Legs: 4, Species: Mammal}) {
		t.Errorf("got %+v", got)
	}
	if msgs := rec.Messages("warn"); len(msgs) != 0 {
		t.Errorf("unexpected warnings %v", msgs)
	}
	var a Animal
	if err := Unmarshal([]byte(text), &a, WithMapper(m)); err != nil || a.Legs != 4 {
		t.Errorf("unmarshal %+v: %v", a, err)
	}

	strict, rec := newMapper()
	if got := Decode[Animal](text, WithMapper(strict)); got != (Animal{}) {
		t.Errorf("comments accepted without option: %+v", got)
	}
	if len(rec.Messages("warn")) != 1 {
		t.Errorf("want one warning, got %v", rec.Messages(""))
	}
}

func TestDecodeDefaults(t *testing.T) {
	m, rec := newMapper()
	for _, text := range []string{"", "   \n\t", `"Test`, `Test"`} {
		if got := Decode[*Animal](text, WithMapper(m)); got != nil {
			t.Errorf("%q: got %v", text, got)
		}
		if got := Decode[Animal](text, WithMapper(m)); got != (Animal{}) {
			t.Errorf("%q: got %v", text, got)
		}
	}
	if got := Decode[int](`[1]`, WithMapper(m)); got != 0 {
		t.Errorf("got %d", got)
	}
	if len(rec.Messages("warn")) == 0 {
		t.Errorf("expected malformed input to be reported")
	}
}

func TestDecodeContainers(t *testing.T) {
	m, _ := newMapper()
	text := `[true, false, null, true]`
	list := Decode[[]bool](text, WithMapper(m))
	if diff := cmp.Diff([]bool{true, false, false, true}, list); diff != "" {
		t.Errorf("list (-want +got):\n%s", diff)
	}
	set := Decode[map[bool]struct{}](text, WithMapper(m))
	if diff := cmp.Diff(map[bool]struct{}{true: {}, false: {}}, set); diff != "" {
		t.Errorf("set (-want +got):\n%s", diff)
	}
	dict := Decode[map[int]bool](`{"1":true,"2":null,"3":false}`, WithMapper(m))
	if diff := cmp.Diff(map[int]bool{1: true, 3: false}, dict); diff != "" {
		t.Errorf("dict (-want +got):\n%s", diff)
	}
}

func TestUnmarshal(t *testing.T) {
	m, _ := newMapper()
	a := Animal{Legs: 9}
	if err := Unmarshal([]byte(`{"LEGS":null}`), &a, WithMapper(m)); err != nil {
		t.Fatal(err)
	}
	if a.Legs != 0 {
		t.Errorf("legs %d", a.Legs)
	}
	err := Unmarshal([]byte(`{"legs":`), &a, WithMapper(m))
	var uerr *gomap.UnmarshalError
	if !errors.As(err, &uerr) {
		t.Errorf("expected unmarshal error, got %v", err)
	}
	if err := Unmarshal([]byte(`1`), a, WithMapper(m)); err == nil {
		t.Errorf("expected error for non-pointer destination")
	}
}

type Celsius float64

func TestRegister(t *testing.T) {
	RegisterEncoder(func(s *gomap.EncState, c Celsius) error {
		s.String(strconv.FormatFloat(float64(c), 'f', -1, 64) + "C")
		return nil
	})
	RegisterDecoder(func(s *gomap.DecState, node *ir.Node) (Celsius, error) {
		if node.Type != ir.StringType {
			return 0, errors.New("want string")
		}
		f, err := strconv.ParseFloat(strings.TrimSuffix(node.String, "C"), 64)
		return Celsius(f), err
	})
	got := Encode([]Celsius{21.5})
	if want := `["21.5C"]`; got != want {
		t.Fatalf("got %s want %s", got, want)
	}
	back := Decode[[]Celsius](got)
	if diff := cmp.Diff([]Celsius{21.5}, back); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestRoundTrip(t *testing.T) {
	m, _ := newMapper()
	type Pair struct {
		Key   string
		Value float32
		Tags  []string
		Ratio *float64
	}
	r := 0.25
	in := []Pair{{Key: "a", Value: 1.5, Tags: []string{"x"}, Ratio: &r}, {Key: "b\n\"c\""}}
	out := Decode[[]Pair](Encode(in, WithMapper(m)), WithMapper(m))
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
