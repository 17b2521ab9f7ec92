package gomap

import (
	"reflect"
	"testing"
	"time"

	"github.com/gering/Tiny-JSON/encode"
	"github.com/gering/Tiny-JSON/log"
	"github.com/gering/Tiny-JSON/parse"
	"github.com/gering/Tiny-JSON/typedesc"
)

type Kind int

const (
	Unknown Kind = iota
	Reptile
	Bird
	Mammal
)

func init() {
	typedesc.RegisterEnum[Kind]("Unknown", "Reptile", "Bird", "Mammal")
}

type Animal struct {
	Legs int  `tiny:"field=legs"`
	Kind Kind `tiny:"field=kind"`
}

type Bear struct {
	Weight float32 `tiny:"field=weight"`
	ID     string  `tiny:"omit"`
	Name   string  `tiny:"field=name"`
	Hungry bool    `tiny:"field=hungry"`
	Animal
}

func NewBear(weight float32) *Bear {
	return &Bear{Weight: weight, Name: "Baloo", Animal: Animal{Kind: Mammal}}
}

type Mission struct {
	Target string    `tiny:"field=target"`
	Start  time.Time `tiny:"field=start"`
}

type Transporter[T any] struct {
	Mission  Mission  `tiny:"field=mission"`
	Cargo    []T      `tiny:"field=cargo"`
	MaxCargo *int     `tiny:"field=maxCargo"`
	Driver   []string `tiny:"field=driver"`
}

type Vector2 struct {
	_    struct{} `tiny:"snakecase"`
	X, Y float32
}

type Vector3 struct {
	_       struct{} `tiny:"snakecase"`
	X, Y, Z float32
}

type Quaternion struct {
	_          struct{} `tiny:"snakecase"`
	X, Y, Z, W float32
}

// testMapper returns a mapper with its own registry and a recording
// logger.
func testMapper() (*Mapper, *log.Recorder) {
	rec := &log.Recorder{}
	return NewMapper(WithLogger(rec)), rec
}

func encodeString(t *testing.T, m *Mapper, v any) string {
	t.Helper()
	b := encode.NewBuilder()
	_ = m.Encode(v, b)
	return b.Text()
}

func decodeString[T any](t *testing.T, m *Mapper, text string) (T, error) {
	t.Helper()
	var zero T
	node, err := parse.Parse([]byte(text))
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	v, err := m.Decode(node, reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	res, _ := v.Interface().(T)
	return res, nil
}

func mustDecode[T any](t *testing.T, m *Mapper, text string) T {
	t.Helper()
	res, err := decodeString[T](t, m, text)
	if err != nil {
		t.Fatalf("decode %q: %v", text, err)
	}
	return res
}
