package encode

import (
	"bytes"
	"testing"

	"github.com/gering/Tiny-JSON/ir"
	"github.com/gering/Tiny-JSON/parse"
)

func TestEncodeRoundTrip(t *testing.T) {
	for _, in := range []string{
		`null`,
		`{"a":1,"b":null,"c":0.3}`,
		`[[0,1],[true,false],["a","b","c"]]`,
		`{"a":{},"b":[],"c":"\u20ac"}`,
		`{"z":1,"a":2,"z":3}`,
		`-1.5e-9`,
	} {
		t.Run(in, func(t *testing.T) {
			node, err := parse.Parse([]byte(in))
			if err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			if err := Encode(node, &buf); err != nil {
				t.Fatal(err)
			}
			if buf.String() != in {
				t.Errorf("got %s, want %s", buf.String(), in)
			}
		})
	}
}

func TestEncodeProgrammatic(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "i", Val: ir.FromInt(-3)},
		{Key: "u", Val: ir.FromUint(18446744073709551615)},
		{Key: "f", Val: ir.FromFloat(0.25)},
	})
	if got := MustString(node); got != `{"i":-3,"u":18446744073709551615,"f":0.25}` {
		t.Errorf("got %s", got)
	}
}

func TestEncodeColors(t *testing.T) {
	node := ir.FromSlice([]*ir.Node{ir.FromString("x"), ir.Null()})
	colors := &Colors{
		Default: colorDefault,
		Map: map[Colorable]func(string, ...any) string{
			{Type: ir.StringType, Attr: ValueColor}: func(s string, _ ...any) string { return "<" + s + ">" },
		},
	}
	var buf bytes.Buffer
	if err := Encode(node, &buf, EncodeColors(colors)); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != `[<"x">,null]` {
		t.Errorf("got %s", got)
	}
	if !PrettyFromOpts(EncodePretty(true)) || PrettyFromOpts() {
		t.Error("PrettyFromOpts")
	}
}
