package debug

import (
	"fmt"
	"os"
	"strconv"

	"github.com/davecgh/go-spew/spew"
)

type debug struct {
	Encode   bool
	Decode   bool
	Registry bool
}

var d *debug

func init() {
	d = &debug{}
	d.Encode = boolEnv("TINYJSON_DEBUG_ENCODE")
	d.Decode = boolEnv("TINYJSON_DEBUG_DECODE")
	d.Registry = boolEnv("TINYJSON_DEBUG_REGISTRY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Encode() bool {
	return d.Encode
}
func Decode() bool {
	return d.Decode
}
func Registry() bool {
	return d.Registry
}

// Set overrides the switches read from the environment.
func Set(encode, decode, registry bool) {
	d = &debug{Encode: encode, Decode: decode, Registry: registry}
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func LogAny(v any) {
	dumper.Fdump(os.Stderr, v)
}

func Sdump(v any) string {
	return dumper.Sdump(v)
}
