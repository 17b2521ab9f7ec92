package debug

import (
	"strings"
	"testing"
)

func TestBoolEnv(t *testing.T) {
	t.Setenv("TINYJSON_TEST_FLAG", "true")
	if !boolEnv("TINYJSON_TEST_FLAG") {
		t.Error("expected true")
	}
	t.Setenv("TINYJSON_TEST_FLAG", "nope")
	if boolEnv("TINYJSON_TEST_FLAG") {
		t.Error("unparsable value should be false")
	}
	if boolEnv("TINYJSON_TEST_UNSET") {
		t.Error("unset should be false")
	}
}

func TestSet(t *testing.T) {
	prev := *d
	defer Set(prev.Encode, prev.Decode, prev.Registry)
	Set(true, false, true)
	if !Encode() || Decode() || !Registry() {
		t.Errorf("switches %+v", *d)
	}
}

func TestSdump(t *testing.T) {
	out := Sdump(map[string]int{"b": 2, "a": 1})
	if strings.Index(out, `"a"`) > strings.Index(out, `"b"`) {
		t.Errorf("keys not sorted: %s", out)
	}
}
