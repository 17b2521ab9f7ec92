package log

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecorder(t *testing.T) {
	var l Logger = &Recorder{}
	l.Warn("skipped member", Fields{"path": "legs"})
	l.Debug("codec", nil)
	l.Warn("skipped element", nil)
	r := l.(*Recorder)
	if diff := cmp.Diff([]string{"skipped member", "skipped element"}, r.Messages("warn")); diff != "" {
		t.Errorf("warn messages (-want +got):\n%s", diff)
	}
	if got := len(r.Messages("")); got != 3 {
		t.Errorf("got %d entries", got)
	}
	NopLogger{}.Error("discarded", nil)
}
