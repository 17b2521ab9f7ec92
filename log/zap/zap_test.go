package zap

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gering/Tiny-JSON/log"
)

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := ZapLogger{L: zap.New(core)}
	l.Warn("skipped member", log.Fields{"path": "cargo[1].legs", "type": "int"})
	l.Debug("no fields", nil)

	all := logs.All()
	if len(all) != 2 {
		t.Fatalf("got %d entries, want 2", len(all))
	}
	e := all[0]
	if e.Level != zapcore.WarnLevel || e.Message != "skipped member" {
		t.Errorf("got %s %q", e.Level, e.Message)
	}
	ctx := e.ContextMap()
	if ctx["path"] != "cargo[1].legs" || ctx["type"] != "int" {
		t.Errorf("fields %v", ctx)
	}
	if all[1].Level != zapcore.DebugLevel || len(all[1].Context) != 0 {
		t.Errorf("unexpected second entry %+v", all[1])
	}
}
