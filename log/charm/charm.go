// Package charm adapts a charmbracelet/log logger, which is what the tj
// command uses.
package charm

import (
	"slices"

	charmlog "github.com/charmbracelet/log"

	"github.com/gering/Tiny-JSON/log"
)

var _ log.Logger = Logger{}

type Logger struct{ L *charmlog.Logger }

func (c Logger) Debug(msg string, f log.Fields) { c.L.Debug(msg, kv(f)...) }
func (c Logger) Info(msg string, f log.Fields)  { c.L.Info(msg, kv(f)...) }
func (c Logger) Warn(msg string, f log.Fields)  { c.L.Warn(msg, kv(f)...) }
func (c Logger) Error(msg string, f log.Fields) { c.L.Error(msg, kv(f)...) }

func kv(f log.Fields) []any {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]any, 0, 2*len(f))
	for _, k := range keys {
		out = append(out, k, f[k])
	}
	return out
}
