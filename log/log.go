// Package log is the diagnostic channel of the mapping engine.
//
// Values the engine cannot encode or decode are not fatal: they are
// reported here and the document is completed around them. Adapters for
// common logging stacks live in the sub packages.
package log

// Fields is a minimal structured field map for logs.
type Fields map[string]any

// Logger is a tiny leveled logger. Provide an adapter around the logging
// stack in use; NopLogger discards everything.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}

// Entry is one recorded log call.
type Entry struct {
	Level  string
	Msg    string
	Fields Fields
}

// Recorder keeps every entry in memory. It is meant for tests and for
// callers that want to inspect what was skipped during a single call.
type Recorder struct {
	Entries []Entry
}

func (r *Recorder) Debug(msg string, f Fields) { r.add("debug", msg, f) }
func (r *Recorder) Info(msg string, f Fields)  { r.add("info", msg, f) }
func (r *Recorder) Warn(msg string, f Fields)  { r.add("warn", msg, f) }
func (r *Recorder) Error(msg string, f Fields) { r.add("error", msg, f) }

func (r *Recorder) add(level, msg string, f Fields) {
	r.Entries = append(r.Entries, Entry{Level: level, Msg: msg, Fields: f})
}

// Messages returns the messages logged at level, or at every level when
// level is empty.
func (r *Recorder) Messages(level string) []string {
	var res []string
	for _, e := range r.Entries {
		if level == "" || e.Level == level {
			res = append(res, e.Msg)
		}
	}
	return res
}
