package gomap

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/gering/Tiny-JSON/debug"
	"github.com/gering/Tiny-JSON/ir"
	"github.com/gering/Tiny-JSON/typedesc"
)

// EncodeFunc writes exactly one JSON value for v.
type EncodeFunc func(s *EncState, v reflect.Value) error

// DecodeFunc builds a value of type t from node. The result must be
// assignable to t.
type DecodeFunc func(s *DecState, t reflect.Type, node *ir.Node) (reflect.Value, error)

// Source names the layer of the registry a codec was found in.
type Source int

const (
	SourceExact Source = iota
	SourceAssignable
	SourceBuiltin
	SourceScalar
	SourceCatchAll
)

func (s Source) String() string {
	switch s {
	case SourceExact:
		return "exact"
	case SourceAssignable:
		return "assignable"
	case SourceBuiltin:
		return "builtin"
	case SourceScalar:
		return "scalar"
	case SourceCatchAll:
		return "catch-all"
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

var anyType = reflect.TypeFor[any]()

type encEntry struct {
	key reflect.Type
	fn  EncodeFunc
}

type decEntry struct {
	key reflect.Type
	fn  DecodeFunc
}

// table is an immutable snapshot of the registered codecs.
type table struct {
	encExact map[reflect.Type]EncodeFunc
	decExact map[reflect.Type]DecodeFunc
	enc      []encEntry
	dec      []decEntry
	encAny   EncodeFunc
	decAny   DecodeFunc
}

func (t *table) clone() *table {
	res := &table{
		encExact: make(map[reflect.Type]EncodeFunc, len(t.encExact)+1),
		decExact: make(map[reflect.Type]DecodeFunc, len(t.decExact)+1),
		enc:      append([]encEntry(nil), t.enc...),
		dec:      append([]decEntry(nil), t.dec...),
		encAny:   t.encAny,
		decAny:   t.decAny,
	}
	for k, v := range t.encExact {
		res.encExact[k] = v
	}
	for k, v := range t.decExact {
		res.decExact[k] = v
	}
	return res
}

// Registry maps Go types to codecs.
//
// Lookup for a type T tries, in order: a codec registered for exactly T;
// the first registered codec whose key T can stand in for (T implements
// the key interface, or embeds the key struct), in registration order; the
// built-in structural codecs; the scalar codecs; the catch-all codec, which
// by default encodes and decodes structs member by member.
//
// Registration publishes a new snapshot; lookups never take a lock and
// never modify the registry.
type Registry struct {
	mu   sync.Mutex
	snap atomic.Pointer[table]
}

func NewRegistry() *Registry {
	r := &Registry{}
	r.snap.Store(&table{
		encExact: map[reflect.Type]EncodeFunc{},
		decExact: map[reflect.Type]DecodeFunc{},
		encAny:   encodeObject,
		decAny:   decodeObject,
	})
	return r
}

func (r *Registry) update(f func(t *table)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.snap.Load().clone()
	f(t)
	r.snap.Store(t)
}

// RegisterEncoder installs fn for key. Registering for the empty interface
// replaces the catch-all encoder. A later registration for the same key
// replaces the earlier one in place.
func (r *Registry) RegisterEncoder(key reflect.Type, fn EncodeFunc) {
	if debug.Registry() {
		debug.Logf("tinyjson: register encoder %s\n", key)
	}
	r.update(func(t *table) {
		if key == anyType {
			t.encAny = fn
			return
		}
		t.encExact[key] = fn
		for i := range t.enc {
			if t.enc[i].key == key {
				t.enc[i].fn = fn
				return
			}
		}
		t.enc = append(t.enc, encEntry{key: key, fn: fn})
	})
}

// RegisterDecoder installs fn for key. Registering for the empty interface
// replaces the catch-all decoder.
func (r *Registry) RegisterDecoder(key reflect.Type, fn DecodeFunc) {
	if debug.Registry() {
		debug.Logf("tinyjson: register decoder %s\n", key)
	}
	r.update(func(t *table) {
		if key == anyType {
			t.decAny = fn
			return
		}
		t.decExact[key] = fn
		for i := range t.dec {
			if t.dec[i].key == key {
				t.dec[i].fn = fn
				return
			}
		}
		t.dec = append(t.dec, decEntry{key: key, fn: fn})
	})
}

// Encoder returns the encoder for values of type t and the layer it came
// from.
func (r *Registry) Encoder(t reflect.Type) (EncodeFunc, Source) {
	snap := r.snap.Load()
	if fn, ok := snap.encExact[t]; ok {
		return fn, SourceExact
	}
	for _, e := range snap.enc {
		if e.key.Kind() == reflect.Interface {
			if t.Implements(e.key) {
				return e.fn, SourceAssignable
			}
			continue
		}
		if path, ok := embedPath(t, e.key); ok {
			return upcast(path, e.fn), SourceAssignable
		}
	}
	d := typedesc.Of(t)
	for _, b := range encBuiltins {
		if b.match(d) {
			return b.fn, SourceBuiltin
		}
	}
	if fn := encScalar(d); fn != nil {
		return fn, SourceScalar
	}
	return snap.encAny, SourceCatchAll
}

// Decoder returns the decoder for targets of type t and the layer it came
// from.
func (r *Registry) Decoder(t reflect.Type) (DecodeFunc, Source) {
	snap := r.snap.Load()
	if fn, ok := snap.decExact[t]; ok {
		return fn, SourceExact
	}
	for _, e := range snap.dec {
		if e.key.Kind() == reflect.Interface && t.Implements(e.key) {
			return e.fn, SourceAssignable
		}
	}
	d := typedesc.Of(t)
	for _, b := range decBuiltins {
		if b.match(d) {
			return b.fn, SourceBuiltin
		}
	}
	if d.Kind.IsScalar() {
		return decodeScalar, SourceScalar
	}
	return snap.decAny, SourceCatchAll
}

// Keys returns the registered encoder and decoder keys in registration
// order.
func (r *Registry) Keys() (enc, dec []reflect.Type) {
	snap := r.snap.Load()
	for _, e := range snap.enc {
		enc = append(enc, e.key)
	}
	for _, e := range snap.dec {
		dec = append(dec, e.key)
	}
	return enc, dec
}

// embedPath finds the index path of an embedded field of type key inside
// the struct t, searching shallower embeddings first.
func embedPath(t, key reflect.Type) ([]int, bool) {
	if t == key {
		return nil, true
	}
	if t.Kind() != reflect.Struct || key.Kind() != reflect.Struct {
		return nil, false
	}
	type item struct {
		t    reflect.Type
		path []int
	}
	queue := []item{{t: t}}
	seen := map[reflect.Type]bool{t: true}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		for i := 0; i < it.t.NumField(); i++ {
			f := it.t.Field(i)
			if !f.Anonymous || f.Type.Kind() != reflect.Struct {
				continue
			}
			path := append(append([]int{}, it.path...), i)
			if f.Type == key {
				return path, true
			}
			if !seen[f.Type] {
				seen[f.Type] = true
				queue = append(queue, item{t: f.Type, path: path})
			}
		}
	}
	return nil, false
}

func upcast(path []int, fn EncodeFunc) EncodeFunc {
	if len(path) == 0 {
		return fn
	}
	return func(s *EncState, v reflect.Value) error {
		return fn(s, v.FieldByIndex(path))
	}
}
