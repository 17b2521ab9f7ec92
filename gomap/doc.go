// Package gomap maps Go values to JSON and back.
//
// # Usage
//
//	type Bear struct {
//	    Weight float64 `tiny:"field=weight"`
//	    Name   string
//	    Animal
//	}
//
//	m := gomap.DefaultMapper()
//	s := m.EncodeString(bear, false)
//
//	node, err := parse.Parse(data)
//	var b Bear
//	err = m.DecodeInto(node, &b)
//
// Encoding walks the value and issues calls on an [encode.Builder]; decoding
// walks a parsed [ir.Node] tree. Both pick a codec per type from a
// [Registry], which callers may extend with [RegisterEncoder] and
// [RegisterDecoder].
//
// Neither direction aborts on a value it cannot handle. On encode the value
// is written as null; on decode the member, element or entry is left at its
// zero value or skipped. Each such event is reported to the mapper's logger.
//
// # Containers
//
// Go maps are unordered, so maps are written with keys in sorted order and
// sets (map[K]struct{}) as arrays of sorted keys. When decoding, a null or
// undecodable element of a slice or array becomes the element's zero value,
// while a null or undecodable entry of a map or set is skipped.
//
// # Related Packages
//
//   - github.com/gering/Tiny-JSON/typedesc - type descriptors
//   - github.com/gering/Tiny-JSON/coerce - scalar coercion
//   - github.com/gering/Tiny-JSON/gomap/codegen - descriptor generation
package gomap
