// Package encode writes JSON text.
//
// # Usage
//
//	// Issue builder calls directly
//	b := encode.NewBuilder(encode.EncodePretty(true))
//	b.BeginObject()
//	b.Name("legs")
//	b.Int(4)
//	b.EndObject()
//	text := b.Text()
//
//	// Encode a value tree
//	err := encode.Encode(node, os.Stdout, encode.EncodePretty(true))
//
// Strings are always written in pure ASCII: see [token.Quote].
//
// # Related Packages
//
//   - github.com/gering/Tiny-JSON/ir - value tree
//   - github.com/gering/Tiny-JSON/parse - parse text to value trees
package encode
