// Package typedesc describes Go types for the mapping engine.
//
// A [Type] is derived once per reflect.Type by [Of] and cached. It records
// the kind of the type, the capabilities the engine asks about (nullable,
// numeric, floating point, enum) and, for structs, the ordered list of
// members with their resolved wire names.
//
// Struct members are read from exported fields. Own fields come first in
// declaration order, followed by the fields promoted from embedded structs,
// each embedded struct again own fields first. A field shadows any field of
// the same Go name found deeper in the embedding tree.
//
// The tiny struct tag adjusts members:
//
//	type Bear struct {
//		_      struct{} `tiny:"snakecase"`
//		Weight float64  `tiny:"field=weight"`
//		ID     string   `tiny:"omit"`
//		Animal
//	}
//
// Descriptors can also be built explicitly with [StructFor] and installed with
// [Register], in which case derivation is skipped for that type. Generated
// registration code from cmd/tinyjson-gen uses this path.
//
// Integer types become enums with [RegisterEnum] or [RegisterEnumValues].
package typedesc
