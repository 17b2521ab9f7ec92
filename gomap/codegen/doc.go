// Package codegen generates explicit type descriptors for Go structs.
//
// Structs carrying `tiny` tags are found with go/packages and their member
// tables are written out as typedesc.StructFor registrations in an init
// function, so that the mapper uses a fixed descriptor instead of deriving
// one through reflection at first use.
//
// Generated code appears in a *_tinyjson.go file next to the source.
//
// # Related Packages
//
//   - github.com/gering/Tiny-JSON/typedesc - Descriptors and the Builder
//   - github.com/gering/Tiny-JSON/gomap - Encoding/decoding
package codegen
