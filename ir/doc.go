// Package ir provides the in-memory value tree for JSON documents.
//
// A Node is a tagged union over null, bool, number, string, array and
// object. Objects keep their fields in insertion order: Fields[i] holds
// the key (a string node) for Values[i].
//
// The parse package produces value trees, the encode package writes them,
// and the gomap package maps them to and from Go values.
package ir
