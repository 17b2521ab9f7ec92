// Package token provides JSON tokenization and the wire quoting rules.
//
// [Tokenize] turns a document into a flat token sequence with positions.
//
// [Quote] produces the escaped wire form of a string: printable ASCII is
// written as is and everything else is escaped, so encoded documents are
// always pure ASCII.
package token
