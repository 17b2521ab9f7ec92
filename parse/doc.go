// Package parse provides JSON parsing into [ir.Node] value trees.
package parse
