package coerce

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/gering/Tiny-JSON/ir"
)

var (
	ErrNoValue  = errors.New("no value")
	ErrMismatch = errors.New("type mismatch")
	ErrRange    = errors.New("value out of range")
	ErrEnum     = errors.New("unknown enum value")
	ErrTime     = errors.New("invalid time")
)

// Error reports a failed coercion of a value tree scalar into a Go type.
type Error struct {
	From ir.Type
	To   reflect.Type
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("coerce %s to %s: %v", e.From, e.To, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func fail(node *ir.Node, t reflect.Type, err error) (reflect.Value, error) {
	from := ir.NullType
	if node != nil {
		from = node.Type
	}
	return reflect.Value{}, &Error{From: from, To: t, Err: err}
}
