package gomap

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupported   = errors.New("unsupported value")
	ErrCycle         = errors.New("circular reference")
	ErrNoCodec       = errors.New("no codec")
	ErrNotAssignable = errors.New("decoded value not assignable")
	ErrShape         = errors.New("unexpected shape")
)

// MarshalError represents an error during marshaling
type MarshalError struct {
	FieldPath string // Field path (e.g., "cargo[1].legs")
	Message   string
	Err       error
}

func (e *MarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// UnmarshalError represents an error during unmarshaling
type UnmarshalError struct {
	FieldPath string // Field path (e.g., "cargo[1].legs")
	Message   string
	Err       error
}

func (e *UnmarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("unmarshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("unmarshal error: %s", e.Message)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}

// TypeError represents a type mismatch error
type TypeError struct {
	FieldPath string
	Expected  string
	Actual    string
	Message   string
	Err       error
}

func (e *TypeError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
	}
	if e.FieldPath != "" {
		return fmt.Sprintf("type error at %s: %s", e.FieldPath, msg)
	}
	return fmt.Sprintf("type error: %s", msg)
}

func (e *TypeError) Unwrap() error {
	return e.Err
}

func joinPath(prev, seg string) string {
	switch {
	case prev == "":
		return seg
	case len(seg) > 0 && seg[0] == '[':
		return prev + seg
	}
	return prev + "." + seg
}
