package parse

import (
	"fmt"

	"github.com/gering/Tiny-JSON/ir"
)

var (
	ErrParse    = ir.ErrParse
	ErrTrailing = fmt.Errorf("%w: trailing data after document", ErrParse)
	ErrDepth    = fmt.Errorf("%w: nesting too deep", ErrParse)
	ErrKey      = fmt.Errorf("%w: object key must be a string", ErrParse)
)
