package encode

import (
	"fmt"
	"io"

	"github.com/gering/Tiny-JSON/ir"
)

// Encode writes node to w as JSON.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	b := NewBuilder(opts...)
	if err := b.Node(node); err != nil {
		return err
	}
	_, err := w.Write(b.Bytes())
	return err
}

// MustString encodes node compactly and panics on error.
func MustString(node *ir.Node) string {
	b := NewBuilder()
	if err := b.Node(node); err != nil {
		panic(err)
	}
	return b.Text()
}

// Node writes a value tree through the builder. A nil node is written as
// null.
func (b *Builder) Node(node *ir.Node) error {
	if node == nil {
		b.Null()
		return nil
	}
	switch node.Type {
	case ir.NullType:
		b.Null()
	case ir.BoolType:
		b.Bool(node.Bool)
	case ir.StringType:
		b.String(node.String)
	case ir.NumberType:
		return b.number(node)
	case ir.ArrayType:
		b.BeginArray()
		for i, v := range node.Values {
			if i > 0 {
				b.Separator()
			}
			if err := b.Node(v); err != nil {
				return err
			}
		}
		b.EndArray()
	case ir.ObjectType:
		if len(node.Fields) != len(node.Values) {
			return fmt.Errorf("%w: object with %d fields and %d values", ErrEncoding, len(node.Fields), len(node.Values))
		}
		b.BeginObject()
		for i, v := range node.Values {
			if i > 0 {
				b.Separator()
			}
			b.Name(node.Fields[i].String)
			if err := b.Node(v); err != nil {
				return err
			}
		}
		b.EndObject()
	default:
		return fmt.Errorf("%w: node type %s", ErrEncoding, node.Type)
	}
	return nil
}

func (b *Builder) number(node *ir.Node) error {
	switch {
	case node.Number != "":
		b.Number(node.Number)
	case node.Int64 != nil:
		b.Int(*node.Int64)
	case node.Float64 != nil:
		return b.Float(*node.Float64, 64)
	default:
		return fmt.Errorf("%w: number node has no value", ErrEncoding)
	}
	return nil
}
