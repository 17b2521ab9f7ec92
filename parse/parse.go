package parse

import (
	"bytes"
	"fmt"

	"github.com/gering/Tiny-JSON/ir"
	"github.com/gering/Tiny-JSON/token"

	"github.com/tidwall/jsonc"
)

const defaultMaxDepth = 10000

// Parse parses a single JSON document. A document consisting only of
// whitespace yields a nil node and no error.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{maxDepth: defaultMaxDepth}
	for _, f := range opts {
		f(pOpts)
	}
	if pOpts.comments {
		d = jsonc.ToJSON(d)
	}
	if len(bytes.TrimSpace(d)) == 0 {
		return nil, nil
	}
	toks, err := token.Tokenize(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	p := &parser{toks: toks, opts: pOpts}
	res, err := p.value(nil, 0)
	if err != nil {
		return nil, err
	}
	if p.i != len(p.toks) {
		return nil, fmt.Errorf("%w at %s", ErrTrailing, p.toks[p.i].Pos)
	}
	return res, nil
}

type parser struct {
	toks []token.Token
	i    int
	opts *parseOpts
}

func (p *parser) next() *token.Token {
	if p.i >= len(p.toks) {
		return nil
	}
	t := &p.toks[p.i]
	p.i++
	return t
}

func (p *parser) peek() *token.Token {
	if p.i >= len(p.toks) {
		return nil
	}
	return &p.toks[p.i]
}

func (p *parser) unexpected(t *token.Token, want string) error {
	if t == nil {
		return fmt.Errorf("%w: unexpected end of document, expected %s", ErrParse, want)
	}
	return fmt.Errorf("%w: unexpected %s, expected %s at %s", ErrParse, t.Type, want, t.Pos)
}

func (p *parser) value(parent *ir.Node, depth int) (*ir.Node, error) {
	t := p.next()
	if t == nil {
		return nil, p.unexpected(nil, "value")
	}
	switch t.Type {
	case token.TLCurl:
		if err := p.checkDepth(t, depth); err != nil {
			return nil, err
		}
		obj := &ir.Node{Type: ir.ObjectType, Parent: parent}
		return p.object(obj, depth+1)
	case token.TLSquare:
		if err := p.checkDepth(t, depth); err != nil {
			return nil, err
		}
		arr := &ir.Node{Type: ir.ArrayType, Parent: parent}
		return p.array(arr, depth+1)
	case token.TString:
		s, err := token.Unquote(string(t.Bytes))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, token.NewTokenizeErr(err, t.Pos))
		}
		n := ir.FromString(s)
		n.Parent = parent
		return n, nil
	case token.TInteger, token.TFloat:
		n, err := ir.FromNumber(string(t.Bytes))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, token.NewTokenizeErr(token.ErrNumber, t.Pos))
		}
		n.Parent = parent
		return n, nil
	case token.TTrue, token.TFalse:
		n := ir.FromBool(t.Type == token.TTrue)
		n.Parent = parent
		return n, nil
	case token.TNull:
		n := ir.Null()
		n.Parent = parent
		return n, nil
	default:
		return nil, p.unexpected(t, "value")
	}
}

func (p *parser) checkDepth(t *token.Token, depth int) error {
	if p.opts.maxDepth > 0 && depth >= p.opts.maxDepth {
		return fmt.Errorf("%w at %s", ErrDepth, t.Pos)
	}
	return nil
}

func (p *parser) object(obj *ir.Node, depth int) (*ir.Node, error) {
	if t := p.peek(); t != nil && t.Type == token.TRCurl {
		p.i++
		return obj, nil
	}
	for {
		kt := p.next()
		if kt == nil || kt.Type != token.TString {
			if kt != nil && kt.Type.IsValue() {
				return nil, fmt.Errorf("%w at %s", ErrKey, kt.Pos)
			}
			return nil, p.unexpected(kt, "object key")
		}
		key, err := token.Unquote(string(kt.Bytes))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, token.NewTokenizeErr(err, kt.Pos))
		}
		if ct := p.next(); ct == nil || ct.Type != token.TColon {
			return nil, p.unexpected(ct, "':'")
		}
		val, err := p.value(obj, depth)
		if err != nil {
			return nil, err
		}
		obj.Append(key, val)
		st := p.next()
		if st == nil {
			return nil, p.unexpected(nil, "',' or '}'")
		}
		switch st.Type {
		case token.TComma:
			continue
		case token.TRCurl:
			return obj, nil
		default:
			return nil, p.unexpected(st, "',' or '}'")
		}
	}
}

func (p *parser) array(arr *ir.Node, depth int) (*ir.Node, error) {
	if t := p.peek(); t != nil && t.Type == token.TRSquare {
		p.i++
		return arr, nil
	}
	for {
		val, err := p.value(arr, depth)
		if err != nil {
			return nil, err
		}
		val.ParentIndex = len(arr.Values)
		arr.Values = append(arr.Values, val)
		st := p.next()
		if st == nil {
			return nil, p.unexpected(nil, "',' or ']'")
		}
		switch st.Type {
		case token.TComma:
			continue
		case token.TRSquare:
			return arr, nil
		default:
			return nil, p.unexpected(st, "',' or ']'")
		}
	}
}
