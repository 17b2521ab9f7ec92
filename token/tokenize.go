package token

import "bytes"

// Tokenize splits a JSON document into tokens. Whitespace is dropped and
// newlines are recorded in the position document for error reporting.
func Tokenize(d []byte) ([]Token, error) {
	posDoc := NewPosDoc(d)
	var toks []Token
	i := 0
	for i < len(d) {
		c := d[i]
		switch c {
		case '\n':
			posDoc.nl(i)
			i++
			continue
		case ' ', '\t', '\r':
			i++
			continue
		}
		pos := posDoc.Pos(i)
		switch c {
		case '{':
			toks = append(toks, Token{Type: TLCurl, Pos: pos, Bytes: d[i : i+1]})
			i++
		case '}':
			toks = append(toks, Token{Type: TRCurl, Pos: pos, Bytes: d[i : i+1]})
			i++
		case '[':
			toks = append(toks, Token{Type: TLSquare, Pos: pos, Bytes: d[i : i+1]})
			i++
		case ']':
			toks = append(toks, Token{Type: TRSquare, Pos: pos, Bytes: d[i : i+1]})
			i++
		case ':':
			toks = append(toks, Token{Type: TColon, Pos: pos, Bytes: d[i : i+1]})
			i++
		case ',':
			toks = append(toks, Token{Type: TComma, Pos: pos, Bytes: d[i : i+1]})
			i++
		case '"':
			n, err := scanString(d[i:])
			if err != nil {
				return nil, NewTokenizeErr(err, pos)
			}
			toks = append(toks, Token{Type: TString, Pos: pos, Bytes: d[i : i+n]})
			i += n
		case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			n, isFloat, err := number(d[i:])
			if err != nil {
				return nil, NewTokenizeErr(err, pos)
			}
			if i+n < len(d) && isWordByte(d[i+n]) {
				return nil, NewTokenizeErr(ErrNumber, posDoc.Pos(i+n))
			}
			tt := TInteger
			if isFloat {
				tt = TFloat
			}
			toks = append(toks, Token{Type: tt, Pos: pos, Bytes: d[i : i+n]})
			i += n
		default:
			tt, n := keyword(d[i:])
			if n == 0 {
				return nil, UnexpectedErr(quoteByte(c), pos)
			}
			toks = append(toks, Token{Type: tt, Pos: pos, Bytes: d[i : i+n]})
			i += n
		}
	}
	return toks, nil
}

var keywords = []struct {
	lit []byte
	tt  TokenType
}{
	{[]byte("null"), TNull},
	{[]byte("true"), TTrue},
	{[]byte("false"), TFalse},
}

func keyword(d []byte) (TokenType, int) {
	for _, kw := range keywords {
		if !bytes.HasPrefix(d, kw.lit) {
			continue
		}
		n := len(kw.lit)
		if n < len(d) && isWordByte(d[n]) {
			return 0, 0
		}
		return kw.tt, n
	}
	return 0, 0
}

func isWordByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_' || c == '.' || c == '"':
		return true
	}
	return false
}

func quoteByte(c byte) string {
	return Quote(string([]byte{c}))
}
