package token

import "fmt"

type TokenType int

const (
	TInteger TokenType = iota
	TFloat
	TColon
	TComma
	TNull
	TTrue
	TFalse
	TString
	TLCurl
	TRCurl
	TLSquare
	TRSquare
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TInteger: "TInteger",
		TFloat:   "TFloat",
		TColon:   "TColon",
		TComma:   "TComma",
		TNull:    "TNull",
		TTrue:    "TTrue",
		TFalse:   "TFalse",
		TString:  "TString",
		TLCurl:   "TLCurl",
		TRCurl:   "TRCurl",
		TLSquare: "TLSquare",
		TRSquare: "TRSquare",
	}[t]
}

// IsValue reports whether a token of this type starts a value.
func (t TokenType) IsValue() bool {
	switch t {
	case TColon, TComma, TRCurl, TRSquare:
		return false
	default:
		return true
	}
}

type Token struct {
	Type  TokenType
	Pos   *Pos
	Bytes []byte
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

// String returns the decoded text of the token. For TString tokens this is
// the unquoted value.
func (t *Token) String() string {
	if t.Type == TString {
		s, err := Unquote(string(t.Bytes))
		if err != nil {
			return string(t.Bytes)
		}
		return s
	}
	return string(t.Bytes)
}
