package token

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

const lowerHex = "0123456789abcdef"

// Quote returns the wire form of v. The two-character escapes are used for
// '"', '\\', '\b', '\f', '\n', '\r' and '\t'. Any other UTF-16 code unit
// outside the printable ASCII range 32..126 is written as \u followed by
// exactly 4 lowercase hex digits.
func Quote(v string) string {
	return string(AppendQuote(make([]byte, 0, len(v)+2), v))
}

func AppendQuote(d []byte, v string) []byte {
	d = append(d, '"')
	for _, r := range v {
		switch r {
		case '"':
			d = append(d, '\\', '"')
		case '\\':
			d = append(d, '\\', '\\')
		case '\b':
			d = append(d, '\\', 'b')
		case '\f':
			d = append(d, '\\', 'f')
		case '\n':
			d = append(d, '\\', 'n')
		case '\r':
			d = append(d, '\\', 'r')
		case '\t':
			d = append(d, '\\', 't')
		default:
			switch {
			case r >= 32 && r <= 126:
				d = append(d, byte(r))
			case r > 0xffff:
				r1, r2 := utf16.EncodeRune(r)
				d = appendU(d, r1)
				d = appendU(d, r2)
			default:
				d = appendU(d, r)
			}
		}
	}
	return append(d, '"')
}

func appendU(d []byte, r rune) []byte {
	return append(d, '\\', 'u',
		lowerHex[(r>>12)&0xf],
		lowerHex[(r>>8)&0xf],
		lowerHex[(r>>4)&0xf],
		lowerHex[r&0xf])
}

// Unquote decodes a double quoted JSON string literal.
func Unquote(v string) (string, error) {
	b := []byte(v)
	n, err := scanString(b)
	if err != nil {
		return "", err
	}
	if n != len(b) {
		return "", fmt.Errorf("%w: trailing data after string", ErrLiteral)
	}
	return unescape(b[1 : n-1])
}

// scanString returns the length of the quoted string at the start of d,
// quotes included.
func scanString(d []byte) (int, error) {
	if len(d) == 0 || d[0] != '"' {
		return 0, fmt.Errorf("%w: expected '\"'", ErrLiteral)
	}
	i := 1
	for i < len(d) {
		c := d[i]
		switch {
		case c == '"':
			return i + 1, nil
		case c == '\\':
			if i+1 >= len(d) {
				return 0, ErrUnterminated
			}
			switch d[i+1] {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				i += 2
			case 'u':
				if i+6 > len(d) {
					return 0, ErrBadUnicode
				}
				if _, ok := hex4(d[i+2 : i+6]); !ok {
					return 0, ErrBadUnicode
				}
				i += 6
			default:
				return 0, fmt.Errorf("%w: \\%c", ErrBadEscape, d[i+1])
			}
		case c < 0x20:
			return 0, ErrUnicodeControl
		case c < utf8.RuneSelf:
			i++
		default:
			r, sz := utf8.DecodeRune(d[i:])
			if r == utf8.RuneError && sz == 1 {
				return 0, ErrBadUTF8
			}
			i += sz
		}
	}
	return 0, ErrUnterminated
}

func unescape(d []byte) (string, error) {
	if !hasEscape(d) {
		return string(d), nil
	}
	var sb strings.Builder
	sb.Grow(len(d))
	for i := 0; i < len(d); {
		c := d[i]
		if c != '\\' {
			sb.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(d) {
			return "", ErrUnterminated
		}
		switch d[i+1] {
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		case '/':
			sb.WriteByte('/')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'u':
			if i+6 > len(d) {
				return "", ErrBadUnicode
			}
			r, ok := hex4(d[i+2 : i+6])
			if !ok {
				return "", ErrBadUnicode
			}
			i += 6
			if utf16.IsSurrogate(r) {
				if i+6 <= len(d) && d[i] == '\\' && d[i+1] == 'u' {
					if r2, ok := hex4(d[i+2 : i+6]); ok {
						if dec := utf16.DecodeRune(r, r2); dec != utf8.RuneError {
							sb.WriteRune(dec)
							i += 6
							continue
						}
					}
				}
				r = utf8.RuneError
			}
			sb.WriteRune(r)
			continue
		default:
			return "", fmt.Errorf("%w: \\%c", ErrBadEscape, d[i+1])
		}
		i += 2
	}
	return sb.String(), nil
}

func hasEscape(d []byte) bool {
	for _, c := range d {
		if c == '\\' {
			return true
		}
	}
	return false
}

func hex4(d []byte) (rune, bool) {
	var r rune
	for _, c := range d {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			r |= rune(c - 'A' + 10)
		default:
			return 0, false
		}
	}
	return r, true
}
