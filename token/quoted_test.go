package token

import (
	"errors"
	"testing"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "test", `"test"`},
		{"escapes", "\"\\\b\f\n\r\t", `"\"\\\b\f\n\r\t"`},
		{"non-ascii", "€ ö Ü é", `"\u20ac \u00f6 \u00dc \u00e9"`},
		{"control", "\x01\x7f", `"\u0001\u007f"`},
		{"astral", "😀", `"\ud83d\ude00"`},
		{"slash", "a/b", `"a/b"`},
		{"empty", "", `""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quote(tt.in); got != tt.want {
				t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: `"test"`, want: "test"},
		{in: `" \"Test\" "`, want: ` "Test" `},
		{in: `"\u20AC \u00F6 \u00DC \u00E9"`, want: "€ ö Ü é"},
		{in: `"\ud83d\ude00"`, want: "😀"},
		{in: `"\/"`, want: "/"},
		{in: `"\ud83d"`, want: "�"},
		{in: `"Test`, wantErr: ErrUnterminated},
		{in: `"\x"`, wantErr: ErrBadEscape},
		{in: `"\u12g4"`, wantErr: ErrBadUnicode},
		{in: "\"a\nb\"", wantErr: ErrUnicodeControl},
		{in: `"a"b`, wantErr: ErrLiteral},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Unquote(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Unquote(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unquote(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Unquote(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestQuoteUnquote(t *testing.T) {
	for _, s := range []string{
		`"`,
		`'`,
		"\t\n\v\r\b",
		"∞∞",
		`"""''`,
		"mixed ∞ \x00 😀 end",
	} {
		q := Quote(s)
		uq, err := Unquote(q)
		if err != nil {
			t.Errorf("error unquoting %s (from %q): %v", q, s, err)
			continue
		}
		if uq != s {
			t.Errorf("Unquote(Quote(%q)) = %q", s, uq)
		}
	}
}
