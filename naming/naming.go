// Package naming resolves the wire names of struct members.
//
// A member's wire name is its explicit override when it has one. Otherwise
// the declared identifier is used, after unwrapping synthesized names and,
// when the owning type asks for it, converting to snake_case.
package naming

import (
	"strings"
	"unicode"
)

type Member struct {
	Name        string
	Override    string
	HasOverride bool
}

// WireName returns the JSON key for m.
func WireName(m Member, snakeCase bool) string {
	if m.HasOverride {
		return m.Override
	}
	name := Unwrap(m.Name)
	if snakeCase {
		return SnakeCase(name)
	}
	return name
}

// Unwrap returns the real identifier of a synthesized backing name such
// as "<Driver>k__BackingField". Other names are returned unchanged.
func Unwrap(name string) string {
	if !strings.HasPrefix(name, "<") {
		return name
	}
	end := strings.IndexByte(name, '>')
	if end <= 1 {
		return name
	}
	return name[1:end]
}

// SnakeCase converts "ThisIsATestString" to "this_is_a_test_string".
func SnakeCase(s string) string {
	words := splitWords(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// CamelCase converts "this_is_a_test_string" to "ThisIsATestString".
func CamelCase(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, w := range strings.Split(s, "_") {
		if w == "" {
			continue
		}
		rs := []rune(w)
		sb.WriteRune(unicode.ToUpper(rs[0]))
		sb.WriteString(string(rs[1:]))
	}
	return sb.String()
}

// Match returns the index of the first candidate equal to wire ignoring
// case, or -1.
func Match(wire string, candidates []string) int {
	for i, c := range candidates {
		if strings.EqualFold(c, wire) {
			return i
		}
	}
	return -1
}

func splitWords(s string) []string {
	if s == "" {
		return nil
	}
	var words []string
	var current strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
			continue
		}
		if i > 0 && startsWord(runes, i) && current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsWord reports whether a new word starts at runes[i]: an upper case
// letter after a lower case one, or the last upper case letter of a run
// when a lower case letter follows ("XMLParser" -> "XML", "Parser").
func startsWord(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}
	if !unicode.IsUpper(prev) {
		return true
	}
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
