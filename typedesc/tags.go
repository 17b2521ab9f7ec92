package typedesc

import (
	"fmt"
	"strings"
)

// TagKey is the struct tag key read when deriving descriptors.
//
//	Legs   int    `tiny:"field=legs"`
//	ID     string `tiny:"omit"`
//	_      struct{} `tiny:"snakecase"`
const TagKey = "tiny"

// ParseStructTag parses a struct tag value into key/value pairs.
// Handles comma or space separated values: `tiny:"key1=value1,key2=value2,flag"`
// Supports quoted values with spaces: `tiny:"field='value with spaces'"`
func ParseStructTag(tag string) (map[string]string, error) {
	result := make(map[string]string)

	if tag == "" {
		return result, nil
	}
	if tag == "-" {
		result["omit"] = ""
		return result, nil
	}

	var parts []string
	var current strings.Builder
	inSingleQuote := false
	inDoubleQuote := false

	for i := 0; i < len(tag); i++ {
		char := tag[i]

		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote
			current.WriteByte(char)
		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote
			current.WriteByte(char)
		case (char == ',' || char == ' ') && !inSingleQuote && !inDoubleQuote:
			part := strings.TrimSpace(current.String())
			if part != "" {
				parts = append(parts, part)
			}
			current.Reset()
		default:
			current.WriteByte(char)
		}
	}
	if inSingleQuote || inDoubleQuote {
		return nil, fmt.Errorf("invalid tag %q: unterminated quote", tag)
	}

	part := strings.TrimSpace(current.String())
	if part != "" {
		parts = append(parts, part)
	}

	for _, part := range parts {
		if idx := strings.Index(part, "="); idx >= 0 {
			key := strings.TrimSpace(part[:idx])
			value := strings.TrimSpace(part[idx+1:])
			if key == "" {
				return nil, fmt.Errorf("invalid tag: empty key in %q", part)
			}
			result[key] = unquoteValue(value)
		} else {
			result[part] = ""
		}
	}

	return result, nil
}

// unquoteValue removes surrounding single or double quotes from a value.
func unquoteValue(value string) string {
	if len(value) < 2 {
		return value
	}
	if value[0] == '\'' && value[len(value)-1] == '\'' {
		return value[1 : len(value)-1]
	}
	if value[0] == '"' && value[len(value)-1] == '"' {
		return value[1 : len(value)-1]
	}
	return value
}

type fieldTag struct {
	override    string
	hasOverride bool
	omit        bool
	snakeCase   bool
}

func parseFieldTag(tag string) (fieldTag, error) {
	var res fieldTag
	parsed, err := ParseStructTag(tag)
	if err != nil {
		return res, err
	}
	if name, ok := parsed["field"]; ok {
		if name == "" {
			return res, fmt.Errorf("invalid tag %q: field= requires a name", tag)
		}
		res.override = name
		res.hasOverride = true
	}
	_, res.omit = parsed["omit"]
	if _, ok := parsed["-"]; ok {
		res.omit = true
	}
	_, res.snakeCase = parsed["snakecase"]
	return res, nil
}
