package encode

type EncodeOption func(*Builder)

// EncodePretty turns on indentation, " : " between names and values and a
// trailing newline.
func EncodePretty(v bool) EncodeOption {
	return func(b *Builder) { b.pretty = v }
}

// EncodeIndent sets the number of spaces per nesting level in pretty mode.
func EncodeIndent(n int) EncodeOption {
	return func(b *Builder) {
		if n >= 0 {
			b.indent = n
		}
	}
}

func EncodeColors(c *Colors) EncodeOption {
	return func(b *Builder) {
		if c == nil {
			b.Color = nil
			return
		}
		b.Color = c.Color
	}
}

// PrettyFromOpts reports whether opts turn on pretty mode.
func PrettyFromOpts(opts ...EncodeOption) bool {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b.pretty
}
