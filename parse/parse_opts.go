package parse

type parseOpts struct {
	comments bool
	maxDepth int
}

type ParseOption func(*parseOpts)

// ParseComments accepts JSON with comments and trailing commas.
func ParseComments(v bool) ParseOption {
	return func(o *parseOpts) { o.comments = v }
}

// MaxDepth bounds the nesting of arrays and objects. n <= 0 removes the
// bound.
func MaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}
