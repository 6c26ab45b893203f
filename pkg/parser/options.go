package parser

// DefaultMaxDepth bounds how deeply calls, formatting and comments may nest.
const DefaultMaxDepth = 128

type options struct {
	maxDepth int
}

// Option configures Parse.
type Option func(*options)

// WithMaxDepth sets the nesting limit; values below 1 select DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}
		o.maxDepth = depth
	}
}

func buildOptions(opts []Option) options {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
