package parser

import "log/slog"

// DefaultMaxDepth bounds how deeply bodies and command substitutions may
// nest before parsing fails.
const DefaultMaxDepth = 256

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for debug tracing. Skipped top-level
// tokens are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}
