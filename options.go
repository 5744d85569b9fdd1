package listeners

import "github.com/rs/zerolog"

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to trace listener changes at debug level.
// The default logger discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) {
		r.log = l.With().Str("component", "listeners").Logger()
	}
}

// WithStrictInit makes Init fail with ErrAlreadyInitialized on an element
// that is already initialized, instead of resetting its listeners.
func WithStrictInit() Option {
	return func(r *Registry) {
		r.strict = true
	}
}
