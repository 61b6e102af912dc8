package dta

import "go.uber.org/zap"

// Option configures Open.
type Option func(*options)

type options struct {
	logger  *zap.Logger
	pattern string
	decoder Decoder
}

func defaultOptions() options {
	return options{
		logger:  zap.NewNop(),
		pattern: DefaultPattern,
		decoder: RawDecoder(),
	}
}

// WithLogger sets the logger used for index lifecycle events.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPattern sets the glob selecting directory members. The default is
// DefaultPattern. Matching is case-sensitive.
func WithPattern(pattern string) Option {
	return func(o *options) {
		o.pattern = pattern
	}
}

// WithDecoder replaces the decoder that turns located text into spectra.
func WithDecoder(d Decoder) Option {
	return func(o *options) {
		if d != nil {
			o.decoder = d
		}
	}
}
