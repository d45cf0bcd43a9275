package fluentmasker

import (
	"go.uber.org/zap"
)

// Option configures a Masker at construction.
type Option func(*options)

type options struct {
	codec    Codec
	behavior PropertyBehavior
	logger   *zap.Logger
}

func defaultOptions() options {
	return options{
		codec:    JSONCodec(),
		behavior: Exclude,
		logger:   zap.NewNop(),
	}
}

// WithCodec sets the codec used to serialize masked output. Defaults to JSON.
func WithCodec(c Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithBehavior sets the initial property behavior. Defaults to Exclude.
func WithBehavior(b PropertyBehavior) Option {
	return func(o *options) {
		o.behavior = b
	}
}

// WithLogger sets the logger used for registration and failure diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
