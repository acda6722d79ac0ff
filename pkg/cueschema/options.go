// SPDX-License-Identifier: MPL-2.0

package cueschema

// DefaultMaxFileSize is the maximum accepted input size (2MB). Descriptors
// and config files are small; anything larger is almost certainly a mistake
// and would only waste memory in the CUE evaluator.
const DefaultMaxFileSize int64 = 2 * 1024 * 1024

type (
	options struct {
		maxFileSize int64
		concrete    bool
		filename    string
	}

	// Option configures schema checking behavior.
	Option func(*options)
)

func defaultOptions() options {
	return options{
		maxFileSize: DefaultMaxFileSize,
		concrete:    false,
		filename:    "",
	}
}

// WithMaxFileSize sets the maximum allowed input size in bytes.
func WithMaxFileSize(size int64) Option {
	return func(o *options) {
		o.maxFileSize = size
	}
}

// WithConcrete requires all values to be concrete after unification. Leave
// unset for schemas with optional fields.
func WithConcrete(concrete bool) Option {
	return func(o *options) {
		o.concrete = concrete
	}
}

// WithFilename sets the file name shown in error messages.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}
