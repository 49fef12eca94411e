package validator

import (
	"github.com/sqlward/sqlward/pkg/similarity"
)

// ValidateOption is a functional option for customizing one validation call.
type ValidateOption func(*validateOptions)

// validateOptions holds optional configuration for a validation pass.
type validateOptions struct {
	matcher       *similarity.Cache
	maxReferences int
}

// WithMatcher shares a distance cache across validators. Sessions that
// validate many statements against the same schema benefit from sharing one
// cache, since misspellings repeat.
func WithMatcher(matcher *similarity.Cache) ValidateOption {
	return func(opts *validateOptions) {
		if matcher != nil {
			opts.matcher = matcher
		}
	}
}

// WithMaxReferences overrides the extraction cap for this call. Zero or
// negative leaves the configured cap in place.
func WithMaxReferences(limit int) ValidateOption {
	return func(opts *validateOptions) {
		if limit > 0 {
			opts.maxReferences = limit
		}
	}
}
