package lawdex

import "github.com/lawdex/lawdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery          = domain.ErrInvalidQuery
	ErrInvalidScope          = domain.ErrInvalidScope
	ErrInvalidLimit          = domain.ErrInvalidLimit
	ErrNotFound              = domain.ErrNotFound
	ErrIndexNotFound         = domain.ErrIndexNotFound
	ErrIndexUnavailable      = domain.ErrIndexUnavailable
	ErrAllIndicesUnavailable = domain.ErrAllIndicesUnavailable
	ErrMalformedHit          = domain.ErrMalformedHit
)
