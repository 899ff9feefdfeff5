package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery signals an empty or unparseable search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidScope signals a scope outside {all, civil, criminal}.
	ErrInvalidScope = errors.New("invalid scope")
	// ErrInvalidLimit signals an unusable limit or offset parameter.
	ErrInvalidLimit = errors.New("invalid limit")
	// ErrNotFound signals a missing law or article.
	ErrNotFound = errors.New("not found")
	// ErrIndexNotFound signals an index name the engine does not know.
	// This is a configuration error, never an empty result.
	ErrIndexNotFound = errors.New("index not found")
	// ErrIndexUnavailable signals a transient engine failure or timeout.
	ErrIndexUnavailable = errors.New("index unavailable")
	// ErrAllIndicesUnavailable signals that every targeted index failed.
	ErrAllIndicesUnavailable = errors.New("all indices unavailable")
	// ErrMalformedHit signals an engine hit missing required fields.
	ErrMalformedHit = errors.New("malformed hit")
)

// InvalidParamError wraps a validation sentinel with the offending parameter.
type InvalidParamError struct {
	sentinel error
	Param    string
	Value    string
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf("%s: %s=%q", e.sentinel.Error(), e.Param, e.Value)
}

func (e *InvalidParamError) Unwrap() error { return e.sentinel }

// NewInvalidParam creates a validation error naming the offending parameter.
func NewInvalidParam(sentinel error, param, value string) error {
	return &InvalidParamError{sentinel: sentinel, Param: param, Value: value}
}
