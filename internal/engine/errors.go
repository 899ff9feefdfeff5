package engine

import "errors"

// Sentinel errors for engine operations.
var (
	ErrIndexNotFound = errors.New("engine: index not found")
	ErrIndexExists   = errors.New("engine: index already exists")
)

// Op constants map to engine command names for error context.
const (
	OpCreateIndex = "FT.CREATE"
	OpDropIndex   = "FT.DROPINDEX"
	OpIndexInfo   = "FT.INFO"
	OpSearch      = "FT.SEARCH"
	OpHSet        = "HSET"
	OpDel         = "DEL"
	OpScan        = "SCAN"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
