package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInputNotFound     = errors.New("input file not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrDateParse         = errors.New("date parse failure")
	ErrNoData            = errors.New("no data")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrModel             = errors.New("model error")
)
