package emath

import "errors"

// Errors shared by everything that does arithmetic on planes and
// matrices. Callers wrap them with context; test with errors.Is.
var(
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrDegenerateInput   = errors.New("degenerate input")
	ErrIndexOutOfRange   = errors.New("index out of range")
)
