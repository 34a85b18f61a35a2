package queue

import "errors"

// Sentinel kinds for queue errors.
var (
	ErrFull   = errors.New("activity queue full")
	ErrClosed = errors.New("activity queue closed")
)
