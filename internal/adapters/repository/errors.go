package repository

import "errors"

// Sentinel kinds for activity store errors.
var (
	ErrInvalidLimit = errors.New("invalid activity limit")
	ErrClosed       = errors.New("activity store closed")
	ErrOpen         = errors.New("open activity store failed")
)
