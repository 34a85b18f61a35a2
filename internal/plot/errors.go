package plot

import "errors"

// Sentinel kinds for plotting errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported plot format")
	ErrNilVariable       = errors.New("nil variable")
)
