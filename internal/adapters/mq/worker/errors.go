package worker

import "errors"

// ErrDrainTimeout reports workers that had to be stopped before the queue drained.
var ErrDrainTimeout = errors.New("activity drain timed out")
