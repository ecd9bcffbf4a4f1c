package run

import "errors"

// ErrNoBenchService is returned when the benchmark service is not available.
var ErrNoBenchService = errors.New("benchmark service not available")
