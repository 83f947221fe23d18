package etl

import "errors"

// ErrNoResult means Export was asked for a result before any run completed.
var ErrNoResult = errors.New("no pipeline result to export yet")
