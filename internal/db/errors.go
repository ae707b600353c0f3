package db

import "errors"

// ErrInvalidOutcome is returned for outcomes outside the known set.
var ErrInvalidOutcome = errors.New("invalid link outcome")
