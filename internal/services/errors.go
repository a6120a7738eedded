package services

import "errors"

// ErrInvalidInput reports arguments with the wrong shape, such as a
// travel-time list that does not have one entry per leg.
var ErrInvalidInput = errors.New("invalid input")
