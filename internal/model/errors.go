package model

import "errors"

// ErrNoValidWorkingTime is returned when a person has no working time
// valid at the requested date.
var ErrNoValidWorkingTime = errors.New("no valid working time")
