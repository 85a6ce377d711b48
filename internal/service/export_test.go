package service

import "time"

// SetNow replaces the clock of the package until restore is called.
func SetNow(f func() time.Time) (restore func()) {
	old := now
	now = f
	return func() { now = old }
}
