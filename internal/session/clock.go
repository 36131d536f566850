package session

import "time"

// Clock abstracts time so turn timestamps can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// SystemClock is the default clock implementation.
var SystemClock Clock = realClock{}
