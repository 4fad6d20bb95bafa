package core

import (
	"sync"
	"sync/atomic"
	"time"

	"k8s.io/utils/clock"
)

const coarseResolution = 500 * time.Microsecond

var (
	coarseClockOnce sync.Once
	coarseNow       atomic.Pointer[time.Time]
)

// CoarseClock is a clock.PassiveClock whose Now is refreshed by a single
// background ticker instead of calling time.Now on every log call.
type CoarseClock struct{}

var _ clock.PassiveClock = CoarseClock{}

// StartCoarseClock starts the refresh goroutine exactly once and returns
// the clock. The goroutine lives for the rest of the process.
func StartCoarseClock() CoarseClock {
	coarseClockOnce.Do(func() {
		t := time.Now()
		coarseNow.Store(&t)
		go func() {
			ticker := time.NewTicker(coarseResolution)
			for range ticker.C {
				t := time.Now()
				coarseNow.Store(&t)
			}
		}()
	})
	return CoarseClock{}
}

// Now returns the most recently cached time.
func (CoarseClock) Now() time.Time {
	if t := coarseNow.Load(); t != nil {
		return *t
	}
	return time.Now()
}

// Since returns the time elapsed since t according to the cached clock.
func (c CoarseClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}
