package throttle

import (
	"runtime"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"k8s.io/utils/clock"
)

// Key identifies a throttled call site.
type Key uint64

// KeyOf derives the key of a source location.
func KeyOf(file string, line int) Key {
	h := xxhash.Sum64String(file)
	h ^= uint64(line) * 0x9e3779b97f4a7c15
	h ^= h >> 29
	return Key(h)
}

// KeyString derives a key from an arbitrary identity, for call sites that
// are not tied to a source line.
func KeyString(s string) Key {
	return Key(xxhash.Sum64String(s))
}

// CallerKey returns the key of the caller skip frames above CallerKey.
func CallerKey(skip int) Key {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return KeyOf("", 0)
	}
	return KeyOf(file, line)
}

// Option configures a Throttle.
type Option func(*Throttle)

// WithClock sets the time source used by CheckEvery.
func WithClock(c clock.PassiveClock) Option {
	return func(t *Throttle) {
		if c != nil {
			t.clock = c
		}
	}
}

// Throttle tracks which call sites already emitted ("once") and when each
// rate-limited call site last emitted ("every"). Both collections only grow
// unless Prune or Reset is called.
type Throttle struct {
	clock clock.PassiveClock

	onceMu sync.Mutex
	once   map[Key]struct{}

	everyMu sync.Mutex
	every   map[Key]time.Time
}

// New creates an empty Throttle.
func New(opts ...Option) *Throttle {
	t := &Throttle{
		clock: clock.RealClock{},
		once:  make(map[Key]struct{}),
		every: make(map[Key]time.Time),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// CheckAndMarkOnce returns true for the first call with key and false for
// every call after it.
func (t *Throttle) CheckAndMarkOnce(key Key) bool {
	t.onceMu.Lock()
	defer t.onceMu.Unlock()
	if _, seen := t.once[key]; seen {
		return false
	}
	t.once[key] = struct{}{}
	return true
}

// CheckEvery returns true on the first call with key, or when at least
// interval has passed since the last call that returned true. The check and
// the timestamp update happen under one lock, so concurrent callers cannot
// both win the same window.
func (t *Throttle) CheckEvery(key Key, interval time.Duration) bool {
	now := t.clock.Now()
	t.everyMu.Lock()
	defer t.everyMu.Unlock()
	if last, seen := t.every[key]; seen && now.Sub(last) < interval {
		return false
	}
	t.every[key] = now
	return true
}

// Prune forgets every-entries whose last emission is older than age and
// returns how many were dropped. Only safe when age is at least the longest
// interval passed to CheckEvery; shorter ages let a site emit early.
func (t *Throttle) Prune(age time.Duration) int {
	now := t.clock.Now()
	t.everyMu.Lock()
	defer t.everyMu.Unlock()
	n := 0
	for k, last := range t.every {
		if now.Sub(last) >= age {
			delete(t.every, k)
			n++
		}
	}
	return n
}

// Len returns the number of tracked once and every keys.
func (t *Throttle) Len() (once, every int) {
	t.onceMu.Lock()
	once = len(t.once)
	t.onceMu.Unlock()
	t.everyMu.Lock()
	every = len(t.every)
	t.everyMu.Unlock()
	return once, every
}

// Reset forgets all keys.
func (t *Throttle) Reset() {
	t.onceMu.Lock()
	clear(t.once)
	t.onceMu.Unlock()
	t.everyMu.Lock()
	clear(t.every)
	t.everyMu.Unlock()
}

var defaultThrottle = New()

// Default returns the process-wide Throttle.
func Default() *Throttle {
	return defaultThrottle
}
