package gate

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/philipp01105/sinklog/core"
)

// DefaultEnvVar seeds the runtime level when no build-time level is set.
const DefaultEnvVar = "SINKLOG_LEVEL"

// Compile-time switches for each level. Guarding a call site with one of
// these lets the compiler drop it, arguments included:
//
//	if gate.DebugCompiled {
//		log.Debug("state ", expensiveDump()).Emit()
//	}
const (
	TraceCompiled    = core.TraceLevel >= BuildLevel
	DebugCompiled    = core.DebugLevel >= BuildLevel
	InfoCompiled     = core.InfoLevel >= BuildLevel
	WarnCompiled     = core.WarnLevel >= BuildLevel
	ErrorCompiled    = core.ErrorLevel >= BuildLevel
	CriticalCompiled = core.CriticalLevel >= BuildLevel
)

// unset marks an empty override or seed cell.
const unset = int32(core.OffLevel)

// Compiled reports whether level survives the build-time floor. With a
// constant argument it folds to a constant.
func Compiled(level core.Level) bool {
	return level >= BuildLevel && level < core.OffLevel
}

// Option configures a Gate.
type Option func(*Gate)

// WithEnvVar changes the environment variable used as the seed.
func WithEnvVar(name string) Option {
	return func(g *Gate) {
		g.envVar = name
	}
}

// WithLookup replaces os.LookupEnv, mostly for tests.
func WithLookup(lookup func(string) (string, bool)) Option {
	return func(g *Gate) {
		if lookup != nil {
			g.lookup = lookup
		}
	}
}

// Gate resolves the effective minimum level. It is safe for concurrent use;
// reads are a couple of atomic loads.
type Gate struct {
	override atomic.Int32

	envVar string
	lookup func(string) (string, bool)
	seedMu sync.Mutex
	seeded atomic.Bool
	seed   atomic.Int32
}

// New creates a Gate with no runtime override.
func New(opts ...Option) *Gate {
	g := &Gate{
		envVar: DefaultEnvVar,
		lookup: os.LookupEnv,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	g.override.Store(unset)
	g.seed.Store(unset)
	return g
}

// Effective returns the level currently in force. Priority: runtime
// override, environment seed (only without a build-time level), build-time
// level, InfoLevel.
func (g *Gate) Effective() core.Level {
	if o := g.override.Load(); o != unset {
		return core.Level(o)
	}
	if !HasBuildLevel {
		if s := g.envSeed(); s != unset {
			return core.Level(s)
		}
		return core.InfoLevel
	}
	return BuildLevel
}

// Enabled reports whether a message at level passes both the build-time
// floor and the live effective level.
func (g *Gate) Enabled(level core.Level) bool {
	return Compiled(level) && level >= g.Effective()
}

// SetLevel installs a runtime override. OffLevel clears it, handing control
// back to the seed and build-time level. Out-of-range values are stored as
// given and compared numerically.
func (g *Gate) SetLevel(level core.Level) {
	g.override.Store(int32(level))
}

// Override returns the runtime override, if one is set.
func (g *Gate) Override() (core.Level, bool) {
	o := g.override.Load()
	return core.Level(o), o != unset
}

// Reset clears the override and forgets the environment seed so it is read
// again on next use.
func (g *Gate) Reset() {
	g.seedMu.Lock()
	g.override.Store(unset)
	g.seed.Store(unset)
	g.seeded.Store(false)
	g.seedMu.Unlock()
}

func (g *Gate) envSeed() int32 {
	if g.seeded.Load() {
		return g.seed.Load()
	}
	g.seedMu.Lock()
	defer g.seedMu.Unlock()
	if g.seeded.Load() {
		return g.seed.Load()
	}
	seed := unset
	if value, ok := g.lookup(g.envVar); ok {
		if level, ok := core.ParseLevel(value); ok && level != core.OffLevel {
			seed = int32(level)
		}
	}
	g.seed.Store(seed)
	g.seeded.Store(true)
	return seed
}

var defaultGate = New()

// Default returns the process-wide Gate.
func Default() *Gate {
	return defaultGate
}

// SetLevel sets the runtime override on the process-wide Gate.
func SetLevel(level core.Level) {
	defaultGate.SetLevel(level)
}

// Effective returns the effective level of the process-wide Gate.
func Effective() core.Level {
	return defaultGate.Effective()
}
