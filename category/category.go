package category

import (
	"path"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/gate"
)

// Separator splits a category into its segments.
const Separator = "."

const subtreeSuffix = Separator + "*"

// glob is a general wildcard pattern kept in resolution order.
type glob struct {
	pattern string
	// match is the pattern with dots turned into slashes so path.Match
	// keeps "*" inside a single segment.
	match string
	// subtree is set when the pattern ends in ".*" (zero or more trailing
	// segments); match then holds only the part before it.
	subtree  bool
	literals int
	level    core.Level
}

// Registry maps category patterns to levels. It is safe for concurrent use.
type Registry struct {
	gate *gate.Gate

	mu       sync.RWMutex
	exact    map[string]core.Level
	subtrees map[string]core.Level // "prefix.*" keyed by prefix
	globs    []glob

	// min is the lowest level of any pattern, OffLevel when empty.
	min atomic.Int32
}

// New creates a Registry that falls back to g. A nil g uses gate.Default().
func New(g *gate.Gate) *Registry {
	if g == nil {
		g = gate.Default()
	}
	r := &Registry{
		gate:     g,
		exact:    make(map[string]core.Level),
		subtrees: make(map[string]core.Level),
	}
	r.min.Store(int32(core.OffLevel))
	return r
}

// Gate returns the gate used for categories without an override.
func (r *Registry) Gate() *gate.Gate {
	return r.gate
}

// SetLevel assigns level to pattern, replacing any earlier value. Empty
// patterns are ignored.
func (r *Registry) SetLevel(pattern string, level core.Level) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case !strings.Contains(pattern, "*"):
		r.exact[pattern] = level
	case isSubtree(pattern):
		r.subtrees[strings.TrimSuffix(pattern, subtreeSuffix)] = level
	default:
		r.setGlob(pattern, level)
	}
	r.updateMin()
}

// Remove deletes pattern and reports whether it was registered.
func (r *Registry) Remove(pattern string) bool {
	pattern = strings.TrimSpace(pattern)
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.updateMin()

	switch {
	case !strings.Contains(pattern, "*"):
		if _, ok := r.exact[pattern]; ok {
			delete(r.exact, pattern)
			return true
		}
	case isSubtree(pattern):
		prefix := strings.TrimSuffix(pattern, subtreeSuffix)
		if _, ok := r.subtrees[prefix]; ok {
			delete(r.subtrees, prefix)
			return true
		}
	default:
		for i := range r.globs {
			if r.globs[i].pattern == pattern {
				r.globs = append(r.globs[:i], r.globs[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Clear removes every pattern.
func (r *Registry) Clear() {
	r.mu.Lock()
	clear(r.exact)
	clear(r.subtrees)
	r.globs = nil
	r.min.Store(int32(core.OffLevel))
	r.mu.Unlock()
}

// Level returns the override that applies to category, if any. Resolution
// order: exact name, then "<ancestor>.*" from the category itself up to its
// root segment, then general wildcards.
func (r *Registry) Level(category string) (core.Level, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if l, ok := r.exact[category]; ok {
		return l, true
	}
	if len(r.subtrees) > 0 {
		for prefix := category; prefix != ""; {
			if l, ok := r.subtrees[prefix]; ok {
				return l, true
			}
			i := strings.LastIndex(prefix, Separator)
			if i < 0 {
				break
			}
			prefix = prefix[:i]
		}
	}
	if len(r.globs) > 0 {
		target := strings.ReplaceAll(category, Separator, "/")
		for i := range r.globs {
			if r.globs[i].matches(target) {
				return r.globs[i].level, true
			}
		}
	}
	return 0, false
}

// Effective returns the category override, or the gate's effective level
// when none applies.
func (r *Registry) Effective(category string) core.Level {
	if l, ok := r.Level(category); ok {
		return l
	}
	return r.gate.Effective()
}

// ShouldLog reports whether a message at level in category passes. The
// build-time floor always applies, even under a more permissive override.
func (r *Registry) ShouldLog(category string, level core.Level) bool {
	if !gate.Compiled(level) {
		return false
	}
	return level >= r.Effective(category)
}

// MinLevel returns the most permissive level of any registered pattern.
// A message below both MinLevel and the gate's effective level cannot pass
// for any category.
func (r *Registry) MinLevel() (core.Level, bool) {
	m := r.min.Load()
	return core.Level(m), m != int32(core.OffLevel)
}

// updateMin recomputes min; r.mu must be held for writing.
func (r *Registry) updateMin() {
	lowest := int32(core.OffLevel)
	note := func(l core.Level) {
		if int32(l) < lowest {
			lowest = int32(l)
		}
	}
	for _, l := range r.exact {
		note(l)
	}
	for _, l := range r.subtrees {
		note(l)
	}
	for _, g := range r.globs {
		note(g.level)
	}
	r.min.Store(lowest)
}

// Patterns returns a snapshot of every registered pattern.
func (r *Registry) Patterns() map[string]core.Level {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]core.Level, len(r.exact)+len(r.subtrees)+len(r.globs))
	for k, v := range r.exact {
		out[k] = v
	}
	for k, v := range r.subtrees {
		out[k+subtreeSuffix] = v
	}
	for _, g := range r.globs {
		out[g.pattern] = g.level
	}
	return out
}

func (r *Registry) setGlob(pattern string, level core.Level) {
	for i := range r.globs {
		if r.globs[i].pattern == pattern {
			r.globs[i].level = level
			return
		}
	}
	g := glob{pattern: pattern, level: level}
	body := pattern
	switch {
	case strings.HasSuffix(body, subtreeSuffix):
		body = strings.TrimSuffix(body, subtreeSuffix)
		g.subtree = true
	case body == "*":
		// A lone "*" covers every category, nested or not.
		g.subtree = true
	}
	g.match = strings.ReplaceAll(body, Separator, "/")
	for _, seg := range strings.Split(body, Separator) {
		if !strings.ContainsAny(seg, "*?[") {
			g.literals++
		}
	}
	r.globs = append(r.globs, g)
	sort.SliceStable(r.globs, func(i, j int) bool {
		a, b := r.globs[i], r.globs[j]
		if a.literals != b.literals {
			return a.literals > b.literals
		}
		return a.pattern < b.pattern
	})
}

func (g *glob) matches(target string) bool {
	if !g.subtree {
		ok, err := path.Match(g.match, target)
		return err == nil && ok
	}
	// "head.*": head must match the category or one of its ancestors.
	for prefix := target; prefix != ""; {
		if ok, err := path.Match(g.match, prefix); err == nil && ok {
			return true
		}
		i := strings.LastIndexByte(prefix, '/')
		if i < 0 {
			return false
		}
		prefix = prefix[:i]
	}
	return false
}

// isSubtree reports whether pattern is a plain "prefix.*" with a literal
// prefix.
func isSubtree(pattern string) bool {
	prefix, ok := strings.CutSuffix(pattern, subtreeSuffix)
	return ok && prefix != "" && !strings.ContainsAny(prefix, "*?[")
}

var defaultRegistry = New(nil)

// Default returns the process-wide Registry, backed by gate.Default().
func Default() *Registry {
	return defaultRegistry
}
