//go:build sinklog_min_debug

package gate

import "github.com/philipp01105/sinklog/core"

// BuildLevel is the build-time floor selected by the sinklog_min_debug tag.
const BuildLevel = core.DebugLevel

// HasBuildLevel reports whether a sinklog_min_* build tag was given.
const HasBuildLevel = true
