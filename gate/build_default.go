//go:build !sinklog_min_trace && !sinklog_min_debug && !sinklog_min_info && !sinklog_min_warn && !sinklog_min_error && !sinklog_min_critical && !sinklog_min_off

package gate

import "github.com/philipp01105/sinklog/core"

// BuildLevel is the build-time floor. Without a sinklog_min_* tag nothing
// is compiled out.
const BuildLevel = core.TraceLevel

// HasBuildLevel reports whether a sinklog_min_* build tag was given.
const HasBuildLevel = false
