//go:build sinklog_min_info

package gate

import "github.com/philipp01105/sinklog/core"

// BuildLevel is the build-time floor selected by the sinklog_min_info tag.
const BuildLevel = core.InfoLevel

// HasBuildLevel reports whether a sinklog_min_* build tag was given.
const HasBuildLevel = true
