//go:build sinklog_min_error

package gate

import "github.com/philipp01105/sinklog/core"

// BuildLevel is the build-time floor selected by the sinklog_min_error tag.
const BuildLevel = core.ErrorLevel

// HasBuildLevel reports whether a sinklog_min_* build tag was given.
const HasBuildLevel = true
