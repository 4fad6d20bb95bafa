// Package gate implements the two-tier level gate.
//
// The first tier is a build-time floor chosen with a build tag:
//
//	go build -tags sinklog_min_warn ./...
//
// BuildLevel, HasBuildLevel and the TraceCompiled .. CriticalCompiled
// constants follow from the tag. Code guarded by a false constant is
// eliminated by the compiler, and logger entry points check Compiled before
// doing any work, so a compiled-out level costs one constant branch.
//
// The second tier is a Gate, a runtime cell consulted again when a message
// is emitted. Its effective level resolves, highest priority first, from an
// explicit SetLevel call, the SINKLOG_LEVEL environment variable (read once,
// and only when no build tag was given), the build-time level, and finally
// InfoLevel.
package gate
