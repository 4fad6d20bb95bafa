// Package logger is the public API of sinklog. Most users only need to
// import this package.
//
// Every level method returns a *Message. The arguments are rendered
// right away and concatenated without separators; chained modifiers add
// color, fields, throttling or a category, and Emit writes the line:
//
//	logger.Info("listening on ", addr).Str("proto", "tcp").Emit()
//	logger.Warn("queue ", n, " deep").Category("worker.queue").Every(time.Second).Emit()
//	logger.Error("lost connection").Color(color.FgRed).Bold().Once().Emit()
//
// Emit can be deferred. It writes at most once, and a message handed to
// another function with Move is disarmed in the caller.
//
// Two checks decide whether a message is written. When it is created, the
// build-time floor (see package gate) and the runtime settings rule out
// levels that no category could enable; the method then returns nil and
// renders nothing. On Emit, the category override (or the gate, for
// untagged messages) is consulted again, so changes between creation and
// emission take effect.
//
// A Logger is immutable after construction. The Builder wires its gate,
// sink registry, category registry and throttle:
//
//	log := logger.NewBuilder().
//	    WithLevel(logger.DebugLevel).
//	    WithSink(consolesink.New(consolesink.Config{})).
//	    WithCategoryLevel("db.*", logger.WarnLevel).
//	    Build()
//
// The default logger used by the package-level functions shares the
// process-wide instances of each package and writes to stdout.
//
// Level checks happen before any rendering, so a message disabled at
// runtime costs an atomic load and a comparison plus boxing of its
// non-constant arguments. Levels removed with a sinklog_min_<level> build
// tag cost nothing; guard expensive arguments the same way:
//
//	if gate.DebugCompiled {
//	    log.Debug("state ", dump(state)).Emit()
//	}
package logger
