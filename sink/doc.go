// Package sink defines the output side of sinklog.
//
// A Sink receives fully formatted text together with the message level and
// applies its own minimum level. The Registry fans every emitted message out
// to all registered sinks in insertion order:
//
//	reg := sink.NewRegistry()
//	reg.Add(consolesink.New(consolesink.Config{Level: core.InfoLevel}))
//	file, err := filesink.New(filesink.Config{Filename: "app.log", Level: core.TraceLevel})
//	if err != nil {
//	    return err
//	}
//	reg.Add(file)
//	defer reg.Close()
//
// Sinks are independent: a sink below its threshold is never called, and a
// sink whose formatter or Write fails or panics is reported to the registry's
// error output while the others still receive the message.
//
// Sinks that embed Base keep delivery counters which a Collector exports as
// prometheus metrics.
package sink
