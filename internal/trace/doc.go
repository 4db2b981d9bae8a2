// Package trace records what the pixelwalle pipeline is doing.
//
// Tracing helps to see which phase a slow or stuck script is in: a goto
// loop that never ends shows up as an open "execute" span followed by
// heartbeats only.
//
// # Usage
//
//	pixelwalle run --trace=- --trace-level=step drawing.pw
//
// # Tracers
//
//   - Nop: zero-overhead no-op tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer dumped after an internal fault
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only crash dumps
//   - LevelPhase: driver and pass boundaries (lex, parse, check, execute)
//   - LevelScript: per-file events in batch checks
//   - LevelStep: everything, including interpreter jumps
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
