// Package trace records what the qasmc pipeline is doing.
//
// Each file goes through lex, parse, validate and unroll passes; with
// tracing enabled every pass becomes a span, and the unroller adds one point
// event per resolved switch.
//
//	qasmc unroll --trace=- --trace-level=debug prog.qasm
//
// Tracers: Nop (disabled), StreamTracer (writes text or NDJSON as events
// arrive), RingTracer (keeps the last N events in memory), MultiTracer
// (fan-out).
//
// Levels gate scopes: phase shows driver and pass spans, detail adds per-file
// spans, debug adds node events.
//
// Tracers travel in context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "validate")
//	defer span.End("")
package trace
