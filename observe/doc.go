// Package observe provides observability primitives for LLM calls.
//
// It is a pure instrumentation library: no execution, no transport, no I/O
// beyond exporter setup. The client wires an Instrumentation into its call
// path to get one span, one metrics record, and one summary log line per
// logical call, with token and cost accounting attached as streams settle.
package observe
