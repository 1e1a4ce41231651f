// Package main hosts the sprocket CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into compiled
// FFmpeg argument vectors, probe requests, history ledger access, and
// configuration scaffolding. It centralizes configuration resolution and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
// The compiler and parsers stay pure; all I/O decisions live at this layer.
package main
