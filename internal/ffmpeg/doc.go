// Package ffmpeg models transcode, frame-extraction, and concatenation
// operations as immutable value objects and compiles them into the exact
// ordered argument vectors the ffmpeg binary expects.
//
// The compilers are pure: no I/O, no retained state, deterministic output for
// equal specs. Codec families are closed variant sets; the compiler
// dispatches exhaustively and surfaces an unsupported-variant error rather
// than guessing when a value falls outside the known set. The Client runs
// compiled vectors and decodes the machine-readable progress stream; it is
// the only part of the package that touches a process.
package ffmpeg
