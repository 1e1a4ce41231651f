// Package preflight provides readiness checks for the filesystem paths and
// external binaries sprocket depends on.
//
// Commands that write media run the relevant checks before compiling an
// argument vector, so a doomed invocation fails in milliseconds instead of
// after a long encode. The "deps" command reuses the same check functions to
// display tool availability.
package preflight
