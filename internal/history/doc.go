// Package history persists a ledger of tool invocations in SQLite.
//
// The Store manages database connections, schema initialization, and the
// record lifecycle. Each record captures one transcode, frame, frames, or
// concat run: the exact argument vector handed to the external binary, the
// paths involved, a codec summary, sizes, wall time, and the outcome.
//
// The ledger is advisory. Callers record after the fact and treat write
// failures as warnings; a broken history database never blocks an encode.
// Schema changes bump the version in schema.go; users clear the database to
// adopt the new schema.
package history
