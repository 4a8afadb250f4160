// Package reportstore persists evaluation run history in a local SQLite
// database. The engine itself owns no storage; this store belongs to the
// CLI layer so repeated invocations can list and compare past runs.
// Writes are serialized across processes with a file lock because several
// CLI invocations may share one report directory.
package reportstore
