// Package runlog keeps a SQLite-backed history of organize runs: what was
// scanned, how much moved, and which journal transaction a run produced.
// The undo journal answers "what can I revert"; the run log answers "what
// happened", including dry runs that never touched the journal.
package runlog
