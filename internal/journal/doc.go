// Package journal records organize runs as transactions and replays them in
// reverse to undo.
//
// A transaction is OPEN while operations accumulate in memory, COMMITTED
// once persisted, and deleted outright after a rollback, so each run can be
// undone exactly once. Persistence is a whole-file JSON overwrite trimmed to
// the newest entries; a missing or corrupt journal degrades to an empty
// history rather than an error.
//
// Undo tolerates drift between organize and rollback. A moved file
// that has disappeared fails only its own operation; a re-occupied source
// location is either deduplicated (same size, mtime within a second) or
// restored under a disambiguated name; directories created by the run are
// removed only while still empty.
package journal
