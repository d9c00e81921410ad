// Package organizer drives a single organize pass: scan the source
// directory's immediate children, classify each eligible file, and move it
// into the Autosort tree under its category folder, recording every applied
// change so the run can be undone. Failures are isolated per file; one bad
// file never aborts the batch.
package organizer
