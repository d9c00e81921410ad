// Package watcher keeps a directory organized continuously. It subscribes to
// filesystem events on the source directory and, after a burst of changes has
// settled, triggers a fresh organize pass. Events caused by autosort itself,
// moves into the Autosort tree and writability probes, are filtered so runs
// never feed back into themselves.
package watcher
