// Package mover implements the single-file move primitive and the collision
// naming policy shared by organize and undo.
//
// Moves are precondition-checked and report failure through the returned
// outcome rather than an error, keeping batch runs fault-isolated. Naming
// probes are pure reads; callers own the race window between probing a name
// and using it.
package mover
