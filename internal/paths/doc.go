// Package paths resolves the user directories autosort works against and
// validates organize sources before any file is touched.
//
// The resolver probes localized folder names (Escritorio, Bureau,
// Téléchargements, ...) so Desktop and Downloads shortcuts work on
// non-English systems, and tests writability by creating and removing a
// marker file rather than trusting permission bits.
package paths
