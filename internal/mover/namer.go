package mover

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxNameAttempts bounds the numbered-suffix probe before falling back to a
// timestamp suffix, so a directory pre-seeded with thousands of collisions
// cannot stall a run.
const maxNameAttempts = 1000

// UniquePath returns destination unchanged when it is free, otherwise the
// first free stem_1.ext, stem_2.ext, ... slot, falling back to a unix
// timestamp suffix once the numbered slots run out. The probe only reads
// existence and never reserves the name.
func UniquePath(destination string) string {
	return probe(destination, "")
}

// RestoredPath picks a source-side name for an undone move whose original
// location has been re-occupied, using the same bounded probe with a
// "restored" marker in the suffix.
func RestoredPath(source string) string {
	return probe(source, "restored_")
}

func probe(target, marker string) string {
	if marker == "" && !exists(target) {
		return target
	}
	dir := filepath.Dir(target)
	base := filepath.Base(target)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for attempt := 1; attempt <= maxNameAttempts; attempt++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%s%d%s", stem, marker, attempt, ext))
		if !exists(candidate) {
			return candidate
		}
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s%d%s", stem, marker, time.Now().Unix(), ext))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
