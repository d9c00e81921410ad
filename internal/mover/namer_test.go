package mover_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"autosort/internal/mover"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestUniquePathReturnsFreeDestinationUnchanged(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "photo.jpg")
	if got := mover.UniquePath(dest); got != dest {
		t.Fatalf("expected unchanged path, got %q", got)
	}
}

func TestUniquePathNumbersCollisions(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "photo.jpg"))

	first := mover.UniquePath(filepath.Join(dir, "photo.jpg"))
	if first != filepath.Join(dir, "photo_1.jpg") {
		t.Fatalf("expected photo_1.jpg, got %q", first)
	}

	touch(t, first)
	second := mover.UniquePath(filepath.Join(dir, "photo.jpg"))
	if second != filepath.Join(dir, "photo_2.jpg") {
		t.Fatalf("expected photo_2.jpg, got %q", second)
	}
}

func TestUniquePathKeepsOnlyFinalExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "bundle.tar.gz"))
	got := mover.UniquePath(filepath.Join(dir, "bundle.tar.gz"))
	if got != filepath.Join(dir, "bundle.tar_1.gz") {
		t.Fatalf("expected bundle.tar_1.gz, got %q", got)
	}
}

func TestUniquePathFallsBackToTimestamp(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "note.txt"))
	for i := 1; i <= 1000; i++ {
		touch(t, filepath.Join(dir, fmt.Sprintf("note_%d.txt", i)))
	}

	got := mover.UniquePath(filepath.Join(dir, "note.txt"))
	base := filepath.Base(got)
	if !strings.HasPrefix(base, "note_") || !strings.HasSuffix(base, ".txt") {
		t.Fatalf("unexpected fallback name: %q", base)
	}
	if _, err := os.Stat(got); err == nil {
		t.Fatalf("fallback name already taken: %q", got)
	}
	suffix := strings.TrimSuffix(strings.TrimPrefix(base, "note_"), ".txt")
	if len(suffix) < 10 {
		t.Fatalf("expected timestamp suffix, got %q", suffix)
	}
}

func TestRestoredPathUsesMarker(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "report.pdf"))

	got := mover.RestoredPath(filepath.Join(dir, "report.pdf"))
	if got != filepath.Join(dir, "report_restored_1.pdf") {
		t.Fatalf("expected report_restored_1.pdf, got %q", got)
	}

	touch(t, got)
	next := mover.RestoredPath(filepath.Join(dir, "report.pdf"))
	if next != filepath.Join(dir, "report_restored_2.pdf") {
		t.Fatalf("expected report_restored_2.pdf, got %q", next)
	}
}
