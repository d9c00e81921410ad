package journal_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"autosort/internal/faults"
	"autosort/internal/journal"
	"autosort/internal/testsupport"
)

// applyMove performs the organize-side half of a move so undo has something
// real to reverse.
func applyMove(t *testing.T, source, dest string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(source, dest); err != nil {
		t.Fatal(err)
	}
}

func TestUndoLastRestoresMovedFileAndTree(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := journal.NewManager(cfg, nil, nil)

	base := t.TempDir()
	source := filepath.Join(base, "report.pdf")
	root := filepath.Join(base, "Autosort")
	destDir := filepath.Join(root, "Documents", "PDFs")
	dest := filepath.Join(destDir, "report.pdf")
	testsupport.WriteFileString(t, source, "contents")
	applyMove(t, source, dest)

	id := m.Begin("Organized " + base)
	m.Record(id, journal.NewCreateDir(root))
	m.Record(id, journal.NewCreateDir(filepath.Join(root, "Documents")))
	m.Record(id, journal.NewCreateDir(destDir))
	m.Record(id, journal.NewMove(source, dest))
	if !m.Commit(id) {
		t.Fatal("Commit failed")
	}

	res, err := m.UndoLast()
	if err != nil {
		t.Fatalf("UndoLast: %v", err)
	}
	if !res.Complete() {
		t.Fatalf("expected clean undo, failures: %v", res.Failures)
	}
	if res.Undone != 4 {
		t.Fatalf("expected 4 operations undone, got %d", res.Undone)
	}
	if _, err := os.Stat(source); err != nil {
		t.Fatalf("expected file restored at source: %v", err)
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Fatal("expected created directory tree removed")
	}
	if m.UndoInfo().CanUndo {
		t.Fatal("expected transaction to be consumed")
	}
	if _, err := m.UndoLast(); !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second undo, got %v", err)
	}
}

func TestUndoMissingDestinationFailsOperation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := journal.NewManager(cfg, nil, nil)

	base := t.TempDir()
	source := filepath.Join(base, "notes.txt")
	dest := filepath.Join(base, "Autosort", "Text", "notes.txt")
	testsupport.WriteFileString(t, source, "x")
	applyMove(t, source, dest)

	id := m.Begin("Organized " + base)
	m.Record(id, journal.NewMove(source, dest))
	m.Commit(id)

	if err := os.Remove(dest); err != nil {
		t.Fatal(err)
	}

	res, err := m.UndoLast()
	if err != nil {
		t.Fatalf("UndoLast: %v", err)
	}
	if res.Complete() || res.Failed != 1 {
		t.Fatalf("expected one failed operation, got %+v", res)
	}
	if len(res.Failures) != 1 {
		t.Fatalf("expected a failure detail, got %v", res.Failures)
	}
	if len(m.History()) != 0 {
		t.Fatal("expected transaction removed despite failure")
	}
}

func TestUndoRemovesDuplicateAtSource(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := journal.NewManager(cfg, nil, nil)

	base := t.TempDir()
	source := filepath.Join(base, "photo.jpg")
	dest := filepath.Join(base, "Autosort", "Images", "photo.jpg")
	testsupport.WriteFileString(t, source, "same bytes")
	applyMove(t, source, dest)

	id := m.Begin("Organized " + base)
	m.Record(id, journal.NewMove(source, dest))
	m.Commit(id)

	// The user has since restored an identical copy at the old path.
	testsupport.WriteFileString(t, source, "same bytes")
	stamp := time.Now()
	if err := os.Chtimes(source, stamp, stamp); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(dest, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	res, err := m.UndoLast()
	if err != nil {
		t.Fatalf("UndoLast: %v", err)
	}
	if !res.Complete() {
		t.Fatalf("expected clean undo, failures: %v", res.Failures)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatal("expected duplicate copy removed")
	}
	if _, err := os.Stat(source); err != nil {
		t.Fatalf("expected user's copy untouched: %v", err)
	}
}

func TestUndoRestoresUnderNewNameWhenSourceDiffers(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := journal.NewManager(cfg, nil, nil)

	base := t.TempDir()
	source := filepath.Join(base, "draft.txt")
	dest := filepath.Join(base, "Autosort", "Text", "draft.txt")
	testsupport.WriteFileString(t, source, "original")
	applyMove(t, source, dest)

	id := m.Begin("Organized " + base)
	m.Record(id, journal.NewMove(source, dest))
	m.Commit(id)

	// A different file now occupies the old path.
	testsupport.WriteFileString(t, source, "a replacement with different length")

	res, err := m.UndoLast()
	if err != nil {
		t.Fatalf("UndoLast: %v", err)
	}
	if !res.Complete() {
		t.Fatalf("expected clean undo, failures: %v", res.Failures)
	}
	restored := filepath.Join(base, "draft_restored_1.txt")
	got, err := os.ReadFile(restored)
	if err != nil {
		t.Fatalf("expected restored copy: %v", err)
	}
	if string(got) != "original" {
		t.Fatalf("restored wrong content: %q", got)
	}
	replacement, err := os.ReadFile(source)
	if err != nil {
		t.Fatal(err)
	}
	if string(replacement) != "a replacement with different length" {
		t.Fatal("replacement file was clobbered")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatal("expected moved copy gone from destination")
	}
}

func TestUndoKeepsNonEmptyDirectory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := journal.NewManager(cfg, nil, nil)

	base := t.TempDir()
	dir := filepath.Join(base, "Autosort", "Documents")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	id := m.Begin("Organized " + base)
	m.Record(id, journal.NewCreateDir(dir))
	m.Commit(id)

	// The user has since put something inside.
	testsupport.WriteFileString(t, filepath.Join(dir, "keep-me.txt"), "x")

	res, err := m.UndoLast()
	if err != nil {
		t.Fatalf("UndoLast: %v", err)
	}
	if res.Complete() || res.Failed != 1 {
		t.Fatalf("expected one failed operation, got %+v", res)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected directory kept: %v", err)
	}
}

func TestDeleteOperationsAreNotUndoable(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := journal.NewManager(cfg, nil, nil)

	id := m.Begin("cleanup run")
	m.Record(id, journal.NewDelete("/tmp/source/old.tmp"))
	m.Commit(id)

	res, err := m.UndoLast()
	if err != nil {
		t.Fatalf("UndoLast: %v", err)
	}
	if res.Complete() || res.Failed != 1 {
		t.Fatalf("expected delete undo to fail, got %+v", res)
	}
	if len(m.History()) != 0 {
		t.Fatal("expected transaction consumed")
	}
}

func TestRollbackRefusesUncommittedTransaction(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := journal.NewManager(cfg, nil, nil)

	id := m.Begin("open run")
	m.Record(id, journal.NewMove("/a", "/b"))

	if _, err := m.Rollback(id); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected ErrValidation for open transaction, got %v", err)
	}
	if len(m.History()) != 1 {
		t.Fatal("expected open transaction kept")
	}
}

func TestRollbackUnknownTransaction(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	m := journal.NewManager(cfg, nil, nil)

	if _, err := m.Rollback("no-such-id"); !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
