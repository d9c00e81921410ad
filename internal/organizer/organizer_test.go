package organizer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"autosort/internal/classifier"
	"autosort/internal/config"
	"autosort/internal/faults"
	"autosort/internal/journal"
	"autosort/internal/mover"
	"autosort/internal/organizer"
	"autosort/internal/paths"
	"autosort/internal/testsupport"
)

// testCategories is a compact tree with unambiguous destinations.
func testCategories() []config.Category {
	return []config.Category{
		{Name: "Documents", FolderName: "Documents", Extensions: []string{".pdf"}},
		{Name: "Images", FolderName: "Images", Extensions: []string{".jpg"}},
		{Name: "Text", FolderName: "Text", Extensions: []string{".txt"}},
	}
}

func newOrchestrator(t *testing.T, cfg *config.Config) (*organizer.Orchestrator, *journal.Manager) {
	t.Helper()
	m := journal.NewManager(cfg, nil, nil)
	cls := classifier.New(cfg, nil, nil)
	o := organizer.NewWithDependencies(cfg, paths.NewResolverAt(t.TempDir()), cls, mover.NewEngine(nil), m, nil)
	return o, m
}

func organize(t *testing.T, o *organizer.Orchestrator, source string, opts organizer.Options) *organizer.Result {
	t.Helper()
	res, err := o.Organize(context.Background(), source, opts)
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}
	return res
}

func TestOrganizeMovesFilesIntoCategories(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCategories(testCategories()...))
	o, m := newOrchestrator(t, cfg)

	source := t.TempDir()
	testsupport.WriteFileString(t, filepath.Join(source, "photo.jpg"), "jpg")
	testsupport.WriteFileString(t, filepath.Join(source, "report.pdf"), "pdf")
	testsupport.WriteFileString(t, filepath.Join(source, "weird.xyz"), "???")

	id := m.Begin("Organize " + filepath.Base(source))
	res := organize(t, o, source, organizer.Options{TransactionID: id})
	if !m.Commit(id) {
		t.Fatal("Commit failed")
	}

	if res.Processed != 3 || res.Moved != 3 || res.Errors != 0 {
		t.Fatalf("unexpected counts: %+v", res)
	}
	for _, want := range []string{
		filepath.Join(source, "Autosort", "Images", "photo.jpg"),
		filepath.Join(source, "Autosort", "Documents", "report.pdf"),
		filepath.Join(source, "Autosort", "Miscellaneous", "weird.xyz"),
	} {
		if _, err := os.Stat(want); err != nil {
			t.Fatalf("expected %s: %v", want, err)
		}
	}
	if len(res.Operations) != 3 {
		t.Fatalf("expected 3 move operations in result, got %d", len(res.Operations))
	}

	// The journal additionally holds the four created directories: the
	// Autosort root plus one folder per category.
	history := m.History()
	if len(history) != 1 {
		t.Fatalf("expected one transaction, got %d", len(history))
	}
	if history[0].OperationCount != 7 {
		t.Fatalf("expected 7 recorded operations, got %d", history[0].OperationCount)
	}
	if !history[0].Completed {
		t.Fatal("expected transaction committed")
	}
}

func TestOrganizeSecondRunIsNoOp(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCategories(testCategories()...))
	o, _ := newOrchestrator(t, cfg)

	source := t.TempDir()
	testsupport.WriteFileString(t, filepath.Join(source, "report.pdf"), "pdf")
	organize(t, o, source, organizer.Options{})

	res := organize(t, o, source, organizer.Options{})
	if res.Processed != 0 || res.Moved != 0 || res.Errors != 0 {
		t.Fatalf("expected nothing left to organize, got %+v", res)
	}
}

func TestOrganizeRoundTripWithUndo(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCategories(testCategories()...))
	o, m := newOrchestrator(t, cfg)

	source := t.TempDir()
	testsupport.WriteFileString(t, filepath.Join(source, "photo.jpg"), "jpg bytes")
	testsupport.WriteFileString(t, filepath.Join(source, "report.pdf"), "pdf bytes")

	id := m.Begin("Organize " + filepath.Base(source))
	organize(t, o, source, organizer.Options{TransactionID: id})
	m.Commit(id)

	res, err := m.UndoLast()
	if err != nil {
		t.Fatalf("UndoLast: %v", err)
	}
	if !res.Complete() {
		t.Fatalf("expected clean undo, failures: %v", res.Failures)
	}
	for _, want := range []string{
		filepath.Join(source, "photo.jpg"),
		filepath.Join(source, "report.pdf"),
	} {
		if _, err := os.Stat(want); err != nil {
			t.Fatalf("expected %s restored: %v", want, err)
		}
	}
	if _, err := os.Stat(paths.TargetRoot(source)); !os.IsNotExist(err) {
		t.Fatal("expected Autosort tree removed after undo")
	}
}

func TestOrganizePicksUniqueNameOnCollision(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCategories(testCategories()...))
	o, _ := newOrchestrator(t, cfg)

	source := t.TempDir()
	testsupport.WriteFileString(t, filepath.Join(source, "photo.jpg"), "fresh photo")
	testsupport.WriteFileString(t, filepath.Join(source, "report.pdf"), "fresh report")
	// Preexisting target tree: an empty Documents folder and an older
	// photo.jpg already in Images.
	if err := os.MkdirAll(filepath.Join(source, "Autosort", "Documents"), 0o755); err != nil {
		t.Fatal(err)
	}
	testsupport.WriteFileString(t, filepath.Join(source, "Autosort", "Images", "photo.jpg"), "older photo")

	res := organize(t, o, source, organizer.Options{})
	if res.Moved != 2 || res.Errors != 0 {
		t.Fatalf("unexpected counts: %+v", res)
	}

	got, err := os.ReadFile(filepath.Join(source, "Autosort", "Images", "photo_1.jpg"))
	if err != nil {
		t.Fatalf("expected collision renamed to photo_1.jpg: %v", err)
	}
	if string(got) != "fresh photo" {
		t.Fatalf("photo_1.jpg holds wrong content: %q", got)
	}
	old, err := os.ReadFile(filepath.Join(source, "Autosort", "Images", "photo.jpg"))
	if err != nil || string(old) != "older photo" {
		t.Fatalf("preexisting photo.jpg must stay untouched: %q, %v", old, err)
	}
	if _, err := os.Stat(filepath.Join(source, "Autosort", "Documents", "report.pdf")); err != nil {
		t.Fatalf("expected report.pdf in existing Documents folder: %v", err)
	}
}

func TestOrganizeIsolatesPerFileFailures(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCategories(testCategories()...))
	o, _ := newOrchestrator(t, cfg)

	source := t.TempDir()
	testsupport.WriteFileString(t, filepath.Join(source, "a.pdf"), "a")
	testsupport.WriteFileString(t, filepath.Join(source, "b.jpg"), "b")
	testsupport.WriteFileString(t, filepath.Join(source, "c.txt"), "c")
	// A file squats on the Documents folder path, so a.pdf cannot land.
	testsupport.WriteFileString(t, filepath.Join(source, "Autosort", "Documents"), "not a directory")

	res := organize(t, o, source, organizer.Options{})
	if res.Processed != 3 || res.Moved != 2 || res.Errors != 1 {
		t.Fatalf("unexpected counts: %+v", res)
	}
	if len(res.ErrorLog) != 1 {
		t.Fatalf("expected one error entry, got %v", res.ErrorLog)
	}
	if _, err := os.Stat(filepath.Join(source, "a.pdf")); err != nil {
		t.Fatalf("failed file must stay in place: %v", err)
	}
	if _, err := os.Stat(filepath.Join(source, "Autosort", "Images", "b.jpg")); err != nil {
		t.Fatalf("expected b.jpg moved despite earlier failure: %v", err)
	}
	if _, err := os.Stat(filepath.Join(source, "Autosort", "Text", "c.txt")); err != nil {
		t.Fatalf("expected c.txt moved despite earlier failure: %v", err)
	}
}

func TestOrganizeDryRunTouchesNothing(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCategories(testCategories()...))
	o, m := newOrchestrator(t, cfg)

	source := t.TempDir()
	testsupport.WriteFileString(t, filepath.Join(source, "photo.jpg"), "jpg")
	testsupport.WriteFileString(t, filepath.Join(source, "report.pdf"), "pdf")

	id := m.Begin("dry run")
	res := organize(t, o, source, organizer.Options{DryRun: true, TransactionID: id})

	if res.Processed != 2 || res.Moved != 0 || res.Errors != 0 {
		t.Fatalf("unexpected counts: %+v", res)
	}
	if len(res.Operations) != 2 {
		t.Fatalf("expected 2 planned operations, got %d", len(res.Operations))
	}
	wantDest := []string{
		filepath.Join(source, "Autosort", "Images", "photo.jpg"),
		filepath.Join(source, "Autosort", "Documents", "report.pdf"),
	}
	for i, op := range res.Operations {
		if op.Type != journal.OpMove || op.Destination != wantDest[i] {
			t.Fatalf("operation %d = %+v, want move to %s", i, op, wantDest[i])
		}
	}
	if _, err := os.Stat(paths.TargetRoot(source)); !os.IsNotExist(err) {
		t.Fatal("dry run must not create the Autosort tree")
	}
	if _, err := os.Stat(filepath.Join(source, "photo.jpg")); err != nil {
		t.Fatalf("dry run must not move files: %v", err)
	}
	if m.History()[0].OperationCount != 0 {
		t.Fatal("dry run must not record operations")
	}
}

func TestOrganizeSkipsSidecarsIgnoredAndSubdirs(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCategories(testCategories()...))
	o, _ := newOrchestrator(t, cfg)

	source := t.TempDir()
	testsupport.WriteFileString(t, filepath.Join(source, "regular.txt"), "keep me moving")
	testsupport.WriteFileString(t, filepath.Join(source, ".DS_Store"), "finder junk")
	testsupport.WriteFileString(t, filepath.Join(source, "skip-me.tmp"), "ignored")
	testsupport.WriteFileString(t, filepath.Join(source, "UPPER.TMP"), "not ignored")
	testsupport.WriteFileString(t, filepath.Join(source, "nested", "inner.txt"), "untouched")

	res := organize(t, o, source, organizer.Options{IgnorePatterns: []string{"*.tmp"}})
	if res.Processed != 2 || res.Moved != 2 {
		t.Fatalf("unexpected counts: %+v", res)
	}
	if _, err := os.Stat(filepath.Join(source, "Autosort", "Text", "regular.txt")); err != nil {
		t.Fatalf("expected regular.txt organized: %v", err)
	}
	// Ignore globs are case sensitive, so UPPER.TMP is eligible.
	if _, err := os.Stat(filepath.Join(source, "Autosort", "Miscellaneous", "UPPER.TMP")); err != nil {
		t.Fatalf("expected UPPER.TMP organized: %v", err)
	}
	for _, stay := range []string{
		filepath.Join(source, ".DS_Store"),
		filepath.Join(source, "skip-me.tmp"),
		filepath.Join(source, "nested", "inner.txt"),
	} {
		if _, err := os.Stat(stay); err != nil {
			t.Fatalf("expected %s untouched: %v", stay, err)
		}
	}
}

func TestOrganizeStopsOnCancellation(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCategories(testCategories()...))
	o, _ := newOrchestrator(t, cfg)

	source := t.TempDir()
	testsupport.WriteFileString(t, filepath.Join(source, "a.txt"), "a")
	testsupport.WriteFileString(t, filepath.Join(source, "b.txt"), "b")
	testsupport.WriteFileString(t, filepath.Join(source, "c.txt"), "c")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	res, err := o.Organize(ctx, source, organizer.Options{
		Progress: func(current, total int, name string) {
			if current == 1 {
				cancel()
			}
		},
	})
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}
	if !res.Stopped {
		t.Fatal("expected run reported as stopped")
	}
	if res.Processed != 1 || res.Moved != 1 {
		t.Fatalf("expected exactly one file handled before stop, got %+v", res)
	}
	for _, stay := range []string{filepath.Join(source, "b.txt"), filepath.Join(source, "c.txt")} {
		if _, err := os.Stat(stay); err != nil {
			t.Fatalf("expected %s untouched after stop: %v", stay, err)
		}
	}
}

func TestOrganizeRejectsBadSource(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCategories(testCategories()...))
	o, _ := newOrchestrator(t, cfg)

	if _, err := o.Organize(context.Background(), filepath.Join(t.TempDir(), "missing"), organizer.Options{}); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing directory, got %v", err)
	}

	file := filepath.Join(t.TempDir(), "plain.txt")
	testsupport.WriteFileString(t, file, "x")
	if _, err := o.Organize(context.Background(), file, organizer.Options{}); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected ErrValidation for non-directory, got %v", err)
	}
}

func TestOrganizeReportsProgress(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCategories(testCategories()...))
	o, _ := newOrchestrator(t, cfg)

	source := t.TempDir()
	testsupport.WriteFileString(t, filepath.Join(source, "a.pdf"), "a")
	testsupport.WriteFileString(t, filepath.Join(source, "b.jpg"), "b")

	type tick struct {
		current, total int
		name           string
	}
	var ticks []tick
	organize(t, o, source, organizer.Options{
		Progress: func(current, total int, name string) {
			ticks = append(ticks, tick{current, total, name})
		},
	})

	want := []tick{{1, 2, "a.pdf"}, {2, 2, "b.jpg"}}
	if len(ticks) != len(want) {
		t.Fatalf("expected %d progress ticks, got %d", len(want), len(ticks))
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Fatalf("tick %d = %+v, want %+v", i, ticks[i], want[i])
		}
	}
}

func TestLoadIgnorePatterns(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".sortignore")
	testsupport.WriteFileString(t, path, "# build junk\n\n*.tmp\nnotes-*.txt\n")

	patterns, err := organizer.LoadIgnorePatterns(path)
	if err != nil {
		t.Fatalf("LoadIgnorePatterns: %v", err)
	}
	want := []string{"*.tmp", "notes-*.txt"}
	if len(patterns) != len(want) {
		t.Fatalf("patterns = %v, want %v", patterns, want)
	}
	for i := range want {
		if patterns[i] != want[i] {
			t.Fatalf("patterns = %v, want %v", patterns, want)
		}
	}

	missing, err := organizer.LoadIgnorePatterns(filepath.Join(t.TempDir(), "absent"))
	if err != nil || missing != nil {
		t.Fatalf("missing ignore file should yield no patterns, got %v, %v", missing, err)
	}
}
