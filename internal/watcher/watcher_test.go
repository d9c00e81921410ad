package watcher_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"autosort/internal/faults"
	"autosort/internal/paths"
	"autosort/internal/testsupport"
	"autosort/internal/watcher"
)

func waitRun(t *testing.T, runs <-chan int, want int) {
	t.Helper()
	select {
	case got := <-runs:
		if got != want {
			t.Fatalf("run %d arrived, want %d", got, want)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for run %d", want)
	}
}

func TestWatchRunsAfterEventsSettle(t *testing.T) {
	source := t.TempDir()

	runs := make(chan int, 8)
	count := 0
	w, err := watcher.New(source, 50*time.Millisecond, func(ctx context.Context) error {
		count++
		runs <- count
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	// The initial pass fires before any event.
	waitRun(t, runs, 1)

	// A dropped file triggers another pass once events settle.
	testsupport.WriteFileString(t, filepath.Join(source, "incoming.txt"), "x")
	waitRun(t, runs, 2)

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Watch returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not stop on cancellation")
	}
}

func TestWatchIgnoresOwnArtifacts(t *testing.T) {
	source := t.TempDir()

	runs := make(chan int, 8)
	count := 0
	w, err := watcher.New(source, 50*time.Millisecond, func(ctx context.Context) error {
		count++
		runs <- count
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	waitRun(t, runs, 1)

	// The Autosort tree and writability probes are the watcher's own
	// side effects; the real file afterwards proves the loop stayed
	// alive and only it scheduled a run.
	if err := os.Mkdir(filepath.Join(source, paths.TargetFolderName), 0o755); err != nil {
		t.Fatal(err)
	}
	testsupport.WriteFileString(t, filepath.Join(source, paths.ProbePrefix+"123"), "probe")
	testsupport.WriteFileString(t, filepath.Join(source, "real.txt"), "x")
	waitRun(t, runs, 2)

	select {
	case n := <-runs:
		t.Fatalf("unexpected extra run %d", n)
	case <-time.After(250 * time.Millisecond):
	}
}

func TestWatchRejectsMissingDirectory(t *testing.T) {
	_, err := watcher.New(filepath.Join(t.TempDir(), "absent"), time.Second,
		func(context.Context) error { return nil }, nil)
	if !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
