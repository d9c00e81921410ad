package mover

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/unix"

	"autosort/internal/fileutil"
	"autosort/internal/logging"
)

// Outcome reports a single attempted move. A failed move carries a
// human-readable reason instead of an error value.
type Outcome struct {
	Moved       bool
	Source      string
	Destination string
	Reason      string
}

// Engine performs validated single-file moves. It never panics and never
// returns errors; every failure mode is logged and reported in the outcome
// so one bad file cannot abort a batch.
type Engine struct {
	logger *slog.Logger
}

// NewEngine builds a move engine logging through logger.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logging.NewComponentLogger(logger, "mover")}
}

// Move relocates source to destination. Preconditions run in order before
// the filesystem is touched: source exists, source is a regular file,
// source is readable, destination parent is writable.
func (e *Engine) Move(source, destination string) Outcome {
	out := Outcome{Source: source, Destination: destination}

	info, err := os.Stat(source)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return e.fail(out, "source does not exist")
	case err != nil:
		return e.fail(out, fmt.Sprintf("source not accessible: %v", err))
	case !info.Mode().IsRegular():
		return e.fail(out, "source is not a regular file")
	}
	if unix.Access(source, unix.R_OK) != nil {
		return e.fail(out, "source is not readable")
	}
	if unix.Access(filepath.Dir(destination), unix.W_OK) != nil {
		return e.fail(out, "destination directory is not writable")
	}

	if err := rename(source, destination); err != nil {
		return e.fail(out, fmt.Sprintf("move failed: %v", err))
	}
	out.Moved = true
	e.logger.Debug("moved file",
		logging.String("source", source),
		logging.String("destination", destination))
	return out
}

func (e *Engine) fail(out Outcome, reason string) Outcome {
	out.Reason = reason
	e.logger.Warn("move skipped",
		logging.String("source", out.Source),
		logging.String("destination", out.Destination),
		logging.String("reason", reason))
	return out
}

// rename moves source onto destination, falling back to a verified
// copy+remove when the rename crosses filesystem boundaries.
func rename(source, destination string) error {
	err := os.Rename(source, destination)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		if copyErr := fileutil.CopyPreservingAttrs(source, destination); copyErr != nil {
			return copyErr
		}
		return os.Remove(source)
	}
	return err
}
