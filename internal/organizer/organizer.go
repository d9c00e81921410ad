package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"autosort/internal/classifier"
	"autosort/internal/config"
	"autosort/internal/exifmeta"
	"autosort/internal/faults"
	"autosort/internal/journal"
	"autosort/internal/logging"
	"autosort/internal/mover"
	"autosort/internal/paths"
)

// Recorder receives the operations applied during a non-dry-run organize so
// they can be undone later. journal.Manager satisfies it.
type Recorder interface {
	Record(transactionID string, op journal.Operation) bool
}

// Options controls a single organize run.
type Options struct {
	// DryRun computes and reports every decision without touching the
	// filesystem or the recorder.
	DryRun bool
	// TransactionID names the open transaction operations are recorded
	// into. Empty disables recording; the caller owns begin and commit.
	TransactionID string
	// IgnorePatterns holds glob patterns for files the scan must skip.
	IgnorePatterns []string
	// Progress, when set, is invoked after each file with the 1-based
	// index, the total count, and the file's base name.
	Progress func(current, total int, name string)
}

// Result aggregates one organize run. Per-file failures are counted and
// collected here; they never abort the batch.
type Result struct {
	SourceDir  string
	TargetRoot string
	Processed  int
	Moved      int
	Errors     int
	Operations []journal.Operation
	ErrorLog   []string
	// Stopped reports that cancellation ended the run between files.
	// Files already moved stay moved.
	Stopped bool
}

// Orchestrator scans a directory, classifies each eligible file, and moves it
// into the Autosort tree, recording every change for undo.
type Orchestrator struct {
	cfg        *config.Config
	resolver   *paths.Resolver
	classifier *classifier.Classifier
	engine     *mover.Engine
	recorder   Recorder
	logger     *slog.Logger
}

// New builds an orchestrator with default collaborators: a resolver rooted at
// the user's home, a classifier reading EXIF metadata, and a fresh move
// engine. recorder may be nil when undo recording is not wanted.
func New(cfg *config.Config, recorder Recorder, logger *slog.Logger) (*Orchestrator, error) {
	resolver, err := paths.NewResolver()
	if err != nil {
		return nil, faults.Wrap(faults.ErrValidation, "organizer", "init", "resolve home directory", err)
	}
	cls := classifier.New(cfg, exifmeta.NewReader(), logger)
	return NewWithDependencies(cfg, resolver, cls, mover.NewEngine(logger), recorder, logger), nil
}

// NewWithDependencies allows injecting collaborators (used in tests).
func NewWithDependencies(cfg *config.Config, resolver *paths.Resolver, cls *classifier.Classifier, engine *mover.Engine, recorder Recorder, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		resolver:   resolver,
		classifier: cls,
		engine:     engine,
		recorder:   recorder,
		logger:     logging.NewComponentLogger(logger, "organizer"),
	}
}

// Organize runs one pass over the immediate children of sourceDir. An error
// is returned only for validation failures before any work starts; everything
// after that lands in the Result. Cancellation is honored between files.
func (o *Orchestrator) Organize(ctx context.Context, sourceDir string, opts Options) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	info := o.resolver.Validate(sourceDir)
	if !info.Exists || !info.IsDirectory {
		return nil, faults.Wrap(faults.ErrValidation, "organizer", "validate source", invalidReason(info), nil)
	}
	if !opts.DryRun && !info.IsWritable {
		return nil, faults.Wrap(faults.ErrValidation, "organizer", "validate source",
			fmt.Sprintf("%s is not writable", sourceDir), nil)
	}

	targetRoot := paths.TargetRoot(sourceDir)
	files, err := o.scan(sourceDir, opts.IgnorePatterns)
	if err != nil {
		return nil, faults.Wrap(faults.ErrPermission, "organizer", "scan source", sourceDir, err)
	}

	result := &Result{SourceDir: sourceDir, TargetRoot: targetRoot}
	o.logger.Info("organize run started",
		logging.String("source", sourceDir),
		logging.Int("eligible", len(files)),
		logging.Bool("dry_run", opts.DryRun))

	for i, file := range files {
		if ctx.Err() != nil {
			result.Stopped = true
			o.logger.Info("organize run stopped", logging.Int("remaining", len(files)-i))
			break
		}
		result.Processed++
		o.processFile(file, targetRoot, opts, result)
		if opts.Progress != nil {
			opts.Progress(i+1, len(files), filepath.Base(file))
		}
	}

	o.logger.Info("organize run finished",
		logging.String("source", sourceDir),
		logging.Int("processed", result.Processed),
		logging.Int("moved", result.Moved),
		logging.Int("errors", result.Errors))
	return result, nil
}

// processFile classifies one file and moves it into place. Every failure is
// appended to the result; nothing escapes to the caller.
func (o *Orchestrator) processFile(file, targetRoot string, opts Options, result *Result) {
	decision := o.classifier.Classify(file)
	destDir := filepath.Join(targetRoot, decision.RelativeFolder())

	if !opts.DryRun {
		created, err := paths.EnsureDirectory(destDir)
		if err != nil {
			result.fail(fmt.Sprintf("create directory %s: %v", destDir, err))
			return
		}
		for _, dir := range created {
			o.record(opts, journal.NewCreateDir(dir))
		}
	}

	destination := mover.UniquePath(filepath.Join(destDir, filepath.Base(file)))
	op := journal.NewMove(file, destination)

	if opts.DryRun {
		result.Operations = append(result.Operations, op)
		o.logger.Debug("would move file",
			logging.String("source", file),
			logging.String("destination", destination))
		return
	}

	outcome := o.engine.Move(file, destination)
	if !outcome.Moved {
		result.fail(fmt.Sprintf("move %s: %s", filepath.Base(file), outcome.Reason))
		return
	}
	result.Operations = append(result.Operations, op)
	o.record(opts, op)
	result.Moved++
	o.logger.Info("organized file",
		logging.String("file", filepath.Base(file)),
		logging.String("category", decision.Category),
		logging.String("destination", destination))
}

func (o *Orchestrator) record(opts Options, op journal.Operation) {
	if o.recorder == nil || opts.TransactionID == "" {
		return
	}
	o.recorder.Record(opts.TransactionID, op)
}

func (r *Result) fail(message string) {
	r.Errors++
	r.ErrorLog = append(r.ErrorLog, message)
}

func invalidReason(info paths.Info) string {
	if info.Reason != "" {
		return fmt.Sprintf("%s: %s", info.Path, info.Reason)
	}
	return fmt.Sprintf("%s is not usable", info.Path)
}
