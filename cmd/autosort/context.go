package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"autosort/internal/config"
	"autosort/internal/logging"
	"autosort/internal/paths"
	"autosort/internal/runlog"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	resolverOnce sync.Once
	pathResolver *paths.Resolver
	resolverErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// ensureLogger builds the shared logger from configuration. Log lines go to
// stderr and the log file; stdout stays reserved for command output.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) loggerValue() *slog.Logger {
	logger, err := c.ensureLogger()
	if err != nil || logger == nil {
		return logging.NewNop()
	}
	return logger
}

func (c *commandContext) resolver() (*paths.Resolver, error) {
	c.resolverOnce.Do(func() {
		c.pathResolver, c.resolverErr = paths.NewResolver()
	})
	return c.pathResolver, c.resolverErr
}

// recordRun appends a run to the history database. Recording is best effort:
// a failure is logged and swallowed so a missing or locked database never
// fails the command whose work already happened.
func (c *commandContext) recordRun(ctx context.Context, run *runlog.Run) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return
	}
	logger := c.loggerValue()
	store, err := runlog.Open(cfg)
	if err != nil {
		logger.Warn("run history unavailable", logging.Error(err))
		return
	}
	defer store.Close()
	if err := store.Record(ctx, run); err != nil {
		logger.Warn("run history write failed", logging.Error(err))
	}
}

// withStateLock serializes mutating commands across autosort processes via a
// file lock in the state directory. The lock is advisory and non-blocking;
// a second process fails fast instead of interleaving journal writes.
func (c *commandContext) withStateLock(fn func() error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire state lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another autosort process is running (lock %s)", cfg.LockPath())
	}
	defer func() { _ = lock.Unlock() }()
	return fn()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
