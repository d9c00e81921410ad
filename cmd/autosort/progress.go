package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// progressReporter bridges the orchestrator's progress callback to the
// terminal. On a TTY it renders a live progress bar; elsewhere it stays
// silent, since every file is logged through the structured logger anyway.
type progressReporter struct {
	writer io.Writer

	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

func newProgressReporter(writer io.Writer) *progressReporter {
	return &progressReporter{writer: writer}
}

// callback returns the function handed to organizer.Options.Progress, or nil
// when the writer is not a terminal.
func (p *progressReporter) callback() func(current, total int, name string) {
	if !isTerminal(p.writer) {
		return nil
	}
	return p.update
}

func (p *progressReporter) update(current, total int, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.writer),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Organizing..."),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(p.writer)
			}),
		)
	}
	p.bar.Describe(fmt.Sprintf("Organizing %s", filepath.Base(name)))
	_ = p.bar.Set(current)
}

// finish clears a bar that never reached its total, e.g. after cancellation.
func (p *progressReporter) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}
