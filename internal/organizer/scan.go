package organizer

import (
	"os"
	"path"
	"path/filepath"

	"autosort/internal/logging"
	"autosort/internal/paths"
)

// sidecarNames are system droppings and autosort's own files, never eligible
// for organizing no matter what the ignore list says.
var sidecarNames = map[string]struct{}{
	".DS_Store":     {},
	"Thumbs.db":     {},
	"desktop.ini":   {},
	".sortignore":   {},
	"autosort.toml": {},
}

// scan lists the regular files directly under sourceDir that are eligible for
// organizing. Subdirectories (including the Autosort tree itself), symlinks,
// sidecar files, and ignore-pattern matches are excluded. The listing is
// sorted by name, so processing order is deterministic.
func (o *Orchestrator) scan(sourceDir string, ignorePatterns []string) ([]string, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() {
			continue
		}
		if name == paths.TargetFolderName || o.skipName(name) {
			continue
		}
		if matchesIgnore(name, ignorePatterns) {
			o.logger.Debug("skipping ignored file", logging.String("file", name))
			continue
		}
		files = append(files, filepath.Join(sourceDir, name))
	}
	return files, nil
}

func (o *Orchestrator) skipName(name string) bool {
	if _, ok := sidecarNames[name]; ok {
		return true
	}
	return o.cfg != nil && name == o.cfg.Organize.IgnoreFile
}

// matchesIgnore applies the ignore globs case-sensitively, unlike category
// patterns. An unparsable pattern matches nothing.
func matchesIgnore(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := path.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
