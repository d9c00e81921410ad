package organizer

import (
	"bufio"
	"os"
	"strings"

	"autosort/internal/faults"
)

// LoadIgnorePatterns reads glob patterns from an ignore file, one per line.
// Blank lines and lines starting with # are skipped. A missing file is not an
// error; it simply yields no patterns.
func LoadIgnorePatterns(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, faults.Wrap(faults.ErrPermission, "organizer", "read ignore file", path, err)
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, faults.Wrap(faults.ErrPersistence, "organizer", "read ignore file", path, err)
	}
	return patterns, nil
}
