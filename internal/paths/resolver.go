package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// TargetFolderName is the fixed subfolder under a source directory that
// receives organized files. It is not configurable; scans must exclude it.
const TargetFolderName = "Autosort"

// ProbePrefix names the throwaway marker files used to test write access.
// Watch mode filters them out so probing never retriggers a run.
const ProbePrefix = ".autosort_test-"

// Kind identifies how a directory relates to the user's well-known folders.
type Kind string

const (
	KindDesktop   Kind = "desktop"
	KindDownloads Kind = "downloads"
	KindCustom    Kind = "custom"
	KindInvalid   Kind = "invalid"
)

// Info reports the outcome of validating a candidate directory. Validation
// never fails with an error; every failure mode lands in the fields.
type Info struct {
	Path        string
	Kind        Kind
	Exists      bool
	IsDirectory bool
	IsWritable  bool
	Reason      string
}

// Usable reports whether the directory can serve as an organize source.
func (i Info) Usable() bool {
	return i.Exists && i.IsDirectory && i.IsWritable
}

// Resolver locates well-known user directories and validates organize
// sources. Detection results are cached for the resolver's lifetime.
type Resolver struct {
	home string

	mu        sync.Mutex
	desktop   string
	downloads string
}

// NewResolver builds a resolver rooted at the current user's home directory.
func NewResolver() (*Resolver, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewResolverAt(home), nil
}

// NewResolverAt builds a resolver rooted at an explicit home directory.
func NewResolverAt(home string) *Resolver {
	return &Resolver{home: home}
}

type localizedName struct {
	tag  language.Tag
	name string
}

var desktopNames = []localizedName{
	{language.Spanish, "Escritorio"},
	{language.French, "Bureau"},
	{language.German, "Schreibtisch"},
}

var downloadsNames = []localizedName{
	{language.Spanish, "Descargas"},
	{language.French, "Téléchargements"},
}

// Desktop returns the user's Desktop directory, preferring the folder name
// of the active locale and falling back to probing known translations.
func (r *Resolver) Desktop() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.desktop == "" {
		r.desktop = r.locate("Desktop", desktopNames)
	}
	return r.desktop
}

// Downloads returns the user's Downloads directory.
func (r *Resolver) Downloads() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.downloads == "" {
		r.downloads = r.locate("Downloads", downloadsNames)
	}
	return r.downloads
}

func (r *Resolver) locate(english string, localized []localizedName) string {
	for _, name := range candidateNames(english, localized) {
		candidate := filepath.Join(r.home, name)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	return filepath.Join(r.home, english)
}

// candidateNames orders folder-name probes: the locale's translation first
// when the environment declares one, then the English name, then the rest.
func candidateNames(english string, localized []localizedName) []string {
	names := []string{english}
	if pref := localeTag(); pref != language.Und {
		tags := make([]language.Tag, len(localized))
		for i, l := range localized {
			tags[i] = l.tag
		}
		if _, index, conf := language.NewMatcher(tags).Match(pref); conf >= language.High {
			names = append([]string{localized[index].name}, names...)
		}
	}
	for _, l := range localized {
		if !slices.Contains(names, l.name) {
			names = append(names, l.name)
		}
	}
	return names
}

func localeTag() language.Tag {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(key)
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		if i := strings.IndexAny(value, ".@"); i >= 0 {
			value = value[:i]
		}
		if tag, err := language.Parse(strings.ReplaceAll(value, "_", "-")); err == nil {
			return tag
		}
	}
	return language.Und
}

// Validate inspects a directory and reports whether it can be organized.
// Writability is probed empirically because permission bits do not always
// reflect effective access on network shares or sandboxed mounts.
func (r *Resolver) Validate(path string) Info {
	info := Info{Path: path, Kind: KindCustom}
	if strings.TrimSpace(path) == "" {
		info.Kind = KindInvalid
		info.Reason = "path is empty"
		return info
	}
	st, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		info.Reason = "directory does not exist"
		return info
	case err != nil:
		info.Kind = KindInvalid
		info.Reason = err.Error()
		return info
	}
	info.Exists = true
	info.IsDirectory = st.IsDir()
	if !info.IsDirectory {
		info.Reason = "not a directory"
		return info
	}
	info.IsWritable = writable(path)
	if !info.IsWritable {
		info.Reason = "directory is not writable"
	}
	info.Kind = r.kindOf(path)
	return info
}

func writable(dir string) bool {
	probe, err := os.CreateTemp(dir, ProbePrefix+"*")
	if err != nil {
		return false
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return true
}

func (r *Resolver) kindOf(path string) Kind {
	abs, err := filepath.Abs(path)
	if err != nil {
		return KindInvalid
	}
	switch abs {
	case r.Desktop():
		return KindDesktop
	case r.Downloads():
		return KindDownloads
	}
	return KindCustom
}

// TargetRoot returns the destination tree for an organize run over sourceDir.
func TargetRoot(sourceDir string) string {
	return filepath.Join(sourceDir, TargetFolderName)
}

// EnsureDirectory creates path along with any missing parents and returns
// the directories that were newly created, parents before children, so the
// caller can record them for undo.
func EnsureDirectory(path string) ([]string, error) {
	if st, err := os.Stat(path); err == nil {
		if st.IsDir() {
			return nil, nil
		}
		return nil, fmt.Errorf("%s exists and is not a directory", path)
	}
	var missing []string
	for current := path; ; {
		_, err := os.Stat(current)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		missing = append(missing, current)
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	if len(missing) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, err
	}
	slices.Reverse(missing)
	return missing, nil
}
