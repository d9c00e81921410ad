package classifier

import (
	"log/slog"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"autosort/internal/config"
	"autosort/internal/exifmeta"
	"autosort/internal/logging"
)

// MetadataReader supplies embedded image tags for the metadata rule tier.
type MetadataReader interface {
	Supports(path string) bool
	Read(path string) (exifmeta.Metadata, error)
}

// Decision is the classification outcome for a single file.
type Decision struct {
	// Category is the configured category name.
	Category string
	// CategoryFolder is the directory the category maps to under the
	// target root. It usually equals Category but may differ (for example
	// NonMac files land in "Non-Mac Files").
	CategoryFolder string
	// Subcategory is the matched subcategory folder, empty when no
	// subcategory rule applied.
	Subcategory string
}

// RelativeFolder returns the destination folder relative to the target root.
func (d Decision) RelativeFolder() string {
	if d.Subcategory == "" {
		return d.CategoryFolder
	}
	return filepath.Join(d.CategoryFolder, d.Subcategory)
}

// Classifier maps files onto the configured category tree. Classification
// never fails: unreadable metadata and unknown extensions degrade to broader
// buckets instead of raising errors.
type Classifier struct {
	cfg      *config.Config
	byExt    map[string]string
	metadata MetadataReader
	logger   *slog.Logger
}

// New builds a classifier over cfg. A nil metadata reader disables the
// metadata rule tier entirely.
func New(cfg *config.Config, metadata MetadataReader, logger *slog.Logger) *Classifier {
	return &Classifier{
		cfg:      cfg,
		byExt:    cfg.ExtensionMap(),
		metadata: metadata,
		logger:   logging.NewComponentLogger(logger, "classifier"),
	}
}

// Classify resolves the category and subcategory for filePath. Unknown
// extensions fall back to the Miscellaneous category.
func (c *Classifier) Classify(filePath string) Decision {
	name := filepath.Base(filePath)
	category, ok := c.lookupCategory(name)
	if !ok {
		category = c.miscellaneous()
	}
	probe := &metadataProbe{reader: c.metadata, logger: c.logger, path: filePath}
	return Decision{
		Category:       category.Name,
		CategoryFolder: category.FolderName,
		Subcategory:    c.subcategory(name, category, probe),
	}
}

func (c *Classifier) lookupCategory(name string) (config.Category, bool) {
	for _, ext := range extensionCandidates(name) {
		categoryName, ok := c.byExt[ext]
		if !ok {
			continue
		}
		if category, found := c.cfg.CategoryByName(categoryName); found {
			return category, true
		}
	}
	return config.Category{}, false
}

func (c *Classifier) miscellaneous() config.Category {
	if category, ok := c.cfg.CategoryByName(config.MiscellaneousCategory); ok {
		return category
	}
	return config.Category{
		Name:       config.MiscellaneousCategory,
		FolderName: config.MiscellaneousCategory,
	}
}

// subcategory evaluates subcategories in configured order. Within each
// subcategory the tiers run extensions first, then filename patterns, then
// metadata indicators; the first subcategory with any hit wins.
func (c *Classifier) subcategory(name string, category config.Category, probe *metadataProbe) string {
	for _, sub := range category.Subcategories {
		if c.matches(name, sub, probe) {
			return sub.FolderName
		}
	}
	return ""
}

func (c *Classifier) matches(name string, sub config.Subcategory, probe *metadataProbe) bool {
	if matchesExtension(name, sub.Extensions) {
		return true
	}
	if matchesPattern(name, sub.Patterns) {
		return true
	}
	if len(sub.ExifIndicators) > 0 && matchesMetadata(probe.load(), sub.ExifIndicators) {
		return true
	}
	return false
}

func matchesExtension(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return false
	}
	for _, candidate := range extensionCandidates(name) {
		if slices.Contains(extensions, candidate) {
			return true
		}
	}
	return false
}

func matchesPattern(name string, patterns []string) bool {
	lower := strings.ToLower(name)
	for _, pattern := range patterns {
		if ok, err := path.Match(strings.ToLower(pattern), lower); err == nil && ok {
			return true
		}
	}
	return false
}

func matchesMetadata(meta exifmeta.Metadata, indicators []string) bool {
	if meta.Empty() {
		return false
	}
	software := strings.ToLower(meta.Software)
	camera := strings.ToLower(meta.CameraInfo)
	for _, indicator := range indicators {
		needle := strings.ToLower(strings.TrimSpace(indicator))
		if needle == "" {
			continue
		}
		if software != "" && strings.Contains(software, needle) {
			return true
		}
		if camera != "" && strings.Contains(camera, needle) {
			return true
		}
	}
	return false
}

// extensionCandidates returns the dot-suffixes of name from longest to
// shortest, lower-cased, so compound entries like ".tar.gz" can match ahead
// of ".gz". A leading dot marks a hidden file, not an extension.
func extensionCandidates(name string) []string {
	lower := strings.ToLower(filepath.Base(name))
	var candidates []string
	for i := 0; i < len(lower); i++ {
		if lower[i] != '.' || i == 0 {
			continue
		}
		candidates = append(candidates, lower[i:])
	}
	return candidates
}

// metadataProbe reads image tags at most once per classified file, no matter
// how many subcategories carry indicators.
type metadataProbe struct {
	reader MetadataReader
	logger *slog.Logger
	path   string
	loaded bool
	meta   exifmeta.Metadata
}

func (p *metadataProbe) load() exifmeta.Metadata {
	if p.loaded {
		return p.meta
	}
	p.loaded = true
	if p.reader == nil || !p.reader.Supports(p.path) {
		return p.meta
	}
	meta, err := p.reader.Read(p.path)
	if err != nil {
		p.logger.Debug("metadata probe failed",
			logging.String("file", filepath.Base(p.path)),
			logging.Error(err))
		return p.meta
	}
	p.meta = meta
	return p.meta
}
