package classifier_test

import (
	"errors"
	"path/filepath"
	"testing"

	"autosort/internal/classifier"
	"autosort/internal/config"
	"autosort/internal/exifmeta"
)

type stubMetadata struct {
	meta exifmeta.Metadata
	err  error
}

func (s stubMetadata) Supports(path string) bool {
	return exifmeta.Supports(path)
}

func (s stubMetadata) Read(string) (exifmeta.Metadata, error) {
	return s.meta, s.err
}

func classify(t *testing.T, reader classifier.MetadataReader, name string) classifier.Decision {
	t.Helper()
	cfg := config.Default()
	c := classifier.New(&cfg, reader, nil)
	return c.Classify(filepath.Join("/tmp/source", name))
}

func TestClassifyByExtension(t *testing.T) {
	cases := []struct {
		name        string
		category    string
		folder      string
		subcategory string
	}{
		{"report.pdf", "Documents", "Documents", "PDFs"},
		{"thesis.DOCX", "Documents", "Documents", "Word Documents"},
		{"setup.exe", "NonMac", "Non-Mac Files", ""},
		{"notes.unknownext", "Miscellaneous", "Miscellaneous", ""},
		{"archive.zip", "Archives", "Archives", "Compressed"},
	}
	for _, tc := range cases {
		decision := classify(t, nil, tc.name)
		if decision.Category != tc.category {
			t.Fatalf("%s: category = %q, want %q", tc.name, decision.Category, tc.category)
		}
		if decision.CategoryFolder != tc.folder {
			t.Fatalf("%s: folder = %q, want %q", tc.name, decision.CategoryFolder, tc.folder)
		}
		if decision.Subcategory != tc.subcategory {
			t.Fatalf("%s: subcategory = %q, want %q", tc.name, decision.Subcategory, tc.subcategory)
		}
	}
}

func TestClassifyCompoundExtension(t *testing.T) {
	decision := classify(t, nil, "backup-set.tar.gz")
	if decision.Category != "Archives" {
		t.Fatalf("expected Archives, got %q", decision.Category)
	}
	if decision.Subcategory != "Tarballs" {
		t.Fatalf("expected Tarballs via compound suffix, got %q", decision.Subcategory)
	}
}

func TestClassifyHiddenFileHasNoExtension(t *testing.T) {
	decision := classify(t, nil, ".bashrc")
	if decision.Category != "Miscellaneous" {
		t.Fatalf("expected Miscellaneous for hidden file, got %q", decision.Category)
	}
}

func TestClassifyPatternTier(t *testing.T) {
	decision := classify(t, nil, "Screenshot 2026-08-25 at 10.15.30.png")
	if decision.Category != "Images" || decision.Subcategory != "Screenshots" {
		t.Fatalf("unexpected decision: %+v", decision)
	}

	decision = classify(t, nil, "photo.jpg")
	if decision.Subcategory != "Web Downloads" {
		t.Fatalf("expected pattern tier hit, got %+v", decision)
	}
}

func TestClassifyMetadataTier(t *testing.T) {
	reader := stubMetadata{meta: exifmeta.Metadata{Software: "Adobe Photoshop 26.1"}}
	decision := classify(t, reader, "edited-piece.jpg")
	if decision.Subcategory != "Adobe Edited" {
		t.Fatalf("expected metadata tier hit, got %+v", decision)
	}
}

func TestClassifyMetadataSkippedForNonRaster(t *testing.T) {
	reader := stubMetadata{meta: exifmeta.Metadata{Software: "Adobe Photoshop"}}
	decision := classify(t, reader, "vector-piece.svg")
	if decision.Subcategory != "" {
		t.Fatalf("expected no subcategory for non-raster image, got %+v", decision)
	}
}

func TestClassifyMetadataErrorFallsThrough(t *testing.T) {
	reader := stubMetadata{err: errors.New("corrupt image")}
	decision := classify(t, reader, "broken-piece.jpg")
	if decision.Category != "Images" {
		t.Fatalf("expected Images, got %q", decision.Category)
	}
	if decision.Subcategory != "" {
		t.Fatalf("expected metadata failure to leave subcategory empty, got %q", decision.Subcategory)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	cfg := config.Default()
	c := classifier.New(&cfg, nil, nil)
	first := c.Classify("/tmp/source/movie night.mp4")
	for i := 0; i < 5; i++ {
		if got := c.Classify("/tmp/source/movie night.mp4"); got != first {
			t.Fatalf("classification drifted: %+v vs %+v", got, first)
		}
	}
}

func TestRelativeFolder(t *testing.T) {
	with := classifier.Decision{CategoryFolder: "Images", Subcategory: "Screenshots"}
	if got := with.RelativeFolder(); got != filepath.Join("Images", "Screenshots") {
		t.Fatalf("unexpected folder: %q", got)
	}
	without := classifier.Decision{CategoryFolder: "Documents"}
	if got := without.RelativeFolder(); got != "Documents" {
		t.Fatalf("unexpected folder: %q", got)
	}
}
