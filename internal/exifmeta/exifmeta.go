package exifmeta

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// Metadata carries the image tags that subcategory indicators match against.
type Metadata struct {
	// Software is the EXIF Software tag, the tool that last wrote the file.
	Software string
	// CameraInfo joins the Make and Model tags with a single space.
	CameraInfo string
}

// Empty reports whether no usable tags were found.
func (m Metadata) Empty() bool {
	return m.Software == "" && m.CameraInfo == ""
}

// rasterExtensions lists the image types worth probing for EXIF payloads.
var rasterExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".tiff": {},
	".tif":  {},
	".bmp":  {},
	".gif":  {},
	".webp": {},
}

// Supports reports whether path names a raster image that may carry EXIF tags.
func Supports(path string) bool {
	_, ok := rasterExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Reader extracts EXIF tags from image files on disk.
type Reader struct{}

// NewReader returns a reader backed by on-disk file contents.
func NewReader() *Reader {
	return &Reader{}
}

// Supports reports whether the reader can inspect path.
func (*Reader) Supports(path string) bool {
	return Supports(path)
}

// Read decodes EXIF tags from the file. Images without a decodable EXIF
// payload yield empty metadata rather than an error; only I/O failures
// surface as errors.
func (*Reader) Read(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()

	decoded, err := exif.Decode(f)
	if err != nil {
		return Metadata{}, nil
	}

	meta := Metadata{Software: stringField(decoded, exif.Software)}
	parts := make([]string, 0, 2)
	for _, field := range []exif.FieldName{exif.Make, exif.Model} {
		if value := stringField(decoded, field); value != "" {
			parts = append(parts, value)
		}
	}
	meta.CameraInfo = strings.Join(parts, " ")
	return meta, nil
}

func stringField(decoded *exif.Exif, name exif.FieldName) string {
	tag, err := decoded.Get(name)
	if err != nil {
		return ""
	}
	value, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}
