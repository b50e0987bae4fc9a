package domain

import (
	"path/filepath"
	"strings"
)

const (
	// LegacyExt marks files that get normalized before classification.
	LegacyExt = ".webp"

	// ConvertedExt is the extension normalized files are written with.
	ConvertedExt = ".jpeg"

	// MetadataFile is the macOS Finder metadata file that can show up among
	// candidates and must be skipped.
	MetadataFile = ".DS_Store"
)

// ConvertedImage pairs a converted JPEG with the legacy file it came from.
// The pairing is carried explicitly through the pipeline instead of being
// reconstructed from filename stems after the fact, so two legacy files can
// never be confused for one another.
type ConvertedImage struct {
	SourcePath string // the original legacy-format file
	Path       string // the converted standard-format file
}

// Stem returns the converted file's base name without its extension.
func (c ConvertedImage) Stem() string {
	base := filepath.Base(c.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsLegacyImage reports whether name carries the legacy extension. Only the
// extension is inspected; content sniffing happens at decode time.
func IsLegacyImage(name string) bool {
	return strings.EqualFold(filepath.Ext(name), LegacyExt)
}
