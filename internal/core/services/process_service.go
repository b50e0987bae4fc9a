package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Tedfulk/ollama-rename-img/internal/core/domain"
	"github.com/Tedfulk/ollama-rename-img/internal/core/ports"
	"github.com/Tedfulk/ollama-rename-img/internal/logging"
)

// ProcessService runs the classify, name, rename and cleanup stages over a
// batch of converted images, strictly one file at a time.
type ProcessService struct {
	vision ports.VisionModel
	log    *logging.Logger
}

// NewProcessService creates the batch processor.
func NewProcessService(vision ports.VisionModel, log *logging.Logger) *ProcessService {
	return &ProcessService{
		vision: vision,
		log:    log,
	}
}

// ProcessRequest carries the batch: the directory being processed, the
// keyword delimiter, and the source/converted pairs from the normalizer.
type ProcessRequest struct {
	Directory string
	Delimiter string
	Images    []domain.ConvertedImage
}

// ProcessStats aggregates per-file outcomes for the batch summary.
type ProcessStats struct {
	Renamed  int // converted files renamed from keywords
	Removed  int // legacy originals deleted after a successful rename
	Skipped  int // files left alone because no usable name could be derived
	Failed   int // classification or rename failures
	Residual int // legacy files still present after the batch
}

// Execute processes each converted image in order. A failure is confined to
// the file that caused it; the batch always runs to completion. Legacy files
// still present afterwards are reported once as unprocessed and left alone.
func (s *ProcessService) Execute(ctx context.Context, req ProcessRequest) (*ProcessStats, error) {
	if err := domain.ValidateDelimiter(req.Delimiter); err != nil {
		return nil, err
	}

	stats := &ProcessStats{}
	total := len(req.Images)
	for i, img := range req.Images {
		if ctx.Err() != nil {
			s.log.Warn("Interrupted")
			break
		}
		if filepath.Base(img.Path) == domain.MetadataFile {
			continue
		}

		s.log.Info("[%d/%d] %s", i+1, total, filepath.Base(img.Path))
		s.processOne(ctx, req, img, stats)
	}

	s.reportResidual(req.Directory, stats)
	return stats, nil
}

// processOne drives a single file through classification, rename and
// original cleanup, recording the outcome in stats.
func (s *ProcessService) processOne(ctx context.Context, req ProcessRequest, img domain.ConvertedImage, stats *ProcessStats) {
	newPath, err := s.renameFromKeywords(ctx, req, img)
	if err != nil {
		s.log.Error("Error processing %s: %v", filepath.Base(img.Path), err)
		stats.Failed++
		return
	}
	if newPath == "" {
		s.log.Warn("No usable keywords for %s, leaving it in place", filepath.Base(img.Path))
		stats.Skipped++
		return
	}

	stats.Renamed++
	s.log.Info("Renamed %s to %s", filepath.Base(img.Path), filepath.Base(newPath))

	switch err := os.Remove(img.SourcePath); {
	case err == nil:
		stats.Removed++
		s.log.Info("Removed original file: %s", filepath.Base(img.SourcePath))
	case errors.Is(err, fs.ErrNotExist):
		s.log.Warn("No corresponding original found for %s", filepath.Base(newPath))
	default:
		s.log.Warn("Could not remove original %s: %v", filepath.Base(img.SourcePath), err)
	}
}

// renameFromKeywords classifies one image and renames it from the derived
// keywords. It returns the new path, or "" when no usable name could be
// derived and the file should stay as it is.
func (s *ProcessService) renameFromKeywords(ctx context.Context, req ProcessRequest, img domain.ConvertedImage) (string, error) {
	data, err := os.ReadFile(img.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	raw, err := s.vision.Describe(ctx, data)
	if err != nil {
		return "", fmt.Errorf("classification failed: %w", err)
	}

	classification, err := domain.ParseClassification(raw)
	if err != nil {
		return "", err
	}

	name := classification.Filename(req.Delimiter)
	if name == "" {
		return "", nil
	}

	target := filepath.Join(req.Directory, name+filepath.Ext(img.Path))
	if err := os.Rename(img.Path, target); err != nil {
		return "", fmt.Errorf("rename failed: %w", err)
	}
	return target, nil
}

// reportResidual warns about legacy files still sitting in the directory
// after the batch, without touching them.
func (s *ProcessService) reportResidual(directory string, stats *ProcessStats) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		s.log.Warn("Could not scan for leftover files: %v", err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !domain.IsLegacyImage(entry.Name()) {
			continue
		}
		stats.Residual++
		s.log.Warn("Unprocessed file: %s", entry.Name())
	}
}
