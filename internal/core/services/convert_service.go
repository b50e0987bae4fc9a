package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // register the WebP decoder

	"github.com/Tedfulk/ollama-rename-img/internal/core/domain"
	"github.com/Tedfulk/ollama-rename-img/internal/logging"
)

// ConvertService normalizes legacy WebP files into JPEGs written alongside
// them. Sources are left untouched; cleanup happens only after a successful
// rename later in the pipeline.
type ConvertService struct {
	log     *logging.Logger
	quality int
}

// NewConvertService creates the format normalizer. quality is the JPEG
// re-encode quality (1-100).
func NewConvertService(log *logging.Logger, quality int) *ConvertService {
	return &ConvertService{
		log:     log,
		quality: quality,
	}
}

// ConvertRequest names the directory to scan.
type ConvertRequest struct {
	Directory string
}

// ConvertResponse carries the source/output pairs in directory order.
type ConvertResponse struct {
	Images []domain.ConvertedImage
	Failed int
}

// Execute scans the directory (non-recursive) for files with the legacy
// extension and re-encodes each as a JPEG with the same stem. Selection is
// extension-gated only, so files already renamed on a previous run are never
// reconverted. A file that fails to decode is reported and skipped; the scan
// continues with the next file.
func (s *ConvertService) Execute(ctx context.Context, req ConvertRequest) (*ConvertResponse, error) {
	entries, err := os.ReadDir(req.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	resp := &ConvertResponse{}
	for _, entry := range entries {
		if ctx.Err() != nil {
			return resp, ctx.Err()
		}
		if entry.IsDir() || entry.Name() == domain.MetadataFile || !domain.IsLegacyImage(entry.Name()) {
			continue
		}

		source := filepath.Join(req.Directory, entry.Name())
		output, err := s.convert(source)
		if err != nil {
			s.log.Error("Conversion failed for %s: %v", entry.Name(), err)
			resp.Failed++
			continue
		}

		s.log.Info("Converted %s -> %s", entry.Name(), filepath.Base(output))
		resp.Images = append(resp.Images, domain.ConvertedImage{
			SourcePath: source,
			Path:       output,
		})
	}

	return resp, nil
}

// convert decodes one legacy file and writes its JPEG counterpart. The JPEG
// is encoded fully in memory and moved into place via a uniquely named temp
// file, so a failure at any point never leaves a partial output behind.
func (s *ConvertService) convert(source string) (string, error) {
	img, err := imaging.Open(source)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(s.quality)); err != nil {
		return "", fmt.Errorf("failed to encode JPEG: %w", err)
	}

	target := strings.TrimSuffix(source, filepath.Ext(source)) + domain.ConvertedExt
	tmp := target + ".tmp-" + uuid.NewString()
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write converted file: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to move converted file into place: %w", err)
	}

	return target, nil
}
