// Package extract materializes detected regions as image files, assembles
// the per-page record handed to the markup-assembly step, and renders the
// diagnostic overlay.
package extract

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/mkarev/pdf2html/internal/region"
)

// WriteFailure records one region whose sub-image could not be written.
// Failures do not block sibling regions on the same page.
type WriteFailure struct {
	ID  int
	Err error
}

// Extractor crops and persists region sub-images.
type Extractor struct {
	format string
	log    *slog.Logger
}

// NewExtractor creates an extractor writing the given image format ("png",
// "jpg"). A nil logger falls back to slog.Default().
func NewExtractor(format string, logger *slog.Logger) *Extractor {
	if format == "" {
		format = "png"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{format: format, log: logger}
}

// Materialize crops each region out of the page and saves it under dir as
// region_<id>_<type>.<format>, ids zero-padded to three digits. The returned
// paths are index-aligned with regions; a failed write leaves an empty
// string at its position and is reported in the failure list, and the
// remaining regions still get written.
func (e *Extractor) Materialize(page image.Image, regions []region.Region, dir string) ([]string, []WriteFailure, error) {
	if page == nil {
		return nil, nil, region.ErrSourceUnavailable
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, err
	}

	paths := make([]string, len(regions))
	var failures []WriteFailure

	for i, r := range regions {
		crop := imaging.Crop(page, image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height))
		name := fmt.Sprintf("region_%03d_%s.%s", r.ID, r.Type, e.format)
		path := filepath.Join(dir, name)

		if err := imaging.Save(crop, path); err != nil {
			e.log.Warn("region write failed", "id", r.ID, "path", path, "error", err)
			failures = append(failures, WriteFailure{ID: r.ID, Err: err})
			continue
		}

		paths[i] = path
		e.log.Debug("region extracted", "file", name, "size", fmt.Sprintf("%dx%d", r.Width, r.Height))
	}

	return paths, failures, nil
}

// MaterializeFile re-reads the source page from disk before cropping, for
// callers that detected on a file-backed page. An unreadable source aborts
// this page's materialization with ErrSourceUnavailable before anything is
// written.
func (e *Extractor) MaterializeFile(pagePath string, regions []region.Region, dir string) ([]string, []WriteFailure, error) {
	page, err := imaging.Open(pagePath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", region.ErrSourceUnavailable, pagePath, err)
	}
	return e.Materialize(page, regions, dir)
}
