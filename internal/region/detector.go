// Package region implements the shape-analysis pipeline that separates
// non-text graphical content from text on a rasterized document page: binary
// preprocessing, outer-contour candidate extraction, exclusion of areas the
// text recognizer already claims, feature extraction and rule-based
// classification. The pipeline is a deterministic function of the page
// pixels and the supplied text boxes.
package region

import (
	"errors"
	"image"
	"log/slog"
	"sort"

	"github.com/mkarev/pdf2html/internal/system"
)

// Detector runs the detection pipeline for one page at a time. It holds no
// per-page state, so a single Detector may serve pages on independent
// workers; the logger it was constructed with is its only output channel
// besides the returned regions.
type Detector struct {
	params Params
	log    *slog.Logger
}

// NewDetector creates a detector with the given parameters. A nil logger
// falls back to slog.Default().
func NewDetector(params Params, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{params: params, log: logger}
}

// Detect finds typed non-text regions on a page. textBoxes are the
// recognizer's boxes for the same page; callers pass either pre-filtered
// boxes or raw output run through FilterConfident. The result is sorted by
// area descending (equal areas keep discovery order) with IDs equal to the
// position in that order.
func (d *Detector) Detect(img image.Image, textBoxes []TextBox) ([]Region, error) {
	if img == nil {
		return nil, ErrPageUnreadable
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrPageUnreadable
	}

	mask := d.preprocess(img)
	candidates := d.findCandidates(mask)
	system.PutGray(mask)

	regions := make([]Region, 0, len(candidates))
	for _, c := range candidates {
		if d.overlapsText(c.bounds, textBoxes) {
			continue
		}

		r, err := d.computeFeatures(img, c)
		if err != nil {
			if errors.Is(err, ErrDegenerateGeometry) {
				d.log.Debug("skipping candidate", "bounds", c.bounds.String(), "error", err)
				continue
			}
			return nil, err
		}

		r.Type = classify(r.EdgeDensity, r.AspectRatio, r.Area, d.params)
		regions = append(regions, r)
	}

	// Largest first; the stable sort keeps discovery order for equal areas,
	// which makes IDs reproducible.
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].Area > regions[j].Area
	})
	for i := range regions {
		regions[i].ID = i
	}

	d.log.Info("region detection finished",
		"candidates", len(candidates),
		"regions", len(regions))

	return regions, nil
}

// FilterConfident drops recognizer boxes at or below the trust threshold
// (confidence 30 on the 0-100 scale). Detect expects its text boxes to have
// passed this filter.
func FilterConfident(boxes []TextBox) []TextBox {
	out := make([]TextBox, 0, len(boxes))
	for _, b := range boxes {
		if b.Confidence > 30 {
			out = append(out, b)
		}
	}
	return out
}
