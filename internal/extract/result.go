package extract

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/mkarev/pdf2html/internal/region"
)

// PageResult is the structured record produced for the markup-assembly step,
// one per page. ExtractedRegionPaths is index-aligned with ImageRegions;
// ids whose sub-image failed to persist are listed in FailedRegionIDs.
type PageResult struct {
	PageNumber           int             `json:"page_number"`
	TotalTextRegions     int             `json:"total_text_regions"`
	TotalImageRegions    int             `json:"total_image_regions"`
	TextRegions          [][4]int        `json:"text_regions"`
	ImageRegions         []region.Region `json:"image_regions"`
	ExtractedRegionPaths []string        `json:"extracted_region_paths"`
	FailedRegionIDs      []int           `json:"failed_region_ids,omitempty"`
}

// NewPageResult assembles the page record from the pipeline outputs.
func NewPageResult(pageNum int, textBoxes []region.TextBox, regions []region.Region, paths []string, failures []WriteFailure) *PageResult {
	result := &PageResult{
		PageNumber:           pageNum,
		TotalTextRegions:     len(textBoxes),
		TotalImageRegions:    len(regions),
		TextRegions:          make([][4]int, 0, len(textBoxes)),
		ImageRegions:         regions,
		ExtractedRegionPaths: paths,
	}

	for _, t := range textBoxes {
		result.TextRegions = append(result.TextRegions, [4]int{t.X, t.Y, t.Width, t.Height})
	}
	for _, f := range failures {
		result.FailedRegionIDs = append(result.FailedRegionIDs, f.ID)
	}

	return result
}

// Save writes the record as indented JSON under dir as
// page_<3-digit page number>_regions.json. Feature values are rounded to two
// decimal places for the file; the in-memory record keeps full precision.
func (r *PageResult) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	rounded := *r
	rounded.ImageRegions = make([]region.Region, len(r.ImageRegions))
	for i, reg := range r.ImageRegions {
		reg.Area = round2(reg.Area)
		reg.Perimeter = round2(reg.Perimeter)
		reg.AspectRatio = round2(reg.AspectRatio)
		reg.Extent = round2(reg.Extent)
		reg.EdgeDensity = round2(reg.EdgeDensity)
		reg.MeanIntensity = round2(reg.MeanIntensity)
		reg.StdIntensity = round2(reg.StdIntensity)
		reg.Solidity = round2(reg.Solidity)
		rounded.ImageRegions[i] = reg
	}

	data, err := json.MarshalIndent(&rounded, "", "  ")
	if err != nil {
		return err
	}

	name := fmt.Sprintf("page_%03d_regions.json", r.PageNumber)
	return os.WriteFile(filepath.Join(dir, name), data, 0644)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
