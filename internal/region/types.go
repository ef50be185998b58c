package region

import "image"

// Type is the classification assigned to a detected region.
type Type string

const (
	TypeDiagram        Type = "diagram"
	TypeLargeImage     Type = "large_image"
	TypeSmallImage     Type = "small_image"
	TypeBlockImage     Type = "block_image"
	TypeGraphicElement Type = "graphic_element"
)

// TextBox is a recognized-text bounding box supplied by the OCR collaborator.
// Confidence is on the recognizer's 0-100 scale.
type TextBox struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Confidence float64 `json:"confidence"`
}

// Region is one detected non-text region with its feature set.
// IDs are assigned by area rank (largest first) and are stable across runs
// for identical input.
type Region struct {
	ID            int     `json:"id"`
	X             int     `json:"x"`
	Y             int     `json:"y"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	Area          float64 `json:"area"`
	Perimeter     float64 `json:"perimeter"`
	AspectRatio   float64 `json:"aspect_ratio"`
	Extent        float64 `json:"extent"`
	EdgeDensity   float64 `json:"edge_density"`
	MeanIntensity float64 `json:"mean_intensity"`
	StdIntensity  float64 `json:"std_intensity"`
	Solidity      float64 `json:"solidity"`
	Type          Type    `json:"type"`
}

// candidate is a contour-derived shape before filtering and classification.
type candidate struct {
	contour []image.Point
	bounds  image.Rectangle
	area    float64
}

// Params holds the detection and classification parameters. The defaults
// match the tuning the pipeline was calibrated with; callers normally use
// DefaultParams and override selectively.
type Params struct {
	MinArea              float64 `yaml:"min_area"`
	MaxAreaRatio         float64 `yaml:"max_area_ratio"`
	TextOverlapThreshold float64 `yaml:"text_overlap_threshold"`

	BlurKernel     int `yaml:"blur_kernel"`
	ThresholdBlock int `yaml:"threshold_block"`
	ThresholdC     int `yaml:"threshold_c"`
	MorphKernel    int `yaml:"morph_kernel"`

	EdgeLowThreshold  float64 `yaml:"edge_low_threshold"`
	EdgeHighThreshold float64 `yaml:"edge_high_threshold"`

	AspectRatioThreshold float64 `yaml:"aspect_ratio_threshold"`
	SizeThreshold        float64 `yaml:"size_threshold"`
	EdgeDensityThreshold float64 `yaml:"edge_density_threshold"`
}

// DefaultParams returns the standard detection parameters.
func DefaultParams() Params {
	return Params{
		MinArea:              2500,
		MaxAreaRatio:         0.8,
		TextOverlapThreshold: 0.3,
		BlurKernel:           3,
		ThresholdBlock:       11,
		ThresholdC:           2,
		MorphKernel:          5,
		EdgeLowThreshold:     50,
		EdgeHighThreshold:    150,
		AspectRatioThreshold: 3.0,
		SizeThreshold:        10000,
		EdgeDensityThreshold: 0.15,
	}
}
