package region

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// overlapsText reports whether the candidate box overlaps any supplied text
// box by more than the exclusion threshold of its own area. A single
// qualifying box is enough, so the check short-circuits.
func (d *Detector) overlapsText(box image.Rectangle, textBoxes []TextBox) bool {
	area := float64(box.Dx() * box.Dy())
	if area <= 0 {
		return false
	}

	for _, t := range textBoxes {
		if intersectArea(box, t)/area > d.params.TextOverlapThreshold {
			return true
		}
	}
	return false
}

// computeFeatures fills a Region with the geometric and pixel-statistics
// features of one candidate, computed over the contour and the cropped
// sub-image of the original page. Degenerate geometry yields
// ErrDegenerateGeometry; the caller skips just that candidate.
func (d *Detector) computeFeatures(page image.Image, c candidate) (Region, error) {
	w := c.bounds.Dx()
	h := c.bounds.Dy()
	if w <= 0 || h <= 0 {
		return Region{}, fmt.Errorf("%w: %dx%d bounding box", ErrDegenerateGeometry, w, h)
	}

	hull := convexHull(c.contour)
	hullArea := polygonArea(hull)
	if hullArea <= 0 {
		return Region{}, fmt.Errorf("%w: flat convex hull", ErrDegenerateGeometry)
	}

	boxArea := float64(w * h)
	roi := cropGray(page, c.bounds)
	edgeCount := countEdges(roi, d.params.EdgeLowThreshold, d.params.EdgeHighThreshold)
	mean, std := intensityStats(roi)

	return Region{
		X:             c.bounds.Min.X,
		Y:             c.bounds.Min.Y,
		Width:         w,
		Height:        h,
		Area:          c.area,
		Perimeter:     arcLength(c.contour),
		AspectRatio:   float64(w) / float64(h),
		Extent:        c.area / boxArea,
		EdgeDensity:   float64(edgeCount) / boxArea,
		MeanIntensity: mean,
		StdIntensity:  std,
		Solidity:      c.area / hullArea,
	}, nil
}

// cropGray extracts the grayscale sub-image of the page under rect. rect is
// in mask coordinates, zero-origin relative to the page bounds.
func cropGray(page image.Image, rect image.Rectangle) *image.Gray {
	b := page.Bounds()
	out := image.NewGray(image.Rect(0, 0, rect.Dx(), rect.Dy()))

	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			px := clamp(b.Min.X+rect.Min.X+x, b.Min.X, b.Max.X-1)
			py := clamp(b.Min.Y+rect.Min.Y+y, b.Min.Y, b.Max.Y-1)
			out.Set(x, y, color.GrayModel.Convert(page.At(px, py)))
		}
	}

	return out
}

// countEdges runs a double-threshold Sobel edge detector over the grayscale
// sub-image and returns the number of edge pixels. Pixels at or above the
// high threshold are edges; pixels between the thresholds count only when
// 8-adjacent to a strong edge.
func countEdges(gray *image.Gray, low, high float64) int {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 3 || h < 3 {
		return 0
	}

	grades := make([]uint8, w*h)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			var sumX, sumY int
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					pixel := int(gray.GrayAt(x+kx, y+ky).Y)
					sumX += pixel * sobelX[ky+1][kx+1]
					sumY += pixel * sobelY[ky+1][kx+1]
				}
			}

			magnitude := math.Sqrt(float64(sumX*sumX + sumY*sumY))
			switch {
			case magnitude >= high:
				grades[y*w+x] = gradeStrong
			case magnitude >= low:
				grades[y*w+x] = gradeWeak
			}
		}
	}

	count := 0
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			switch grades[y*w+x] {
			case gradeStrong:
				count++
			case gradeWeak:
				if hasStrongNeighbor(grades, w, x, y) {
					count++
				}
			}
		}
	}

	return count
}

const (
	gradeNone uint8 = iota
	gradeWeak
	gradeStrong
)

var sobelX = [3][3]int{
	{-1, 0, 1},
	{-2, 0, 2},
	{-1, 0, 1},
}

var sobelY = [3][3]int{
	{-1, -2, -1},
	{0, 0, 0},
	{1, 2, 1},
}

func hasStrongNeighbor(grades []uint8, w, x, y int) bool {
	for _, d := range neighbors8 {
		if grades[(y+d.Y)*w+x+d.X] == gradeStrong {
			return true
		}
	}
	return false
}

// intensityStats returns the mean and standard deviation of the luminance.
func intensityStats(gray *image.Gray) (mean, std float64) {
	b := gray.Bounds()
	n := float64(b.Dx() * b.Dy())
	if n == 0 {
		return 0, 0
	}

	var sum float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sum += float64(gray.GrayAt(x, y).Y)
		}
	}
	mean = sum / n

	var sq float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dv := float64(gray.GrayAt(x, y).Y) - mean
			sq += dv * dv
		}
	}
	return mean, math.Sqrt(sq / n)
}
