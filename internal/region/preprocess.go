package region

import (
	"image"
	"image/color"

	"github.com/mkarev/pdf2html/internal/system"
)

// preprocess converts a page to the binary mask contour extraction runs on:
// luminance, 3x3 Gaussian smoothing, adaptive mean thresholding, then a
// morphological closing to bridge small gaps. The returned mask is pooled;
// the caller releases it with system.PutGray.
func (d *Detector) preprocess(img image.Image) *image.Gray {
	gray := toGrayscale(img)

	blurred := gaussianBlur(gray, d.params.BlurKernel)
	system.PutGray(gray)

	binary := adaptiveThreshold(blurred, d.params.ThresholdBlock, d.params.ThresholdC)
	system.PutGray(blurred)

	mask := morphClose(binary, d.params.MorphKernel)
	system.PutGray(binary)

	return mask
}

// toGrayscale converts an image to grayscale.
func toGrayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := system.GetGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}

	return gray
}

// gaussianBlur applies a separable binomial smoothing kernel. Kernel size 3
// uses the standard 1-2-1 weights; anything else falls back to a box mean of
// the same size. Borders are clamped.
func gaussianBlur(gray *image.Gray, kernel int) *image.Gray {
	if kernel < 3 {
		kernel = 3
	}
	bounds := gray.Bounds()
	out := system.GetGray(bounds)
	half := kernel / 2

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var sum, weight int
			for ky := -half; ky <= half; ky++ {
				for kx := -half; kx <= half; kx++ {
					px := clamp(x+kx, bounds.Min.X, bounds.Max.X-1)
					py := clamp(y+ky, bounds.Min.Y, bounds.Max.Y-1)
					w := 1
					if kernel == 3 {
						w = (2 - abs(kx)) * (2 - abs(ky))
					}
					sum += int(gray.GrayAt(px, py).Y) * w
					weight += w
				}
			}
			out.SetGray(x, y, color.Gray{Y: uint8(sum / weight)})
		}
	}

	return out
}

// adaptiveThreshold binarizes against the local window mean: a pixel becomes
// foreground (255) when it exceeds mean(block x block) - c. The window mean
// comes from a summed-area table so the pass is O(1) per pixel.
func adaptiveThreshold(gray *image.Gray, block, c int) *image.Gray {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := system.GetGray(bounds)

	// integral[y][x] holds the sum over the rectangle above and left of (x, y)
	integral := make([]uint64, (w+1)*(h+1))
	stride := w + 1
	for y := 0; y < h; y++ {
		var rowSum uint64
		for x := 0; x < w; x++ {
			rowSum += uint64(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			integral[(y+1)*stride+x+1] = integral[y*stride+x+1] + rowSum
		}
	}

	half := block / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0 := clamp(x-half, 0, w-1)
			x1 := clamp(x+half, 0, w-1)
			y0 := clamp(y-half, 0, h-1)
			y1 := clamp(y+half, 0, h-1)

			count := uint64((x1 - x0 + 1) * (y1 - y0 + 1))
			sum := integral[(y1+1)*stride+x1+1] - integral[y0*stride+x1+1] -
				integral[(y1+1)*stride+x0] + integral[y0*stride+x0]
			mean := int(sum / count)

			v := uint8(0)
			if int(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y) > mean-c {
				v = 255
			}
			out.SetGray(bounds.Min.X+x, bounds.Min.Y+y, color.Gray{Y: v})
		}
	}

	return out
}

// morphClose performs a binary closing (dilation then erosion) with a square
// structuring element, filling gaps narrower than the kernel.
func morphClose(img *image.Gray, kernel int) *image.Gray {
	dilated := dilate(img, kernel)
	eroded := erode(dilated, kernel)
	system.PutGray(dilated)
	return eroded
}

// dilate performs morphological dilation with a square kernel.
func dilate(img *image.Gray, kernelSize int) *image.Gray {
	return morph(img, kernelSize, func(a, b uint8) bool { return a > b })
}

// erode performs morphological erosion with a square kernel.
func erode(img *image.Gray, kernelSize int) *image.Gray {
	return morph(img, kernelSize, func(a, b uint8) bool { return a < b })
}

func morph(img *image.Gray, kernelSize int, better func(a, b uint8) bool) *image.Gray {
	bounds := img.Bounds()
	out := system.GetGray(bounds)
	half := kernelSize / 2

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			best := img.GrayAt(x, y).Y
			for ky := -half; ky <= half; ky++ {
				for kx := -half; kx <= half; kx++ {
					px := clamp(x+kx, bounds.Min.X, bounds.Max.X-1)
					py := clamp(y+ky, bounds.Min.Y, bounds.Max.Y-1)
					if v := img.GrayAt(px, py).Y; better(v, best) {
						best = v
					}
				}
			}
			out.SetGray(x, y, color.Gray{Y: best})
		}
	}

	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
