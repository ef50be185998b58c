package extract

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mkarev/pdf2html/internal/region"
)

var (
	textBoxColor = color.RGBA{G: 200, A: 255}
	regionColor  = color.RGBA{R: 220, A: 255}
)

// Visualize draws the detection result over a copy of the page: text boxes
// in green tagged TEXT, detected regions in red labeled by type. Purely
// diagnostic; neither the page nor the region data is modified.
func Visualize(page image.Image, textBoxes []region.TextBox, regions []region.Region) *image.RGBA {
	b := page.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, page, b.Min, draw.Src)

	for _, t := range textBoxes {
		r := image.Rect(t.X, t.Y, t.X+t.Width, t.Y+t.Height)
		strokeRect(out, r, textBoxColor, 2)
		drawLabel(out, t.X, t.Y-4, "TEXT", textBoxColor)
	}

	for _, reg := range regions {
		r := image.Rect(reg.X, reg.Y, reg.X+reg.Width, reg.Y+reg.Height)
		strokeRect(out, r, regionColor, 2)
		drawLabel(out, reg.X, reg.Y-4, strings.ToUpper(string(reg.Type)), regionColor)
	}

	return out
}

// SaveVisualization writes the overlay as page_<3-digit page number>_regions_viz.png.
func SaveVisualization(img image.Image, dir string, pageNum int) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("page_%03d_regions_viz.png", pageNum))
	if err := imaging.Save(img, path); err != nil {
		return "", err
	}
	return path, nil
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.Color, thickness int) {
	r = r.Intersect(img.Bounds())
	for t := 0; t < thickness; t++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, r.Min.Y+t, c)
			img.Set(x, r.Max.Y-1-t, c)
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			img.Set(r.Min.X+t, y, c)
			img.Set(r.Max.X-1-t, y, c)
		}
	}
}

func drawLabel(img *image.RGBA, x, y int, label string, c color.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(label)
}
