// Package source provides page pixel matrices to the detection pipeline,
// either by rasterizing a PDF or by reading pre-rendered page images.
package source

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"

	"github.com/mkarev/pdf2html/internal/region"
)

// Source yields one pixel matrix per page at a caller-chosen resolution.
type Source interface {
	PageCount() int
	GetPageDimensions(index int) (width, height float64, err error)
	RenderPage(index int, dpi int) (image.Image, error)
	Close() error
}

// FitzSource rasterizes PDF pages through go-fitz. RenderPage opens a
// per-call document so pages can be rendered from independent workers.
type FitzSource struct {
	doc  *fitz.Document
	path string
}

func NewFitzSource(path string) (*FitzSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", region.ErrPageUnreadable, err)
	}
	return &FitzSource{doc: doc, path: path}, nil
}

func (f *FitzSource) PageCount() int {
	return f.doc.NumPage()
}

func (f *FitzSource) GetPageDimensions(index int) (float64, float64, error) {
	rect, err := f.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	return float64(rect.Dx()), float64(rect.Dy()), nil
}

func (f *FitzSource) RenderPage(index int, dpi int) (image.Image, error) {
	workerDoc, err := fitz.New(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", region.ErrPageUnreadable, err)
	}
	defer workerDoc.Close()

	img, err := workerDoc.ImageDPI(index, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("%w: page %d: %v", region.ErrPageUnreadable, index, err)
	}
	return img, nil
}

func (f *FitzSource) Close() error {
	return f.doc.Close()
}
