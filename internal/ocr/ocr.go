// Package ocr adapts Tesseract output to the text-box contract the region
// detector consumes: word-level bounding boxes, filtered to confidence
// above 30.
package ocr

import (
	"bytes"
	"image"
	"image/png"
	"log/slog"

	"github.com/otiai10/gosseract/v2"

	"github.com/mkarev/pdf2html/internal/region"
)

// Recognizer wraps a Tesseract client configuration. Each call runs its own
// client, so a Recognizer is safe to share across page workers.
type Recognizer struct {
	lang string
	log  *slog.Logger
}

// NewRecognizer creates a recognizer for the given Tesseract language
// ("eng", "chi_tra+eng", ...). A nil logger falls back to slog.Default().
func NewRecognizer(lang string, logger *slog.Logger) *Recognizer {
	if lang == "" {
		lang = "eng"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Recognizer{lang: lang, log: logger}
}

// BoxesForImage recognizes a page image file and returns the confident word
// boxes.
func (r *Recognizer) BoxesForImage(path string) ([]region.TextBox, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(r.lang); err != nil {
		return nil, err
	}
	if err := client.SetImage(path); err != nil {
		return nil, err
	}

	return r.collect(client)
}

// BoxesForPage recognizes an in-memory page.
func (r *Recognizer) BoxesForPage(img image.Image) ([]region.TextBox, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(r.lang); err != nil {
		return nil, err
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, err
	}

	return r.collect(client)
}

func (r *Recognizer) collect(client *gosseract.Client) ([]region.TextBox, error) {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, err
	}

	raw := make([]region.TextBox, 0, len(boxes))
	for _, b := range boxes {
		raw = append(raw, region.TextBox{
			X:          b.Box.Min.X,
			Y:          b.Box.Min.Y,
			Width:      b.Box.Dx(),
			Height:     b.Box.Dy(),
			Confidence: b.Confidence,
		})
	}

	confident := region.FilterConfident(raw)
	r.log.Debug("text recognition finished", "words", len(raw), "confident", len(confident))
	return confident, nil
}
