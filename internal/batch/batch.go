// Package batch runs the per-page pipeline across a document, one page per
// worker. Pages are independent; a failure on one page never aborts its
// siblings, and each page's outcome records its own error if any.
package batch

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/mkarev/pdf2html/internal/config"
	"github.com/mkarev/pdf2html/internal/extract"
	"github.com/mkarev/pdf2html/internal/region"
	"github.com/mkarev/pdf2html/internal/source"
	"github.com/mkarev/pdf2html/internal/system"
)

// TextRecognizer supplies recognized-text boxes for a rendered page. A nil
// recognizer runs detection without text exclusion.
type TextRecognizer interface {
	BoxesForPage(img image.Image) ([]region.TextBox, error)
}

// PageOutcome is the result of one page, indexed by page order.
type PageOutcome struct {
	Result *extract.PageResult
	Err    error
}

// Runner drives the detection pipeline over all pages of a source.
type Runner struct {
	cfg *config.Config
	src source.Source
	rec TextRecognizer
	det *region.Detector
	ext *extract.Extractor
	log *slog.Logger
}

func NewRunner(cfg *config.Config, src source.Source, rec TextRecognizer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg: cfg,
		src: src,
		rec: rec,
		det: region.NewDetector(cfg.Detection, logger),
		ext: extract.NewExtractor(cfg.ImageFormat, logger),
		log: logger,
	}
}

// Run processes every page and returns one outcome per page, in page order.
// ctx cancellation stops pages that have not started; in-flight pages run to
// completion.
func (r *Runner) Run(ctx context.Context) ([]PageOutcome, error) {
	pageCount := r.src.PageCount()
	if pageCount == 0 {
		return nil, fmt.Errorf("source contains no pages")
	}

	workers := r.cfg.Workers
	if workers <= 0 {
		workers = system.SuggestWorkers(0)
	}
	r.log.Info("processing pages", "pages", pageCount, "workers", workers)

	outcomes := make([]PageOutcome, pageCount)

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i := 0; i < pageCount; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i] = PageOutcome{Err: err}
				return nil
			}
			outcomes[i] = r.processPage(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}

	return outcomes, nil
}

func (r *Runner) processPage(index int) PageOutcome {
	pageNum := index + 1
	log := r.log.With("page", pageNum)

	img, err := r.src.RenderPage(index, r.cfg.DPI)
	if err != nil {
		log.Error("page render failed", "error", err)
		return PageOutcome{Err: err}
	}

	var textBoxes []region.TextBox
	if r.rec != nil {
		textBoxes, err = r.rec.BoxesForPage(img)
		if err != nil {
			log.Error("text recognition failed", "error", err)
			return PageOutcome{Err: err}
		}
	}

	regions, err := r.det.Detect(img, textBoxes)
	if err != nil {
		log.Error("region detection failed", "error", err)
		return PageOutcome{Err: err}
	}

	regionsDir := filepath.Join(r.cfg.OutputDir, "images", "regions", fmt.Sprintf("page_%03d", pageNum))
	paths, failures, err := r.ext.Materialize(img, regions, regionsDir)
	if err != nil {
		log.Error("region materialization failed", "error", err)
		return PageOutcome{Err: err}
	}

	result := extract.NewPageResult(pageNum, textBoxes, regions, paths, failures)
	if err := result.Save(filepath.Join(r.cfg.OutputDir, "text")); err != nil {
		log.Error("result persistence failed", "error", err)
		return PageOutcome{Result: result, Err: err}
	}

	if r.cfg.Visualize {
		viz := extract.Visualize(img, textBoxes, regions)
		vizDir := filepath.Join(r.cfg.OutputDir, "images", "visualizations")
		if _, err := extract.SaveVisualization(viz, vizDir, pageNum); err != nil {
			// diagnostic only: note it and keep the page's result
			log.Warn("visualization write failed", "error", err)
		}
	}

	log.Info("page processed",
		"text_regions", len(textBoxes),
		"image_regions", len(regions),
		"failed_writes", len(failures))

	return PageOutcome{Result: result}
}
