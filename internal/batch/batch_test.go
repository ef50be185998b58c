package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkarev/pdf2html/internal/config"
	"github.com/mkarev/pdf2html/internal/region"
)

// fakeSource serves synthetic white pages and fails on request.
type fakeSource struct {
	pages    int
	failPage int // index that fails to render, -1 for none
}

func (f *fakeSource) PageCount() int { return f.pages }

func (f *fakeSource) GetPageDimensions(index int) (float64, float64, error) {
	return 64, 64, nil
}

func (f *fakeSource) RenderPage(index int, dpi int) (image.Image, error) {
	if index == f.failPage {
		return nil, fmt.Errorf("%w: synthetic failure", region.ErrPageUnreadable)
	}
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img, nil
}

func (f *fakeSource) Close() error { return nil }

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	cfg.Workers = 2
	return cfg
}

func TestRunPageIsolation(t *testing.T) {
	cfg := testConfig(t)
	src := &fakeSource{pages: 3, failPage: 1}

	runner := NewRunner(cfg, src, nil, nil)
	outcomes, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(outcomes))
	}

	if !errors.Is(outcomes[1].Err, region.ErrPageUnreadable) {
		t.Errorf("page 2 err = %v, want ErrPageUnreadable", outcomes[1].Err)
	}
	for _, i := range []int{0, 2} {
		if outcomes[i].Err != nil {
			t.Errorf("page %d failed alongside its sibling: %v", i+1, outcomes[i].Err)
		}
		if outcomes[i].Result == nil {
			t.Errorf("page %d has no result", i+1)
		}
	}

	// only the surviving pages persisted records
	for _, page := range []int{1, 3} {
		path := filepath.Join(cfg.OutputDir, "text", fmt.Sprintf("page_%03d_regions.json", page))
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing result for page %d: %v", page, err)
		}
	}
	failedPath := filepath.Join(cfg.OutputDir, "text", "page_002_regions.json")
	if _, err := os.Stat(failedPath); err == nil {
		t.Errorf("failed page wrote a result record")
	}
}

func TestRunOrdersOutcomesByPage(t *testing.T) {
	cfg := testConfig(t)
	src := &fakeSource{pages: 5, failPage: -1}

	runner := NewRunner(cfg, src, nil, nil)
	outcomes, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for i, o := range outcomes {
		if o.Err != nil {
			t.Fatalf("page %d failed: %v", i+1, o.Err)
		}
		if o.Result.PageNumber != i+1 {
			t.Errorf("outcome %d holds page %d", i, o.Result.PageNumber)
		}
	}
}

func TestRunEmptySource(t *testing.T) {
	cfg := testConfig(t)
	runner := NewRunner(cfg, &fakeSource{pages: 0, failPage: -1}, nil, nil)

	if _, err := runner.Run(context.Background()); err == nil {
		t.Errorf("empty source did not error")
	}
}

func TestRunCancelledContext(t *testing.T) {
	cfg := testConfig(t)
	src := &fakeSource{pages: 3, failPage: -1}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(cfg, src, nil, nil)
	outcomes, err := runner.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for i, o := range outcomes {
		if !errors.Is(o.Err, context.Canceled) {
			t.Errorf("page %d err = %v, want context.Canceled", i+1, o.Err)
		}
	}
}
