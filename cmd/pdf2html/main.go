package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mkarev/pdf2html/internal/batch"
	"github.com/mkarev/pdf2html/internal/config"
	"github.com/mkarev/pdf2html/internal/ocr"
	"github.com/mkarev/pdf2html/internal/source"
	"github.com/mkarev/pdf2html/internal/system"
)

func main() {
	inputPtr := flag.String("input", "", "PDF file or directory of page images (default: latest PDF in input/pdf/)")
	outputPtr := flag.String("out", "", "Output directory (default from config)")
	configPtr := flag.String("config", "", "YAML config file")
	dpiPtr := flag.Int("dpi", 0, "Render DPI (default from config)")
	workersPtr := flag.Int("workers", 0, "Page workers (0: decide from CPU and memory)")
	langPtr := flag.String("lang", "", "Tesseract language (default from config)")
	vizPtr := flag.Bool("visualize", false, "Write annotated overlay per page")
	noOCRPtr := flag.Bool("no-ocr", false, "Skip text recognition (no text exclusion)")
	verbosePtr := flag.Bool("verbose", false, "Debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbosePtr {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	system.InitResourceLimits()

	cfg := config.Default()
	if *configPtr != "" {
		var err error
		cfg, err = config.Load(*configPtr)
		if err != nil {
			logger.Error("config load failed", "path", *configPtr, "error", err)
			os.Exit(1)
		}
	}
	if *outputPtr != "" {
		cfg.OutputDir = *outputPtr
	}
	if *dpiPtr > 0 {
		cfg.DPI = *dpiPtr
	}
	if *workersPtr > 0 {
		cfg.Workers = *workersPtr
	}
	if *langPtr != "" {
		cfg.Lang = *langPtr
	}
	if *vizPtr {
		cfg.Visualize = true
	}

	input := *inputPtr
	if input == "" {
		var err error
		input, err = system.FindLatestPDF(filepath.Join("input", "pdf"))
		if err != nil {
			logger.Error("no input given and no PDF found", "error", err)
			os.Exit(1)
		}
	}

	src, err := openSource(input)
	if err != nil {
		logger.Error("could not open input", "input", input, "error", err)
		os.Exit(1)
	}
	defer src.Close()

	var rec batch.TextRecognizer
	if !*noOCRPtr {
		rec = ocr.NewRecognizer(cfg.Lang, logger)
	}

	start := time.Now()
	runner := batch.NewRunner(cfg, src, rec, logger)
	outcomes, err := runner.Run(context.Background())
	if err != nil {
		logger.Error("batch failed", "error", err)
		os.Exit(1)
	}

	var pages, failed, regions int
	for _, o := range outcomes {
		pages++
		if o.Err != nil {
			failed++
			continue
		}
		regions += o.Result.TotalImageRegions
	}

	fmt.Printf("Processed %d pages in %s: %d image regions extracted, %d pages failed\n",
		pages, time.Since(start).Round(time.Millisecond), regions, failed)
	fmt.Printf("Output written to %s\n", cfg.OutputDir)
	if failed > 0 {
		os.Exit(1)
	}
}

func openSource(input string) (source.Source, error) {
	if strings.EqualFold(filepath.Ext(input), ".pdf") {
		return source.NewFitzSource(input)
	}
	return source.NewImageSource(input)
}
