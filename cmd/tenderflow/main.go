package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/david/tenderflow/internal/config"
	"github.com/david/tenderflow/internal/models"
	"github.com/david/tenderflow/internal/pipeline"
	"github.com/david/tenderflow/internal/report"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config overlaying the built-in defaults")
		inputPath  = flag.String("input", "-", "JSON array of raw records, or - for stdin")
		outPath    = flag.String("out", "-", "where to write the JSON report, or - for stdout")
		renderTab  = flag.Bool("table", false, "render a table to stdout instead of JSON")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// Bad thresholds or exchange rates would misclassify every record,
		// so configuration errors are fatal before any processing starts.
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	batch, err := readBatch(*inputPath)
	if err != nil {
		logger.Fatal("reading input", zap.String("path", *inputPath), zap.Error(err))
	}

	p := pipeline.New(cfg, logger)
	scored := p.Run(context.Background(), batch)

	summary := report.Summarize(scored)
	logger.Info("run summary",
		zap.Int("total", summary.Total),
		zap.Int("duplicates", summary.Duplicates),
		zap.Any("by_priority", summary.ByPriority))

	if *renderTab {
		report.RenderTable(os.Stdout, scored)
		if *outPath == "-" {
			return
		}
	}
	if err := writeReport(*outPath, report.NewReport(scored, time.Now())); err != nil {
		logger.Fatal("writing report", zap.String("path", *outPath), zap.Error(err))
	}
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func readBatch(path string) ([]models.RawRecord, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var batch []models.RawRecord
	if err := json.NewDecoder(r).Decode(&batch); err != nil {
		return nil, fmt.Errorf("decode raw records: %w", err)
	}
	return batch, nil
}

func writeReport(path string, rep report.Report) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return report.WriteJSON(w, rep)
}
