package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zombor/receipt-ocr/internal/extraction"
)

// imageProcessor is the part of extraction.Processor the batch runner needs
type imageProcessor interface {
	ProcessImage(ctx context.Context, imageData []byte, contentType string) *extraction.Record
}

// detectContentType sniffs the file bytes, falling back to the extension for
// formats the sniffer does not know about
func detectContentType(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	}
	return http.DetectContentType(data)
}

// processFile reads one image and extracts its record. Unreadable files
// become error records so every argument yields one line of output.
func processFile(ctx context.Context, p imageProcessor, path string) *extraction.Record {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("Failed to read image", "path", path, "error", err)
		return extraction.ErrorRecord(fmt.Errorf("reading image: %w", err), time.Now())
	}
	return p.ProcessImage(ctx, data, detectContentType(path, data))
}

// processFiles runs processFile over paths with at most workers in flight.
// Results keep the order of paths.
func processFiles(ctx context.Context, p imageProcessor, paths []string, workers int) []*extraction.Record {
	records := make([]*extraction.Record, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, path := range paths {
		g.Go(func() error {
			records[i] = processFile(ctx, p, path)
			return nil
		})
	}
	_ = g.Wait()

	return records
}

// writeRecords prints a single record as indented JSON, or one compact JSON
// object per line when there are several
func writeRecords(w io.Writer, records []*extraction.Record) error {
	enc := json.NewEncoder(w)
	if len(records) == 1 {
		enc.SetIndent("", "  ")
	}
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
	}
	return nil
}
