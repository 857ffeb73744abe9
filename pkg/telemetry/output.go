package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// Writer streams TickStats records to a CSV file, writing the header once
// on the first record. A nil Writer discards everything, so callers can
// leave telemetry disabled without branching.
type Writer struct {
	file          *os.File
	headerWritten bool
}

// NewWriter creates the stats file, creating parent directories as needed.
// Returns nil if path is empty (telemetry disabled).
func NewWriter(path string) (*Writer, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating telemetry directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating telemetry file: %w", err)
	}
	return &Writer{file: f}, nil
}

// Write appends one record, emitting the header on the first call.
func (w *Writer) Write(stats TickStats) error {
	if w == nil {
		return nil
	}

	records := []TickStats{stats}
	if !w.headerWritten {
		if err := gocsv.Marshal(records, w.file); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.file); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// Close flushes and closes the stats file.
func (w *Writer) Close() error {
	if w == nil || w.file == nil {
		return nil
	}
	return w.file.Close()
}
