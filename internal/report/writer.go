package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/4tenlab/prism-insight/pkg/logger"
)

// LatestFileName is the stable alias the API serves
const LatestFileName = "latest.json"

// Writer persists signal documents as JSON files under a fixed directory
type Writer struct {
	dir    string
	logger *logger.Logger
}

// NewWriter creates a writer rooted at dir, creating it when missing
func NewWriter(dir string, log *logger.Logger) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}
	return &Writer{dir: dir, logger: log}, nil
}

// FileName builds the dated report file name for a run
func FileName(mode, tradeDate string) string {
	return fmt.Sprintf("signals_%s_%s.json", mode, tradeDate)
}

// Write persists the document to its dated file and refreshes latest.json.
// Both writes go through a temp file and rename so readers never observe a
// half-written report.
func (w *Writer) Write(doc *Document) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	name := FileName(doc.Metadata.TriggerMode, doc.Metadata.TradeDate)
	path := filepath.Join(w.dir, name)

	if err := w.writeAtomic(path, data); err != nil {
		return "", err
	}
	if err := w.writeAtomic(filepath.Join(w.dir, LatestFileName), data); err != nil {
		return "", err
	}

	w.logger.WithFields(map[string]interface{}{
		"path":       path,
		"trade_date": doc.Metadata.TradeDate,
		"mode":       doc.Metadata.TriggerMode,
	}).Info("Signal report written")

	return path, nil
}

// LatestPath returns the path of the latest.json alias
func (w *Writer) LatestPath() string {
	return filepath.Join(w.dir, LatestFileName)
}

func (w *Writer) writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(w.dir, ".signals-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close report: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publish report: %w", err)
	}

	return nil
}
