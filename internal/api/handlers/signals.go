package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"regexp"

	"github.com/gorilla/mux"

	"github.com/4tenlab/prism-insight/internal/report"
	"github.com/4tenlab/prism-insight/pkg/logger"
)

// SignalHandler serves published signal reports
// ⭐ SSOT: 시그널 API 핸들러는 이 구조체에서만
type SignalHandler struct {
	reportDir string
	logger    *logger.Logger
}

// NewSignalHandler creates a signal handler serving from the report directory
func NewSignalHandler(reportDir string, log *logger.Logger) *SignalHandler {
	return &SignalHandler{
		reportDir: reportDir,
		logger:    log,
	}
}

var (
	modePattern = regexp.MustCompile(`^(morning|afternoon)$`)
	datePattern = regexp.MustCompile(`^\d{8}$`)
)

// GetLatest returns the most recently published report
// GET /api/signals/latest
func (h *SignalHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, filepath.Join(h.reportDir, report.LatestFileName))
}

// GetByDate returns one dated report
// GET /api/signals/{mode}/{date}
func (h *SignalHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mode, date := vars["mode"], vars["date"]

	if !modePattern.MatchString(mode) || !datePattern.MatchString(date) {
		respondError(w, http.StatusBadRequest, "Invalid mode or date")
		return
	}

	h.serveReport(w, filepath.Join(h.reportDir, report.FileName(mode, date)))
}

// serveReport streams a report file, 404 when it was never published
func (h *SignalHandler) serveReport(w http.ResponseWriter, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			respondError(w, http.StatusNotFound, "No report available")
			return
		}
		h.logger.WithError(err).Error("Failed to read report")
		respondError(w, http.StatusInternalServerError, "Failed to read report")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
