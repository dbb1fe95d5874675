// Package handlers implements the HTTP endpoints over the scanner and
// the stored scan reports.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tradescout/tradescout/internal/core/scoring"
	"github.com/tradescout/tradescout/internal/scan"
	"github.com/tradescout/tradescout/internal/storage"
	"github.com/tradescout/tradescout/pkg/logger"
)

// ScanStore is the slice of the scan repository the handlers need.
type ScanStore interface {
	SaveReport(ctx context.Context, report *scan.Report) (int64, error)
	LatestReport(ctx context.Context) (*scan.Report, error)
}

// Broadcaster pushes completed scan summaries to stream subscribers.
type Broadcaster interface {
	Broadcast(v interface{})
}

// ScanHandler serves the screening endpoints. Store and broadcaster may
// be nil; the handler then runs stateless.
type ScanHandler struct {
	scanner     *scan.Scanner
	store       ScanStore
	broadcaster Broadcaster
	logger      *logger.Logger
}

// NewScanHandler creates the handler.
func NewScanHandler(scanner *scan.Scanner, store ScanStore, broadcaster Broadcaster, log *logger.Logger) *ScanHandler {
	return &ScanHandler{
		scanner:     scanner,
		store:       store,
		broadcaster: broadcaster,
		logger:      log,
	}
}

// GetCrossovers returns the golden/death cross report for a symbol.
// GET /api/crossovers/{symbol}
func (h *ScanHandler) GetCrossovers(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	report, err := h.scanner.Crossovers(r.Context(), symbol)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Error("Failed to build crossover report")
		respondError(w, http.StatusBadGateway, "Failed to fetch history for "+symbol)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// GetScreener returns the latest ranked picks for one strategy.
// GET /api/screener/{strategy}?limit=N
func (h *ScanHandler) GetScreener(w http.ResponseWriter, r *http.Request) {
	strategy, err := scoring.Parse(mux.Vars(r)["strategy"])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, ok := h.latestReport(w, r)
	if !ok {
		return
	}

	picks := report.Strategies[strategy]
	if limit := queryInt(r, "limit"); limit > 0 && len(picks) > limit {
		picks = picks[:limit]
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"strategy": strategy,
		"date":     report.Date,
		"picks":    picks,
	})
}

// GetAlerts returns the latest alerts grouped by category.
// GET /api/alerts
func (h *ScanHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	report, ok := h.latestReport(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"date":   report.Date,
		"alerts": report.Alerts,
	})
}

// ScanRequest is the optional body of a scan trigger.
type ScanRequest struct {
	Symbols []string `json:"symbols,omitempty"`
	TopN    int      `json:"top_n,omitempty"`
}

// TriggerScan runs a scan synchronously, persists it, and broadcasts
// the summary.
// POST /api/scan
func (h *ScanHandler) TriggerScan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	report, err := h.scanner.Run(r.Context(), scan.Options{
		Symbols: req.Symbols,
		TopN:    req.TopN,
	})
	if err != nil {
		h.logger.WithError(err).Error("Scan failed")
		respondError(w, http.StatusBadGateway, "Scan failed")
		return
	}

	if h.store != nil {
		if _, err := h.store.SaveReport(r.Context(), report); err != nil {
			h.logger.WithError(err).Error("Failed to persist scan report")
		}
	}
	if h.broadcaster != nil {
		h.broadcaster.Broadcast(summarize(report))
	}

	respondJSON(w, http.StatusOK, report)
}

// latestReport loads the most recent stored report, writing the error
// response itself when unavailable.
func (h *ScanHandler) latestReport(w http.ResponseWriter, r *http.Request) (*scan.Report, bool) {
	if h.store == nil {
		respondError(w, http.StatusNotFound, "No scan reports available")
		return nil, false
	}

	report, err := h.store.LatestReport(r.Context())
	if errors.Is(err, storage.ErrNoReports) {
		respondError(w, http.StatusNotFound, "No scan reports available")
		return nil, false
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load latest report")
		respondError(w, http.StatusInternalServerError, "Failed to load latest report")
		return nil, false
	}
	return report, true
}

// summarize is the compact websocket payload for a completed run.
func summarize(report *scan.Report) map[string]interface{} {
	counts := make(map[scoring.Strategy]int, len(report.Strategies))
	for strategy, picks := range report.Strategies {
		counts[strategy] = len(picks)
	}
	return map[string]interface{}{
		"event":   "scan_completed",
		"date":    report.Date,
		"scanned": report.Scanned,
		"failed":  report.Failed,
		"picks":   counts,
	}
}

func queryInt(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

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
