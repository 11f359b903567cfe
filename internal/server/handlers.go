package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"trendlens/internal/keys"
	"trendlens/internal/model"
	"trendlens/internal/trends"
)

type handler struct {
	svc  *trends.Service
	keys *keys.Store
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("server: encode response", "error", err)
	}
}

// postTrends runs the full aggregation pipeline for a search request.
func (h *handler) postTrends(w http.ResponseWriter, r *http.Request) {
	var req model.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	agg, err := h.svc.Aggregate(r.Context(), req)
	if err != nil {
		if errors.Is(err, trends.ErrBadRequest) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		slog.Error("server: trends request failed", "query", req.Query, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to fetch trends"})
		return
	}
	writeJSON(w, http.StatusOK, agg)
}

type summaryRequest struct {
	Items []model.TrendItem `json:"items"`
}

// postSummary summarizes a caller-supplied item list.
func (h *handler) postSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	sum, err := h.svc.SummarizeItems(r.Context(), req.Items)
	if err != nil {
		if errors.Is(err, trends.ErrBadRequest) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		slog.Error("server: summary request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to generate summary"})
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

type keysResponse struct {
	Config         keys.Credentials `json:"config"`
	KeysConfigured keys.Status      `json:"keysConfigured"`
}

// getKeys returns the masked credential view.
func (h *handler) getKeys(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, keysResponse{
		Config:         h.keys.Masked(),
		KeysConfigured: h.keys.Configured(),
	})
}

type updateKeysResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// postKeys overlays user-supplied credentials on the environment defaults.
func (h *handler) postKeys(w http.ResponseWriter, r *http.Request) {
	var creds keys.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	h.keys.Update(creds)
	writeJSON(w, http.StatusOK, updateKeysResponse{Success: true, Message: "API keys updated successfully"})
}
