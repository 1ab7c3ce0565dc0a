package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"warehouse-print-agent/internal/config"
	"warehouse-print-agent/internal/device"
	"warehouse-print-agent/internal/models"
	"warehouse-print-agent/internal/printing"
	"warehouse-print-agent/internal/update"
)

// Updater applies a downloaded agent binary.
type Updater interface {
	Apply(url, version string) (*update.Result, error)
}

// Handler is the thin gateway between the portal and the print engine. It
// deserializes, delegates, and reports; all policy lives in the engine.
type Handler struct {
	engine  *printing.Engine
	store   *config.Store
	history *printing.History
	hub     *Hub
	updater Updater
	log     *zap.Logger
}

func NewHandler(engine *printing.Engine, store *config.Store, history *printing.History, hub *Hub, updater Updater, log *zap.Logger) *Handler {
	return &Handler{
		engine:  engine,
		store:   store,
		history: history,
		hub:     hub,
		updater: updater,
		log:     log,
	}
}

func (h *Handler) handleDeviceInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, device.Info())
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "running",
		"version":   models.AgentVersion,
		"stationId": h.store.Profile().StationID,
	})
}

func (h *Handler) handlePrinters(w http.ResponseWriter, r *http.Request) {
	printers, err := printing.ListPrinters()
	if err != nil {
		h.log.Error("printer enumeration failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list printers: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, printers)
}

// handlePrint runs one job through the pipeline. Pipeline failures come back
// as a structured body with success=false, not as an HTTP error: the request
// itself was handled fine.
func (h *Handler) handlePrint(w http.ResponseWriter, r *http.Request) {
	var job models.PrintJob
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if job.Payload == "" {
		respondError(w, http.StatusBadRequest, "payload is required")
		return
	}
	if job.DocumentType == "" {
		respondError(w, http.StatusBadRequest, "documentType is required")
		return
	}

	result := h.engine.PrintDocument(r.Context(), job)
	respondJSON(w, http.StatusOK, result)
}

// handlePrintBatch processes an ordered job list. The call always succeeds
// at the HTTP level; per-item status is embedded in the outcome.
func (h *Handler) handlePrintBatch(w http.ResponseWriter, r *http.Request) {
	var jobs []models.PrintJob
	if err := json.NewDecoder(r.Body).Decode(&jobs); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome := h.engine.RunBatch(r.Context(), jobs)
	respondJSON(w, http.StatusOK, outcome)
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Profile())
}

func (h *Handler) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var profileUpdate models.StationProfile
	if err := json.NewDecoder(r.Body).Decode(&profileUpdate); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := h.store.Save(profileUpdate)
	if err != nil {
		h.log.Error("settings save failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to save settings: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

func (h *Handler) handleJobs(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.history.Records())
}

func (h *Handler) handleClearJobs(w http.ResponseWriter, r *http.Request) {
	h.history.Clear()
	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL     string `json:"url"`
		Version string `json:"version"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" || req.Version == "" {
		respondError(w, http.StatusBadRequest, "url and version required")
		return
	}

	result, err := h.updater.Apply(req.URL, req.Version)
	if err != nil {
		h.log.Error("self-update failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "update failed: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}
