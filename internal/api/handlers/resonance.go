package handlers

import (
	"net/http"

	"github.com/dom/ascension-codex/internal/domain"
	"github.com/dom/ascension-codex/internal/service"
	"go.uber.org/zap"
)

type ResonanceHandler struct {
	resonanceService *service.ResonanceService
	log              *zap.Logger
}

func NewResonanceHandler(resonanceService *service.ResonanceService, log *zap.Logger) *ResonanceHandler {
	return &ResonanceHandler{resonanceService: resonanceService, log: log}
}

type ResonanceResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newResonanceResponse(r *domain.Resonance) ResonanceResponse {
	return ResonanceResponse{ID: r.ID.String(), Name: r.Name, Description: r.Description}
}

func (h *ResonanceHandler) List(w http.ResponseWriter, r *http.Request) {
	resonances, err := h.resonanceService.List(r.Context())
	if err != nil {
		h.log.Error("list resonances failed", zap.String("op", "resonance.List"), zap.Error(err))
		http.Error(w, "Failed to list resonances", http.StatusInternalServerError)
		return
	}

	resp := struct {
		Resonances []ResonanceResponse `json:"resonances"`
	}{Resonances: make([]ResonanceResponse, len(resonances))}
	for i, res := range resonances {
		resp.Resonances[i] = newResonanceResponse(res)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ResonanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.ResonanceInput
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resonance, created, err := h.resonanceService.Create(r.Context(), req)
	if err != nil {
		h.log.Error("create resonance failed", zap.String("op", "resonance.Create"), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, newResonanceResponse(resonance))
}
