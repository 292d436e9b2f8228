package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/dom/ascension-codex/internal/api/middleware"
	"github.com/dom/ascension-codex/internal/domain"
	"github.com/dom/ascension-codex/internal/repository"
	"github.com/dom/ascension-codex/internal/service"
	"go.uber.org/zap"
)

// Form bodies larger than this are rejected
const maxFormBytes = 1 << 20

type WonderHandler struct {
	wonderService *service.WonderService
	log           *zap.Logger
}

func NewWonderHandler(wonderService *service.WonderService, log *zap.Logger) *WonderHandler {
	return &WonderHandler{wonderService: wonderService, log: log}
}

type WonderResonanceResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

type WonderResponse struct {
	ID             string                    `json:"id"`
	Kind           domain.WonderKind         `json:"kind"`
	Name           string                    `json:"name"`
	Description    string                    `json:"description"`
	Rank           int                       `json:"rank"`
	Arete          *int                      `json:"arete"`
	ResonanceTotal int                       `json:"resonanceTotal"`
	Resonance      []WonderResonanceResponse `json:"resonance"`
	Effects        []EffectResponse          `json:"effects"`
	CreatedBy      *string                   `json:"createdBy,omitempty"`
	CreatedAt      time.Time                 `json:"createdAt"`
	UpdatedAt      time.Time                 `json:"updatedAt"`
}

func newWonderResponse(item domain.WonderItem) WonderResponse {
	w := item.Base()
	resp := WonderResponse{
		ID:             w.ID.String(),
		Kind:           item.WonderKind(),
		Name:           w.Name,
		Description:    w.Description,
		Rank:           w.Rank,
		Arete:          w.Arete,
		ResonanceTotal: w.ResonanceTotal(),
		Resonance:      make([]WonderResonanceResponse, 0, len(w.ResonanceRatings)),
		Effects:        make([]EffectResponse, 0, len(w.Powers)+1),
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
	for _, rr := range w.ResonanceRatings {
		entry := WonderResonanceResponse{ID: rr.ResonanceID.String(), Rating: rr.Rating}
		if rr.Resonance != nil {
			entry.Name = rr.Resonance.Name
		}
		resp.Resonance = append(resp.Resonance, entry)
	}
	for _, e := range w.Effects() {
		resp.Effects = append(resp.Effects, newEffectResponse(e))
	}
	if w.CreatedByID != nil {
		id := w.CreatedByID.String()
		resp.CreatedBy = &id
	}
	return resp
}

func (h *WonderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := page(r)
	if !ok {
		http.Error(w, "Invalid limit or offset", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	items, err := h.wonderService.List(r.Context(), repository.WonderFilter{
		Kind:   domain.WonderKind(q.Get("kind")),
		Name:   q.Get("name"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.writeError(w, "wonder.List", err)
		return
	}

	resp := struct {
		Wonders []WonderResponse `json:"wonders"`
	}{Wonders: make([]WonderResponse, len(items))}
	for i, item := range items {
		resp.Wonders[i] = newWonderResponse(item)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *WonderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid wonder id", http.StatusBadRequest)
		return
	}

	item, err := h.wonderService.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, "wonder.Get", err)
		return
	}
	writeJSON(w, http.StatusOK, newWonderResponse(item))
}

// Create takes an application/x-www-form-urlencoded submission with the
// resonance and effect formsets inline
func (h *WonderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	item, err := h.wonderService.Create(r.Context(), r.PostForm, userID)
	if err != nil {
		h.writeError(w, "wonder.Create", err)
		return
	}
	writeJSON(w, http.StatusCreated, newWonderResponse(item))
}

func (h *WonderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid wonder id", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	item, err := h.wonderService.Update(r.Context(), id, r.PostForm)
	if err != nil {
		h.writeError(w, "wonder.Update", err)
		return
	}
	writeJSON(w, http.StatusOK, newWonderResponse(item))
}

func (h *WonderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid wonder id", http.StatusBadRequest)
		return
	}

	if err := h.wonderService.Delete(r.Context(), id); err != nil {
		h.writeError(w, "wonder.Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WonderHandler) writeError(w http.ResponseWriter, op string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorsResponse{Errors: verr.Errors})
	case errors.Is(err, domain.ErrWonderNotFound):
		http.Error(w, "Wonder not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidWonderKind):
		http.Error(w, "Unknown wonder kind", http.StatusBadRequest)
	default:
		h.log.Error("wonder request failed", zap.String("op", op), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
