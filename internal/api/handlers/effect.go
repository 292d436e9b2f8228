package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dom/ascension-codex/internal/domain"
	"github.com/dom/ascension-codex/internal/repository"
	"github.com/dom/ascension-codex/internal/service"
	"go.uber.org/zap"
)

type EffectHandler struct {
	effectService *service.EffectService
	log           *zap.Logger
}

func NewEffectHandler(effectService *service.EffectService, log *zap.Logger) *EffectHandler {
	return &EffectHandler{effectService: effectService, log: log}
}

type EffectResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Spheres     map[domain.Sphere]int `json:"spheres"`
	MaxSphere   domain.SphereRating   `json:"maxSphere"`
	Sources     []string              `json:"sources"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

func newEffectResponse(e *domain.Effect) EffectResponse {
	spheres := make(map[domain.Sphere]int, len(domain.AllSpheres))
	for _, sr := range e.Spheres() {
		spheres[sr.Sphere] = sr.Rating
	}
	return EffectResponse{
		ID:          e.ID.String(),
		Name:        e.Name,
		Description: e.Description,
		Spheres:     spheres,
		MaxSphere:   e.MaxSphere(),
		Sources:     e.SourceList(),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

type EffectsResponse struct {
	Effects []EffectResponse `json:"effects"`
}

func (h *EffectHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := page(r)
	if !ok {
		http.Error(w, "Invalid limit or offset", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	filter := repository.EffectFilter{
		Name:   q.Get("name"),
		Sphere: domain.Sphere(q.Get("sphere")),
		Limit:  limit,
		Offset: offset,
	}
	if filter.Sphere != "" {
		filter.MinRating = 1
	}
	if raw := q.Get("min"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || !domain.ValidRating(n) {
			http.Error(w, "Invalid min rating", http.StatusBadRequest)
			return
		}
		filter.MinRating = n
	}

	effects, err := h.effectService.List(r.Context(), filter)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSphere) {
			http.Error(w, "Unknown sphere", http.StatusBadRequest)
			return
		}
		h.log.Error("list effects failed", zap.String("op", "effect.List"), zap.Error(err))
		http.Error(w, "Failed to list effects", http.StatusInternalServerError)
		return
	}

	resp := EffectsResponse{Effects: make([]EffectResponse, len(effects))}
	for i, e := range effects {
		resp.Effects[i] = newEffectResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *EffectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid effect id", http.StatusBadRequest)
		return
	}

	effect, err := h.effectService.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, "effect.Get", err)
		return
	}
	writeJSON(w, http.StatusOK, newEffectResponse(effect))
}

// Create answers 201 for a new effect and 200 when the name already exists
func (h *EffectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.EffectInput
	if !decodeAndValidate(w, r, &req) {
		return
	}

	effect, created, err := h.effectService.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, "effect.Create", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, newEffectResponse(effect))
}

func (h *EffectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid effect id", http.StatusBadRequest)
		return
	}

	var req service.EffectInput
	if !decodeAndValidate(w, r, &req) {
		return
	}

	effect, err := h.effectService.Update(r.Context(), id, req)
	if err != nil {
		h.writeError(w, "effect.Update", err)
		return
	}
	writeJSON(w, http.StatusOK, newEffectResponse(effect))
}

func (h *EffectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "Invalid effect id", http.StatusBadRequest)
		return
	}

	if err := h.effectService.Delete(r.Context(), id); err != nil {
		h.writeError(w, "effect.Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EffectHandler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrEffectNotFound):
		http.Error(w, "Effect not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrEffectNameRequired),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrInvalidSphere):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrEffectExists), errors.Is(err, service.ErrEffectInUse):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.log.Error("effect request failed", zap.String("op", op), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
