package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vidora/api/internal/core/domain"
	"github.com/vidora/api/internal/core/ports"
)

type SubscriptionHandler struct {
	service      ports.SubscriptionService
	statsService ports.StatsService
}

func NewSubscriptionHandler(service ports.SubscriptionService, statsService ports.StatsService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service, statsService: statsService}
}

func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, domain.ErrUnauthorized)
		return
	}

	channelID, err := uuid.Parse(chi.URLParam(r, "channelID"))
	if err != nil {
		respondError(w, domain.ErrValidation)
		return
	}

	subscribed, err := h.service.Toggle(r.Context(), userID, channelID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"subscribed": subscribed})
}

func (h *SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	channelID, err := uuid.Parse(chi.URLParam(r, "channelID"))
	if err != nil {
		respondError(w, domain.ErrValidation)
		return
	}

	subscribers, err := h.service.Subscribers(r.Context(), channelID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, subscribers)
}

func (h *SubscriptionHandler) Channels(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, domain.ErrUnauthorized)
		return
	}

	channels, err := h.service.Channels(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, channels)
}

func (h *SubscriptionHandler) ChannelStats(w http.ResponseWriter, r *http.Request) {
	channelID, err := uuid.Parse(chi.URLParam(r, "channelID"))
	if err != nil {
		respondError(w, domain.ErrValidation)
		return
	}

	stats, err := h.statsService.ChannelStats(r.Context(), channelID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
