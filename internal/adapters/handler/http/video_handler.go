package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vidora/api/internal/core/domain"
	"github.com/vidora/api/internal/core/ports"
)

const (
	maxVideoSize     = 100 << 20 // 100 MB
	maxThumbnailSize = 5 << 20   // 5 MB
)

type VideoHandler struct {
	service ports.VideoService
}

func NewVideoHandler(service ports.VideoService) *VideoHandler {
	return &VideoHandler{service: service}
}

func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondError(w, domain.ErrUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxVideoSize+maxThumbnailSize+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondError(w, domain.ErrValidation)
		return
	}
	defer r.MultipartForm.RemoveAll()

	input := ports.PublishVideoInput{
		OwnerID:     userID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}
	if raw := r.FormValue("duration_seconds"); raw != "" {
		duration, err := strconv.ParseFloat(raw, 64)
		if err != nil || duration < 0 {
			respondError(w, domain.ErrValidation)
			return
		}
		input.DurationSeconds = duration
	}

	videoFile, videoHeader, err := r.FormFile("videoFile")
	if err != nil {
		respondError(w, domain.ErrValidation)
		return
	}
	defer videoFile.Close()
	if videoHeader.Size > maxVideoSize {
		respondError(w, domain.ErrValidation)
		return
	}
	input.VideoFile = ports.MediaFile{Name: videoHeader.Filename, Content: videoFile}

	thumbnail, thumbnailHeader, err := r.FormFile("thumbnail")
	if err != nil {
		respondError(w, domain.ErrValidation)
		return
	}
	defer thumbnail.Close()
	if thumbnailHeader.Size > maxThumbnailSize {
		respondError(w, domain.ErrValidation)
		return
	}
	input.Thumbnail = ports.MediaFile{Name: thumbnailHeader.Filename, Content: thumbnail}

	video, err := h.service.Publish(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, video)
}

func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, domain.ErrValidation)
		return
	}

	var viewerID *uuid.UUID
	if userID, ok := userIDFromContext(r.Context()); ok {
		viewerID = &userID
	}

	video, err := h.service.Get(r.Context(), videoID, viewerID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, video)
}

func (h *VideoHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, _ := strconv.Atoi(query.Get("limit"))
	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	videos, err := h.service.Search(r.Context(), ports.SearchVideosInput{
		Query:         query.Get("query"),
		OwnerUsername: query.Get("username"),
		SortBy:        query.Get("sort"),
		Limit:         limit,
		Offset:        (page - 1) * limit,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"page":   page,
		"limit":  limit,
		"videos": videos,
	})
}

type updateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, videoID, ok := h.requestIDs(w, r)
	if !ok {
		return
	}

	var req updateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ErrValidation)
		return
	}

	video, err := h.service.Update(r.Context(), videoID, userID, ports.UpdateVideoInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, video)
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, videoID, ok := h.requestIDs(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), videoID, userID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	userID, videoID, ok := h.requestIDs(w, r)
	if !ok {
		return
	}

	video, err := h.service.TogglePublish(r.Context(), videoID, userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, video)
}

func (h *VideoHandler) requestIDs(w http.ResponseWriter, r *http.Request) (userID, videoID uuid.UUID, ok bool) {
	userID, ok = userIDFromContext(r.Context())
	if !ok {
		respondError(w, domain.ErrUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, domain.ErrValidation)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, videoID, true
}
