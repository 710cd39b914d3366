package posts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sevasetu/ngo-directory-service/internal/auth"
	"github.com/sevasetu/ngo-directory-service/internal/pagination"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type PostResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Post    *VolunteerPost `json:"post,omitempty"`
}

type EventResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Event   *Event `json:"event,omitempty"`
}

type ApplicationResponse struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message"`
	Application *Application `json:"application,omitempty"`
}

type ApplicationListResponse struct {
	Success      bool          `json:"success"`
	Applications []Application `json:"applications"`
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ngoID := mux.Vars(r)["id"]
	if ngoID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "NGO ID is required")
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	p, err := h.service.CreatePost(r.Context(), ngoID, req)
	if err != nil {
		respondServiceError(w, err, "creation_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(PostResponse{
		Success: true,
		Message: "Volunteer post created successfully",
		Post:    p,
	})
}

func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r)

	posts, meta, err := h.service.ListPosts(r.Context(), params)
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PaginatedPostsResponse{
		Success:    true,
		Posts:      posts,
		Pagination: meta,
	})
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ngoID := mux.Vars(r)["id"]
	if ngoID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "NGO ID is required")
		return
	}

	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	e, err := h.service.CreateEvent(r.Context(), ngoID, req)
	if err != nil {
		respondServiceError(w, err, "creation_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(EventResponse{
		Success: true,
		Message: "Event created successfully",
		Event:   e,
	})
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r)

	events, meta, err := h.service.ListEvents(r.Context(), params)
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PaginatedEventsResponse{
		Success:    true,
		Events:     events,
		Pagination: meta,
	})
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	postID := mux.Vars(r)["id"]
	if postID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Post ID is required")
		return
	}

	var req ApplyRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
			return
		}
	}

	a, err := h.service.Apply(r.Context(), principal.UserID, postID, req)
	if err != nil {
		respondServiceError(w, err, "application_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ApplicationResponse{
		Success:     true,
		Message:     "Application submitted successfully",
		Application: a,
	})
}

func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	apps, err := h.service.ListApplications(r.Context(), principal.UserID)
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ApplicationListResponse{
		Success:      true,
		Applications: apps,
	})
}

func respondServiceError(w http.ResponseWriter, err error, fallbackType string) {
	switch {
	case errors.Is(err, ErrMissingTitle), errors.Is(err, ErrMissingEventDate):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, ErrPostNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ErrNGONotEligible), errors.Is(err, ErrPostClosed):
		respondError(w, http.StatusConflict, "conflict", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, fallbackType, err.Error())
	}
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errorType,
		Message: message,
	})
}
