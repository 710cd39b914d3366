package ngo

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

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

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	NGO     *NGO   `json:"ngo,omitempty"`
}

type BlacklistResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Record  *BlacklistRecord `json:"record,omitempty"`
}

type SearchResponse struct {
	Success bool  `json:"success"`
	Results []NGO `json:"results"`
}

type MapResponse struct {
	Success bool       `json:"success"`
	Points  []MapPoint `json:"points"`
}

func (h *Handler) CreateNGO(w http.ResponseWriter, r *http.Request) {
	var req CreateNGORequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	n, err := h.service.CreateNGO(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "creation_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Message: "NGO created successfully",
		NGO:     n,
	})
}

func (h *Handler) ListNGOs(w http.ResponseWriter, r *http.Request) {
	f := parseFilters(r)
	params := pagination.ParseParams(r)

	ngos, meta, err := h.service.ListNGOs(r.Context(), f, params)
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PaginatedListResponse{
		Success:    true,
		NGOs:       ngos,
		Pagination: meta,
	})
}

func (h *Handler) GetNGO(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "NGO ID is required")
		return
	}

	n, err := h.service.GetNGO(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Message: "NGO retrieved successfully",
		NGO:     n,
	})
}

func (h *Handler) UpdateNGO(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "NGO ID is required")
		return
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req UpdateNGORequest
	if err := decoder.Decode(&req); err != nil {
		// json has no typed error for DisallowUnknownFields violations
		if strings.Contains(err.Error(), "unknown field") {
			respondServiceError(w, fmt.Errorf("%w: %s", ErrUnknownField, err.Error()), "update_failed")
			return
		}
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	n, err := h.service.UpdateNGO(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err, "update_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Message: "NGO updated successfully",
		NGO:     n,
	})
}

func (h *Handler) VerifyNGO(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "NGO ID is required")
		return
	}

	n, err := h.service.VerifyNGO(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "verification_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Message: "NGO verified successfully",
		NGO:     n,
	})
}

func (h *Handler) BlacklistNGO(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "NGO ID is required")
		return
	}

	var req BlacklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	rec, err := h.service.BlacklistNGO(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err, "blacklist_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BlacklistResponse{
		Success: true,
		Message: "NGO blacklisted",
		Record:  rec,
	})
}

func (h *Handler) UnblacklistNGO(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "NGO ID is required")
		return
	}

	if err := h.service.UnblacklistNGO(r.Context(), id); err != nil {
		respondServiceError(w, err, "unblacklist_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BlacklistResponse{
		Success: true,
		Message: "NGO removed from blacklist",
	})
}

func (h *Handler) ListBlacklistedNGOs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := BlacklistFilters{
		State:         q.Get("state"),
		BlacklistedBy: q.Get("blacklisted_by"),
		Search:        q.Get("search"),
	}
	params := pagination.ParseParams(r)

	ngos, meta, err := h.service.ListBlacklistedNGOs(r.Context(), f, params)
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PaginatedListResponse{
		Success:    true,
		NGOs:       ngos,
		Pagination: meta,
	})
}

func (h *Handler) GetMapData(w http.ResponseWriter, r *http.Request) {
	includeBlacklisted := false
	if v := r.URL.Query().Get("include_blacklisted"); v != "" {
		includeBlacklisted, _ = strconv.ParseBool(v)
	}

	points, err := h.service.GetMapData(r.Context(), includeBlacklisted)
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MapResponse{
		Success: true,
		Points:  points,
	})
}

func (h *Handler) SearchNGOs(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Query parameter 'q' is required")
		return
	}

	ngos, err := h.service.SearchNGOs(r.Context(), term)
	if err != nil {
		respondServiceError(w, err, "search_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SearchResponse{
		Success: true,
		Results: ngos,
	})
}

func parseFilters(r *http.Request) Filters {
	q := r.URL.Query()

	f := Filters{
		Category: q.Get("category"),
		State:    q.Get("state"),
		City:     q.Get("city"),
		District: q.Get("district"),
		Search:   q.Get("search"),
	}

	if v := q.Get("verified"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Verified = &b
		}
	}
	if v := q.Get("include_blacklisted"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.IncludeBlacklisted = b
		}
	}

	return f
}

// respondServiceError maps sentinel errors onto HTTP status codes
func respondServiceError(w http.ResponseWriter, err error, fallbackType string) {
	switch {
	case errors.Is(err, ErrMissingName),
		errors.Is(err, ErrNoFieldsToUpdate),
		errors.Is(err, ErrUnknownField),
		errors.Is(err, ErrInvalidDate):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, ErrNGONotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ErrDuplicateRegistration),
		errors.Is(err, ErrAlreadyBlacklisted),
		errors.Is(err, ErrNotBlacklisted):
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
