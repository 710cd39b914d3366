package posts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/sevasetu/ngo-directory-service/internal/auth"
	"github.com/sevasetu/ngo-directory-service/internal/pagination"
)

type mockService struct {
	createPostFunc       func(ctx context.Context, ngoID string, req CreatePostRequest) (*VolunteerPost, error)
	listPostsFunc        func(ctx context.Context, params pagination.Params) ([]VolunteerPost, pagination.Meta, error)
	createEventFunc      func(ctx context.Context, ngoID string, req CreateEventRequest) (*Event, error)
	listEventsFunc       func(ctx context.Context, params pagination.Params) ([]Event, pagination.Meta, error)
	applyFunc            func(ctx context.Context, userID, postID string, req ApplyRequest) (*Application, error)
	listApplicationsFunc func(ctx context.Context, userID string) ([]Application, error)
}

func (m *mockService) CreatePost(ctx context.Context, ngoID string, req CreatePostRequest) (*VolunteerPost, error) {
	if m.createPostFunc != nil {
		return m.createPostFunc(ctx, ngoID, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) ListPosts(ctx context.Context, params pagination.Params) ([]VolunteerPost, pagination.Meta, error) {
	if m.listPostsFunc != nil {
		return m.listPostsFunc(ctx, params)
	}
	return nil, pagination.Meta{}, errors.New("not implemented")
}

func (m *mockService) CreateEvent(ctx context.Context, ngoID string, req CreateEventRequest) (*Event, error) {
	if m.createEventFunc != nil {
		return m.createEventFunc(ctx, ngoID, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) ListEvents(ctx context.Context, params pagination.Params) ([]Event, pagination.Meta, error) {
	if m.listEventsFunc != nil {
		return m.listEventsFunc(ctx, params)
	}
	return nil, pagination.Meta{}, errors.New("not implemented")
}

func (m *mockService) Apply(ctx context.Context, userID, postID string, req ApplyRequest) (*Application, error) {
	if m.applyFunc != nil {
		return m.applyFunc(ctx, userID, postID, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) ListApplications(ctx context.Context, userID string) ([]Application, error) {
	if m.listApplicationsFunc != nil {
		return m.listApplicationsFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

// TestHandlerCreatePost_Success tests post creation under an NGO
func TestHandlerCreatePost_Success(t *testing.T) {
	service := &mockService{
		createPostFunc: func(ctx context.Context, ngoID string, req CreatePostRequest) (*VolunteerPost, error) {
			return &VolunteerPost{ID: "post-1", NGOID: ngoID, Title: req.Title, Active: true, CreatedAt: time.Now()}, nil
		},
	}
	handler := NewHandler(service)

	body, _ := json.Marshal(CreatePostRequest{Title: "Weekend teaching"})
	req := httptest.NewRequest(http.MethodPost, "/ngos/ngo-1/volunteer-posts", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "ngo-1"})
	rec := httptest.NewRecorder()

	handler.CreatePost(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	var response PostResponse
	json.NewDecoder(rec.Body).Decode(&response)
	if response.Post == nil || response.Post.NGOID != "ngo-1" {
		t.Errorf("Unexpected post: %+v", response.Post)
	}
}

// TestHandlerCreatePost_IneligibleNGO tests the conflict mapping
func TestHandlerCreatePost_IneligibleNGO(t *testing.T) {
	service := &mockService{
		createPostFunc: func(ctx context.Context, ngoID string, req CreatePostRequest) (*VolunteerPost, error) {
			return nil, ErrNGONotEligible
		},
	}
	handler := NewHandler(service)

	body, _ := json.Marshal(CreatePostRequest{Title: "Weekend teaching"})
	req := httptest.NewRequest(http.MethodPost, "/ngos/ngo-1/volunteer-posts", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "ngo-1"})
	rec := httptest.NewRecorder()

	handler.CreatePost(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

// TestHandlerApply_Unauthenticated tests the missing principal guard
func TestHandlerApply_Unauthenticated(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest(http.MethodPost, "/volunteer-posts/post-1/apply", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
	rec := httptest.NewRecorder()

	handler.Apply(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

// TestHandlerApply_Success tests a successful application
func TestHandlerApply_Success(t *testing.T) {
	service := &mockService{
		applyFunc: func(ctx context.Context, userID, postID string, req ApplyRequest) (*Application, error) {
			return &Application{ID: "app-1", UserID: userID, VolunteerPostID: postID, Status: "pending"}, nil
		},
	}
	handler := NewHandler(service)

	body, _ := json.Marshal(ApplyRequest{Message: "Count me in"})
	req := httptest.NewRequest(http.MethodPost, "/volunteer-posts/post-1/apply", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
	ctx := auth.ContextWithPrincipal(req.Context(), &auth.Principal{UserID: "user-1", Role: "USER"})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	handler.Apply(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	var response ApplicationResponse
	json.NewDecoder(rec.Body).Decode(&response)
	if response.Application == nil || response.Application.UserID != "user-1" {
		t.Errorf("Unexpected application: %+v", response.Application)
	}
}

// TestHandlerApply_PostClosed tests the closed post mapping
func TestHandlerApply_PostClosed(t *testing.T) {
	service := &mockService{
		applyFunc: func(ctx context.Context, userID, postID string, req ApplyRequest) (*Application, error) {
			return nil, ErrPostClosed
		},
	}
	handler := NewHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/volunteer-posts/post-1/apply", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "post-1"})
	ctx := auth.ContextWithPrincipal(req.Context(), &auth.Principal{UserID: "user-1", Role: "USER"})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	handler.Apply(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

// TestHandlerListPosts_Success tests the paginated listing
func TestHandlerListPosts_Success(t *testing.T) {
	service := &mockService{
		listPostsFunc: func(ctx context.Context, params pagination.Params) ([]VolunteerPost, pagination.Meta, error) {
			return []VolunteerPost{{ID: "post-1", Title: "Teach"}}, params.CalculateMeta(1), nil
		},
	}
	handler := NewHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/volunteer-posts?page=1&per_page=10", nil)
	rec := httptest.NewRecorder()

	handler.ListPosts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response PaginatedPostsResponse
	json.NewDecoder(rec.Body).Decode(&response)
	if len(response.Posts) != 1 || response.Pagination.TotalRecords != 1 {
		t.Errorf("Unexpected response: %+v", response)
	}
}

// TestHandlerListApplications_OwnOnly tests that the listing is scoped to the caller
func TestHandlerListApplications_OwnOnly(t *testing.T) {
	var requestedUser string
	service := &mockService{
		listApplicationsFunc: func(ctx context.Context, userID string) ([]Application, error) {
			requestedUser = userID
			return []Application{}, nil
		},
	}
	handler := NewHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/applications", nil)
	ctx := auth.ContextWithPrincipal(req.Context(), &auth.Principal{UserID: "user-7", Role: "USER"})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	handler.ListApplications(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if requestedUser != "user-7" {
		t.Errorf("Expected listing for user-7, got %q", requestedUser)
	}
}
