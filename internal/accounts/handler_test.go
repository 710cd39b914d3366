package accounts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type mockAccountService struct {
	registerFunc func(ctx context.Context, req RegisterRequest) (*User, string, error)
	loginFunc    func(ctx context.Context, req LoginRequest) (*User, string, error)
}

func (m *mockAccountService) Register(ctx context.Context, req RegisterRequest) (*User, string, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, req)
	}
	return nil, "", errors.New("not implemented")
}

func (m *mockAccountService) Login(ctx context.Context, req LoginRequest) (*User, string, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, req)
	}
	return nil, "", errors.New("not implemented")
}

// TestHandlerRegister_Success tests successful account creation
func TestHandlerRegister_Success(t *testing.T) {
	service := &mockAccountService{
		registerFunc: func(ctx context.Context, req RegisterRequest) (*User, string, error) {
			return &User{
				ID:        "user-1",
				Email:     req.Email,
				Role:      "USER",
				CreatedAt: time.Now().UTC(),
			}, "signed-token", nil
		},
	}
	handler := NewHandler(service)

	body, _ := json.Marshal(RegisterRequest{Email: "vol@example.org", Password: "long-enough"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response AuthResponse
	json.NewDecoder(rec.Body).Decode(&response)
	if !response.Success {
		t.Error("Expected success response")
	}
	if response.Token != "signed-token" {
		t.Errorf("Expected token in response, got '%s'", response.Token)
	}
	if response.User == nil || response.User.Email != "vol@example.org" {
		t.Error("Expected user in response")
	}
}

// TestHandlerRegister_ShortPassword tests the validation error mapping
func TestHandlerRegister_ShortPassword(t *testing.T) {
	service := &mockAccountService{
		registerFunc: func(ctx context.Context, req RegisterRequest) (*User, string, error) {
			return nil, "", ErrPasswordTooShort
		},
	}
	handler := NewHandler(service)

	body, _ := json.Marshal(RegisterRequest{Email: "vol@example.org", Password: "short"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var response ErrorResponse
	json.NewDecoder(rec.Body).Decode(&response)
	if response.Error != "validation_error" {
		t.Errorf("Expected error 'validation_error', got '%s'", response.Error)
	}
}

// TestHandlerRegister_EmailTaken tests the conflict mapping
func TestHandlerRegister_EmailTaken(t *testing.T) {
	service := &mockAccountService{
		registerFunc: func(ctx context.Context, req RegisterRequest) (*User, string, error) {
			return nil, "", ErrEmailTaken
		},
	}
	handler := NewHandler(service)

	body, _ := json.Marshal(RegisterRequest{Email: "taken@example.org", Password: "long-enough"})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

// TestHandlerLogin_InvalidCredentials tests that bad credentials map to 401
func TestHandlerLogin_InvalidCredentials(t *testing.T) {
	service := &mockAccountService{
		loginFunc: func(ctx context.Context, req LoginRequest) (*User, string, error) {
			return nil, "", ErrInvalidCredentials
		},
	}
	handler := NewHandler(service)

	body, _ := json.Marshal(LoginRequest{Email: "vol@example.org", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}

	var response ErrorResponse
	json.NewDecoder(rec.Body).Decode(&response)
	if response.Error != "invalid_credentials" {
		t.Errorf("Expected error 'invalid_credentials', got '%s'", response.Error)
	}
}

// TestHandlerLogin_InvalidJSON tests malformed payload handling
func TestHandlerLogin_InvalidJSON(t *testing.T) {
	handler := NewHandler(&mockAccountService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
