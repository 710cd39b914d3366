package accounts

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sevasetu/ngo-directory-service/internal/auth"
	"github.com/sevasetu/ngo-directory-service/internal/messaging"
)

const defaultRole = "USER"

type Service struct {
	repo      RepositoryInterface
	verifier  *auth.Verifier
	publisher messaging.PublisherInterface
}

func NewService(repo RepositoryInterface, verifier *auth.Verifier, publisher messaging.PublisherInterface) *Service {
	return &Service{
		repo:      repo,
		verifier:  verifier,
		publisher: publisher,
	}
}

// Register creates an account with a bcrypt password hash and returns a
// freshly issued token.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	u := &User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         req.Name,
		Role:         defaultRole,
		CreatedAt:    now,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.verifier.IssueToken(u.ID, u.Role, now)
	if err != nil {
		return nil, "", err
	}

	log.Printf("Registered user %s (%s)", u.Email, u.ID)

	if s.publisher != nil {
		event := messaging.UserRegisteredEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventUserRegistered),
			Data: messaging.UserRegisteredData{
				UserID:       u.ID,
				Email:        u.Email,
				Role:         u.Role,
				RegisteredAt: now,
			},
		}
		if err := s.publisher.Publish(ctx, messaging.EventUserRegistered, event); err != nil {
			log.Printf("Warning: failed to publish user.registered event: %v", err)
		}
	}

	return u, token, nil
}

// Login verifies credentials and issues a token. A missing account and a bad
// password produce the same error so the endpoint does not leak which emails
// exist.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*User, string, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.verifier.IssueToken(u.ID, u.Role, time.Now().UTC())
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}
