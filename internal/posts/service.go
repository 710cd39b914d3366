package posts

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/sevasetu/ngo-directory-service/internal/messaging"
	"github.com/sevasetu/ngo-directory-service/internal/pagination"
)

const statusPending = "pending"

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
	}
}

// CreatePost publishes a volunteer opportunity under an eligible NGO
func (s *Service) CreatePost(ctx context.Context, ngoID string, req CreatePostRequest) (*VolunteerPost, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := &VolunteerPost{
		ID:           uuid.New().String(),
		NGOID:        ngoID,
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		Deadline:     req.Deadline,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreatePost(ctx, p); err != nil {
		return nil, err
	}

	s.publish(ctx, messaging.EventVolunteerPostCreated, messaging.VolunteerPostCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventVolunteerPostCreated),
		Data: messaging.VolunteerPostCreatedData{
			PostID:    p.ID,
			NGOID:     p.NGOID,
			Title:     p.Title,
			CreatedAt: p.CreatedAt,
		},
	})

	return p, nil
}

// ListPosts returns one page of open volunteer posts
func (s *Service) ListPosts(ctx context.Context, params pagination.Params) ([]VolunteerPost, pagination.Meta, error) {
	params.Validate()

	posts, total, err := s.repo.ListPosts(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if posts == nil {
		posts = []VolunteerPost{}
	}

	return posts, params.CalculateMeta(total), nil
}

// CreateEvent announces an event under an eligible NGO
func (s *Service) CreateEvent(ctx context.Context, ngoID string, req CreateEventRequest) (*Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e := &Event{
		ID:               uuid.New().String(),
		NGOID:            ngoID,
		Title:            req.Title,
		Description:      req.Description,
		EventDate:        req.EventDate,
		Location:         req.Location,
		RegistrationLink: req.RegistrationLink,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.repo.CreateEvent(ctx, e); err != nil {
		return nil, err
	}

	s.publish(ctx, messaging.EventEventCreated, messaging.EventCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventEventCreated),
		Data: messaging.EventCreatedData{
			EventID:   e.ID,
			NGOID:     e.NGOID,
			Title:     e.Title,
			EventDate: e.EventDate,
		},
	})

	return e, nil
}

// ListEvents returns one page of upcoming events
func (s *Service) ListEvents(ctx context.Context, params pagination.Params) ([]Event, pagination.Meta, error) {
	params.Validate()

	events, total, err := s.repo.ListEvents(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if events == nil {
		events = []Event{}
	}

	return events, params.CalculateMeta(total), nil
}

// Apply records a user's application to an open post
func (s *Service) Apply(ctx context.Context, userID, postID string, req ApplyRequest) (*Application, error) {
	a := &Application{
		ID:              uuid.New().String(),
		UserID:          userID,
		VolunteerPostID: postID,
		Message:         req.Message,
		Status:          statusPending,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.CreateApplication(ctx, a); err != nil {
		return nil, err
	}

	log.Printf("User %s applied to volunteer post %s", userID, postID)

	return a, nil
}

// ListApplications returns the caller's own applications
func (s *Service) ListApplications(ctx context.Context, userID string) ([]Application, error) {
	apps, err := s.repo.ListApplicationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []Application{}
	}
	return apps, nil
}

func (s *Service) publish(ctx context.Context, routingKey string, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
