package posts

import (
	"context"

	"github.com/sevasetu/ngo-directory-service/internal/pagination"
)

// ServiceInterface defines the contract for opportunity business logic
type ServiceInterface interface {
	CreatePost(ctx context.Context, ngoID string, req CreatePostRequest) (*VolunteerPost, error)
	ListPosts(ctx context.Context, params pagination.Params) ([]VolunteerPost, pagination.Meta, error)
	CreateEvent(ctx context.Context, ngoID string, req CreateEventRequest) (*Event, error)
	ListEvents(ctx context.Context, params pagination.Params) ([]Event, pagination.Meta, error)
	Apply(ctx context.Context, userID, postID string, req ApplyRequest) (*Application, error)
	ListApplications(ctx context.Context, userID string) ([]Application, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
