package posts

import "context"

// RepositoryInterface defines the contract for opportunity data access
type RepositoryInterface interface {
	CreatePost(ctx context.Context, p *VolunteerPost) error
	ListPosts(ctx context.Context, limit, offset int) ([]VolunteerPost, int, error)
	CreateEvent(ctx context.Context, e *Event) error
	ListEvents(ctx context.Context, limit, offset int) ([]Event, int, error)
	CreateApplication(ctx context.Context, a *Application) error
	ListApplicationsByUser(ctx context.Context, userID string) ([]Application, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
