package posts

import (
	"time"

	"github.com/sevasetu/ngo-directory-service/internal/pagination"
)

// VolunteerPost is a volunteering opportunity published by an NGO
type VolunteerPost struct {
	ID           string     `json:"id"`
	NGOID        string     `json:"ngo_id"`
	NGOName      string     `json:"ngo_name,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Requirements string     `json:"requirements,omitempty"`
	Location     string     `json:"location,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Event is a public event announced by an NGO
type Event struct {
	ID               string    `json:"id"`
	NGOID            string    `json:"ngo_id"`
	NGOName          string    `json:"ngo_name,omitempty"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	EventDate        time.Time `json:"event_date"`
	Location         string    `json:"location,omitempty"`
	RegistrationLink string    `json:"registration_link,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Application is a user's application to a volunteer post
type Application struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	VolunteerPostID string    `json:"volunteer_post_id"`
	PostTitle       string    `json:"post_title,omitempty"`
	Message         string    `json:"message,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreatePostRequest creates a volunteer post under an NGO
type CreatePostRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Requirements string     `json:"requirements,omitempty"`
	Location     string     `json:"location,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
}

func (r *CreatePostRequest) Validate() error {
	if r.Title == "" {
		return ErrMissingTitle
	}
	return nil
}

// CreateEventRequest announces an event under an NGO
type CreateEventRequest struct {
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	EventDate        time.Time `json:"event_date"`
	Location         string    `json:"location,omitempty"`
	RegistrationLink string    `json:"registration_link,omitempty"`
}

func (r *CreateEventRequest) Validate() error {
	if r.Title == "" {
		return ErrMissingTitle
	}
	if r.EventDate.IsZero() {
		return ErrMissingEventDate
	}
	return nil
}

// ApplyRequest is a user's application payload
type ApplyRequest struct {
	Message string `json:"message,omitempty"`
}

// PaginatedPostsResponse wraps a page of volunteer posts
type PaginatedPostsResponse struct {
	Success    bool            `json:"success"`
	Posts      []VolunteerPost `json:"posts"`
	Pagination pagination.Meta `json:"pagination"`
}

// PaginatedEventsResponse wraps a page of events
type PaginatedEventsResponse struct {
	Success    bool            `json:"success"`
	Events     []Event         `json:"events"`
	Pagination pagination.Meta `json:"pagination"`
}
