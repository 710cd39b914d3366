package messaging

import (
	"time"

	"github.com/google/uuid"
)

// Event routing keys as constants
const (
	// NGO lifecycle events
	EventNGOCreated       = "ngo.created"
	EventNGOUpdated       = "ngo.updated"
	EventNGOVerified      = "ngo.verified"
	EventNGOBlacklisted   = "ngo.blacklisted"
	EventNGOUnblacklisted = "ngo.unblacklisted"

	// Opportunity events
	EventVolunteerPostCreated = "volunteer_post.created"
	EventEventCreated         = "event.created"

	// Account events
	EventUserRegistered = "user.registered"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// NGOCreatedEvent represents a new directory record
type NGOCreatedEvent struct {
	BaseEvent
	Data NGOCreatedData `json:"data"`
}

type NGOCreatedData struct {
	NGOID             string    `json:"ngo_id"`
	Name              string    `json:"name"`
	DarpanID          string    `json:"darpan_id,omitempty"`
	TransparencyScore int       `json:"transparency_score"`
	Source            string    `json:"source,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// NGOUpdatedEvent represents an admin patch of a record
type NGOUpdatedEvent struct {
	BaseEvent
	Data NGOUpdatedData `json:"data"`
}

type NGOUpdatedData struct {
	NGOID             string    `json:"ngo_id"`
	TransparencyScore int       `json:"transparency_score"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NGOVerifiedEvent represents the one-way verification transition
type NGOVerifiedEvent struct {
	BaseEvent
	Data NGOVerifiedData `json:"data"`
}

type NGOVerifiedData struct {
	NGOID      string    `json:"ngo_id"`
	VerifiedAt time.Time `json:"verified_at"`
}

// NGOBlacklistedEvent represents a blacklist transition
type NGOBlacklistedEvent struct {
	BaseEvent
	Data NGOBlacklistedData `json:"data"`
}

type NGOBlacklistedData struct {
	NGOID         string    `json:"ngo_id"`
	BlacklistedBy string    `json:"blacklisted_by,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	WefDate       string    `json:"wef_date,omitempty"`
	BlacklistedAt time.Time `json:"blacklisted_at"`
}

// NGOUnblacklistedEvent represents removal from the blacklist
type NGOUnblacklistedEvent struct {
	BaseEvent
	Data NGOUnblacklistedData `json:"data"`
}

type NGOUnblacklistedData struct {
	NGOID           string    `json:"ngo_id"`
	UnblacklistedAt time.Time `json:"unblacklisted_at"`
}

// VolunteerPostCreatedEvent represents a new volunteer opportunity
type VolunteerPostCreatedEvent struct {
	BaseEvent
	Data VolunteerPostCreatedData `json:"data"`
}

type VolunteerPostCreatedData struct {
	PostID    string    `json:"post_id"`
	NGOID     string    `json:"ngo_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// EventCreatedEvent represents a newly announced event
type EventCreatedEvent struct {
	BaseEvent
	Data EventCreatedData `json:"data"`
}

type EventCreatedData struct {
	EventID   string    `json:"event_id"`
	NGOID     string    `json:"ngo_id"`
	Title     string    `json:"title"`
	EventDate time.Time `json:"event_date"`
}

// UserRegisteredEvent represents a new account
type UserRegisteredEvent struct {
	BaseEvent
	Data UserRegisteredData `json:"data"`
}

type UserRegisteredData struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	RegisteredAt time.Time `json:"registered_at"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		ServiceName: "ngo-directory-service",
	}
}
