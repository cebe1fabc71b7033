package domain

import (
	"context"
	"strings"
	"time"
)

// Event represents a volunteer activity owned by an organizer.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	EventTime   time.Time `json:"event_time"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewEvent returns a new Event owned by userID. ID is set by the repository on create.
func NewEvent(userID string, in EventInput, createdAt time.Time) *Event {
	return &Event{
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		EventTime:   in.EventTime,
		Location:    in.Location,
		CreatedAt:   createdAt,
	}
}

// EventInput holds the organizer-supplied fields of a new event.
type EventInput struct {
	Name        string
	Description string
	EventTime   time.Time
	Location    string
}

// EventPatch holds the fields of a partial event update. Nil fields are left unchanged.
type EventPatch struct {
	Name        *string
	Description *string
	EventTime   *time.Time
	Location    *string
}

// IsEmpty reports whether the patch changes nothing.
func (p EventPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.EventTime == nil && p.Location == nil
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	// List returns all events ordered by event_time ascending.
	List(ctx context.Context) ([]*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, id string, patch EventPatch) error
	Delete(ctx context.Context, id string) error
}

// EventService defines organizer operations on events. Every mutation returns
// the full, freshly fetched event list.
type EventService interface {
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	CreateEvent(ctx context.Context, caller *Identity, in EventInput) ([]*Event, error)
	UpdateEvent(ctx context.Context, caller *Identity, id string, patch EventPatch) ([]*Event, error)
	DeleteEvent(ctx context.Context, caller *Identity, id string) ([]*Event, error)
}
