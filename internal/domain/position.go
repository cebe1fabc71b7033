package domain

import (
	"context"
	"time"
)

// Position validation failures.
var (
	ErrPositionTimeRange = &ValidationError{
		Rule:    "position_time_range",
		Message: "Position start time must be before end time",
	}
	ErrPositionVolunteersNeeded = &ValidationError{
		Rule:    "position_volunteers_needed",
		Message: "Volunteers needed must be at least 1",
	}
	ErrPositionName = &ValidationError{
		Rule:    "position_name",
		Message: "Position name is required",
	}
)

// Position is a role within an event with its own time window.
// swagger:model Position
type Position struct {
	ID                  string    `json:"id"`
	EventID             string    `json:"event_id"`
	Name                string    `json:"name"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	VolunteersNeeded    int       `json:"volunteers_needed"`
	VolunteersCheckedIn int       `json:"volunteers_checked_in"`
	CreatedAt           time.Time `json:"created_at"`
}

// PositionWithVolunteers is a position together with the distinct users
// registered on any of its slots.
// swagger:model PositionWithVolunteers
type PositionWithVolunteers struct {
	Position
	Volunteers []*User `json:"volunteers"`
}

// PositionInput holds the organizer-supplied fields of a position.
type PositionInput struct {
	Name             string
	StartTime        time.Time
	EndTime          time.Time
	VolunteersNeeded int
}

// PositionPatch holds the fields of a partial position update. Nil fields are left unchanged.
type PositionPatch struct {
	Name             *string
	StartTime        *time.Time
	EndTime          *time.Time
	VolunteersNeeded *int
}

// IsEmpty reports whether the patch changes nothing.
func (p PositionPatch) IsEmpty() bool {
	return p.Name == nil && p.StartTime == nil && p.EndTime == nil && p.VolunteersNeeded == nil
}

// Apply returns the input that results from applying the patch to pos.
func (p PositionPatch) Apply(pos *Position) PositionInput {
	in := PositionInput{
		Name:             pos.Name,
		StartTime:        pos.StartTime,
		EndTime:          pos.EndTime,
		VolunteersNeeded: pos.VolunteersNeeded,
	}
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.StartTime != nil {
		in.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		in.EndTime = *p.EndTime
	}
	if p.VolunteersNeeded != nil {
		in.VolunteersNeeded = *p.VolunteersNeeded
	}
	return in
}

// ValidatePosition checks the position invariants in order and returns the first violation.
func ValidatePosition(in PositionInput) error {
	if in.Name == "" {
		return ErrPositionName
	}
	if !in.StartTime.Before(in.EndTime) {
		return ErrPositionTimeRange
	}
	if in.VolunteersNeeded < 1 {
		return ErrPositionVolunteersNeeded
	}
	return nil
}

// PositionRepository defines the interface for position storage.
type PositionRepository interface {
	// ListByEventID returns the event's positions with volunteers, ordered by start_time ascending.
	ListByEventID(ctx context.Context, eventID string) ([]*PositionWithVolunteers, error)
	GetByID(ctx context.Context, id string) (*Position, error)
	Create(ctx context.Context, pos *Position) error
	Update(ctx context.Context, id string, patch PositionPatch) error
	Delete(ctx context.Context, id string) error
}

// PositionService defines organizer operations on positions. Every mutation
// returns the full, freshly fetched position list of the parent event.
type PositionService interface {
	ListPositions(ctx context.Context, eventID string) ([]*PositionWithVolunteers, error)
	CreatePosition(ctx context.Context, caller *Identity, eventID string, in PositionInput) ([]*PositionWithVolunteers, error)
	UpdatePosition(ctx context.Context, caller *Identity, id string, patch PositionPatch) ([]*PositionWithVolunteers, error)
	DeletePosition(ctx context.Context, caller *Identity, id string) ([]*PositionWithVolunteers, error)
}
