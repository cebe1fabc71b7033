package domain

import (
	"context"
	"time"
)

// Slot validation failures, in the order ValidateSlot checks them.
var (
	ErrSlotTimeRange = &ValidationError{
		Rule:    "slot_time_range",
		Message: "Slot time range must be within position time range",
	}
	ErrSlotCapacity = &ValidationError{
		Rule:    "slot_capacity",
		Message: "Slot capacity must be at least 1",
	}
)

// Slot is a bounded sub-interval of a position with a volunteer capacity.
// swagger:model Slot
type Slot struct {
	ID                  string    `json:"id"`
	PositionID          string    `json:"position_id"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	Capacity            int       `json:"capacity"`
	VolunteersCheckedIn int       `json:"volunteers_checked_in"`
	CreatedAt           time.Time `json:"created_at"`
}

// SlotInput holds the organizer-supplied fields of a slot.
type SlotInput struct {
	StartTime time.Time
	EndTime   time.Time
	Capacity  int
}

// SlotPatch holds the fields of a partial slot update. Nil fields are left unchanged.
type SlotPatch struct {
	StartTime *time.Time
	EndTime   *time.Time
	Capacity  *int
}

// IsEmpty reports whether the patch changes nothing.
func (p SlotPatch) IsEmpty() bool {
	return p.StartTime == nil && p.EndTime == nil && p.Capacity == nil
}

// Apply returns the input that results from applying the patch to s.
func (p SlotPatch) Apply(s *Slot) SlotInput {
	in := SlotInput{StartTime: s.StartTime, EndTime: s.EndTime, Capacity: s.Capacity}
	if p.StartTime != nil {
		in.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		in.EndTime = *p.EndTime
	}
	if p.Capacity != nil {
		in.Capacity = *p.Capacity
	}
	return in
}

// ValidateSlot checks a proposed slot against its parent position. The time range is
// checked before capacity and only the first violation is returned.
func ValidateSlot(in SlotInput, position *Position) error {
	if !AreTimesValid(in.StartTime, in.EndTime, position.StartTime, position.EndTime) {
		return ErrSlotTimeRange
	}
	if in.Capacity < 1 {
		return ErrSlotCapacity
	}
	return nil
}

// SlotRepository defines the interface for slot storage.
type SlotRepository interface {
	// ListByPositionID returns the position's slots with volunteers, ordered by start_time ascending.
	ListByPositionID(ctx context.Context, positionID string) ([]*SlotWithVolunteers, error)
	GetByID(ctx context.Context, id string) (*Slot, error)
	Create(ctx context.Context, slot *Slot) error
	Update(ctx context.Context, id string, patch SlotPatch) error
	Delete(ctx context.Context, id string) error
}

// SlotService defines organizer operations on slots. Every mutation returns the
// full, freshly fetched slot list of the parent position.
type SlotService interface {
	ListSlots(ctx context.Context, positionID string) ([]*SlotWithVolunteers, error)
	CreateSlot(ctx context.Context, caller *Identity, positionID string, in SlotInput) ([]*SlotWithVolunteers, error)
	UpdateSlot(ctx context.Context, caller *Identity, id string, patch SlotPatch) ([]*SlotWithVolunteers, error)
	DeleteSlot(ctx context.Context, caller *Identity, id string) ([]*SlotWithVolunteers, error)
}
