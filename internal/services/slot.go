package services

import (
	"context"
	"time"

	"volunteerhub/internal/domain"
)

// ErrSlotCapacityBelowSignUps rejects shrinking a slot below its current registrations.
var ErrSlotCapacityBelowSignUps = domain.NewValidationError(
	"slot_capacity_below_signups",
	"Slot capacity cannot be lower than the number of signed-up volunteers",
)

type slotService struct {
	eventRepo      domain.EventRepository
	positionRepo   domain.PositionRepository
	slotRepo       domain.SlotRepository
	contextTimeout time.Duration
	now            func() time.Time
}

func NewSlotService(eventRepo domain.EventRepository, positionRepo domain.PositionRepository, slotRepo domain.SlotRepository, timeout time.Duration) domain.SlotService {
	return &slotService{
		eventRepo:      eventRepo,
		positionRepo:   positionRepo,
		slotRepo:       slotRepo,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *slotService) ListSlots(ctx context.Context, positionID string) ([]*domain.SlotWithVolunteers, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := getPosition(ctx, s.positionRepo, positionID); err != nil {
		return nil, err
	}
	return s.list(ctx, positionID)
}

func (s *slotService) list(ctx context.Context, positionID string) ([]*domain.SlotWithVolunteers, error) {
	slots, err := s.slotRepo.ListByPositionID(ctx, positionID)
	if err != nil {
		return nil, domain.NewStoreError("list slots", err)
	}
	return slots, nil
}

// ownedPosition loads the position and checks that caller organizes its event.
func (s *slotService) ownedPosition(ctx context.Context, caller *domain.Identity, positionID string) (*domain.Position, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthenticated
	}
	pos, err := getPosition(ctx, s.positionRepo, positionID)
	if err != nil {
		return nil, err
	}
	if _, err := requireOwner(ctx, s.eventRepo, caller, pos.EventID); err != nil {
		return nil, err
	}
	return pos, nil
}

func (s *slotService) CreateSlot(ctx context.Context, caller *domain.Identity, positionID string, in domain.SlotInput) ([]*domain.SlotWithVolunteers, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	pos, err := s.ownedPosition(ctx, caller, positionID)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateSlot(in, pos); err != nil {
		return nil, err
	}

	slot := &domain.Slot{
		PositionID: positionID,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		Capacity:   in.Capacity,
		CreatedAt:  s.now(),
	}
	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, domain.NewStoreError("create slot", err)
	}
	return s.list(ctx, positionID)
}

func (s *slotService) UpdateSlot(ctx context.Context, caller *domain.Identity, id string, patch domain.SlotPatch) ([]*domain.SlotWithVolunteers, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if caller.IsZero() {
		return nil, domain.ErrUnauthenticated
	}
	slot, err := getSlot(ctx, s.slotRepo, id)
	if err != nil {
		return nil, err
	}
	pos, err := s.ownedPosition(ctx, caller, slot.PositionID)
	if err != nil {
		return nil, err
	}
	merged := patch.Apply(slot)
	if err := domain.ValidateSlot(merged, pos); err != nil {
		return nil, err
	}
	if patch.Capacity != nil {
		current, err := s.list(ctx, slot.PositionID)
		if err != nil {
			return nil, err
		}
		for _, c := range current {
			if c.ID == id && merged.Capacity < len(c.Volunteers) {
				return nil, ErrSlotCapacityBelowSignUps
			}
		}
	}
	if err := s.slotRepo.Update(ctx, id, patch); err != nil {
		return nil, domain.NewStoreError("update slot", err)
	}
	return s.list(ctx, slot.PositionID)
}

func (s *slotService) DeleteSlot(ctx context.Context, caller *domain.Identity, id string) ([]*domain.SlotWithVolunteers, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if caller.IsZero() {
		return nil, domain.ErrUnauthenticated
	}
	slot, err := getSlot(ctx, s.slotRepo, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedPosition(ctx, caller, slot.PositionID); err != nil {
		return nil, err
	}
	if err := s.slotRepo.Delete(ctx, id); err != nil {
		return nil, domain.NewStoreError("delete slot", err)
	}
	return s.list(ctx, slot.PositionID)
}
