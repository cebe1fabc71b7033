package services

import (
	"context"
	"errors"

	"volunteerhub/internal/domain"
)

// requireOwner loads the event and checks that caller organizes it.
func requireOwner(ctx context.Context, events domain.EventRepository, caller *domain.Identity, eventID string) (*domain.Event, error) {
	if caller.IsZero() {
		return nil, domain.ErrUnauthenticated
	}
	event, err := events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.NewStoreError("get event", err)
	}
	if event.UserID != caller.UserID {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

// getPosition loads a position, keeping ErrNotFound distinct from store failures.
func getPosition(ctx context.Context, positions domain.PositionRepository, id string) (*domain.Position, error) {
	pos, err := positions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.NewStoreError("get position", err)
	}
	return pos, nil
}

func getSlot(ctx context.Context, slots domain.SlotRepository, id string) (*domain.Slot, error) {
	slot, err := slots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.NewStoreError("get slot", err)
	}
	return slot, nil
}
