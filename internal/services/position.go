package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"volunteerhub/internal/domain"
)

type positionService struct {
	eventRepo      domain.EventRepository
	positionRepo   domain.PositionRepository
	contextTimeout time.Duration
	now            func() time.Time
}

func NewPositionService(eventRepo domain.EventRepository, positionRepo domain.PositionRepository, timeout time.Duration) domain.PositionService {
	return &positionService{
		eventRepo:      eventRepo,
		positionRepo:   positionRepo,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *positionService) ListPositions(ctx context.Context, eventID string) ([]*domain.PositionWithVolunteers, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.NewStoreError("get event", err)
	}
	return s.list(ctx, eventID)
}

func (s *positionService) list(ctx context.Context, eventID string) ([]*domain.PositionWithVolunteers, error) {
	positions, err := s.positionRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, domain.NewStoreError("list positions", err)
	}
	return positions, nil
}

func (s *positionService) CreatePosition(ctx context.Context, caller *domain.Identity, eventID string, in domain.PositionInput) ([]*domain.PositionWithVolunteers, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := requireOwner(ctx, s.eventRepo, caller, eventID); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := domain.ValidatePosition(in); err != nil {
		return nil, err
	}

	pos := &domain.Position{
		EventID:          eventID,
		Name:             in.Name,
		StartTime:        in.StartTime,
		EndTime:          in.EndTime,
		VolunteersNeeded: in.VolunteersNeeded,
		CreatedAt:        s.now(),
	}
	if err := s.positionRepo.Create(ctx, pos); err != nil {
		return nil, domain.NewStoreError("create position", err)
	}
	return s.list(ctx, eventID)
}

func (s *positionService) UpdatePosition(ctx context.Context, caller *domain.Identity, id string, patch domain.PositionPatch) ([]*domain.PositionWithVolunteers, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if caller.IsZero() {
		return nil, domain.ErrUnauthenticated
	}
	// The parent event scopes both the ownership check and the re-fetch.
	pos, err := getPosition(ctx, s.positionRepo, id)
	if err != nil {
		return nil, err
	}
	if _, err := requireOwner(ctx, s.eventRepo, caller, pos.EventID); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	if err := domain.ValidatePosition(patch.Apply(pos)); err != nil {
		return nil, err
	}
	if err := s.positionRepo.Update(ctx, id, patch); err != nil {
		return nil, domain.NewStoreError("update position", err)
	}
	return s.list(ctx, pos.EventID)
}

func (s *positionService) DeletePosition(ctx context.Context, caller *domain.Identity, id string) ([]*domain.PositionWithVolunteers, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if caller.IsZero() {
		return nil, domain.ErrUnauthenticated
	}
	pos, err := getPosition(ctx, s.positionRepo, id)
	if err != nil {
		return nil, err
	}
	if _, err := requireOwner(ctx, s.eventRepo, caller, pos.EventID); err != nil {
		return nil, err
	}
	if err := s.positionRepo.Delete(ctx, id); err != nil {
		return nil, domain.NewStoreError("delete position", err)
	}
	return s.list(ctx, pos.EventID)
}
