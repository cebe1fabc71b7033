package services

import (
	"context"
	"strings"
	"time"

	"volunteerhub/internal/domain"
)

var (
	errEventNameRequired = domain.NewValidationError("event_name", "Event name is required")
	errEventTimeRequired = domain.NewValidationError("event_time", "Event time is required")
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
	now            func() time.Time
}

func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.list(ctx)
}

func (s *eventService) list(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, domain.NewStoreError("list events", err)
	}
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewStoreError("get event", err)
	}
	return event, nil
}

func (s *eventService) CreateEvent(ctx context.Context, caller *domain.Identity, in domain.EventInput) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if caller.IsZero() {
		return nil, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, errEventNameRequired
	}
	if in.EventTime.IsZero() {
		return nil, errEventTimeRequired
	}

	event := domain.NewEvent(caller.UserID, in, s.now())
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, domain.NewStoreError("create event", err)
	}
	return s.list(ctx)
}

func (s *eventService) UpdateEvent(ctx context.Context, caller *domain.Identity, id string, patch domain.EventPatch) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := requireOwner(ctx, s.eventRepo, caller, id); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, errEventNameRequired
		}
		patch.Name = &name
	}
	if patch.EventTime != nil && patch.EventTime.IsZero() {
		return nil, errEventTimeRequired
	}
	if err := s.eventRepo.Update(ctx, id, patch); err != nil {
		return nil, domain.NewStoreError("update event", err)
	}
	return s.list(ctx)
}

func (s *eventService) DeleteEvent(ctx context.Context, caller *domain.Identity, id string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := requireOwner(ctx, s.eventRepo, caller, id); err != nil {
		return nil, err
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return nil, domain.NewStoreError("delete event", err)
	}
	return s.list(ctx)
}
