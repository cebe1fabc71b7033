package services

import (
	"context"
	"log/slog"
	"time"

	"volunteerhub/internal/domain"
)

var errEmailRequired = domain.NewValidationError("email", "Email is required")

// CheckInDeps groups the collaborators of the check-in service.
type CheckInDeps struct {
	Events     domain.EventRepository
	Positions  domain.PositionRepository
	Slots      domain.SlotRepository
	Users      domain.UserRepository
	Volunteers domain.VolunteerRepository
	Email      domain.EmailService
	Linker     domain.CheckInLinker
	Guard      domain.SubmissionGuard
	Logger     *slog.Logger
}

type checkInService struct {
	CheckInDeps
	contextTimeout time.Duration
	now            func() time.Time
}

func NewCheckInService(deps CheckInDeps, timeout time.Duration) domain.CheckInService {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Guard == nil {
		deps.Guard = noopGuard{}
	}
	return &checkInService{
		CheckInDeps:    deps,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

type noopGuard struct{}

func (noopGuard) Acquire(context.Context, string) (func(), error) { return func() {}, nil }

func (s *checkInService) listSlots(ctx context.Context, positionID string) ([]*domain.SlotWithVolunteers, error) {
	slots, err := s.Slots.ListByPositionID(ctx, positionID)
	if err != nil {
		return nil, domain.NewStoreError("list slots", err)
	}
	return slots, nil
}

// roster loads the slot and the current registrations of every slot of its position.
func (s *checkInService) roster(ctx context.Context, slotID string) (*domain.SlotWithVolunteers, error) {
	slot, err := getSlot(ctx, s.Slots, slotID)
	if err != nil {
		return nil, err
	}
	slots, err := s.listSlots(ctx, slot.PositionID)
	if err != nil {
		return nil, err
	}
	for _, sw := range slots {
		if sw.ID == slotID {
			return sw, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *checkInService) SignUp(ctx context.Context, caller *domain.Identity, slotID string) ([]*domain.SlotWithVolunteers, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Registrations are matched by email at the public check-in link.
	if caller.IsZero() || !caller.HasEmail() {
		return nil, domain.ErrUnauthenticated
	}
	release, err := s.Guard.Acquire(ctx, "signup:"+slotID+":"+caller.UserID)
	if err != nil {
		return nil, err
	}
	defer release()

	current, err := s.roster(ctx, slotID)
	if err != nil {
		return nil, err
	}
	user := &domain.User{ID: caller.UserID, Email: domain.NormalizeEmail(caller.Email), CreatedAt: s.now()}
	if err := current.SignUp(user); err != nil {
		return nil, err
	}

	if err := s.Users.Upsert(ctx, user); err != nil {
		return nil, domain.NewStoreError("upsert user", err)
	}
	// The store re-checks capacity under a row lock; the roster above may be stale.
	if err := s.Volunteers.SignUp(ctx, slotID, caller.UserID); err != nil {
		return nil, domain.NewStoreError("sign up", err)
	}

	refreshed, err := s.listSlots(ctx, current.PositionID)
	if err != nil {
		return nil, err
	}
	s.notifySignUp(ctx, caller.Email, &current.Slot)
	return refreshed, nil
}

func (s *checkInService) CheckIn(ctx context.Context, caller *domain.Identity, slotID string) ([]*domain.SlotWithVolunteers, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if caller.IsZero() {
		return nil, domain.ErrUnauthenticated
	}
	release, err := s.Guard.Acquire(ctx, "checkin:"+slotID+":"+caller.UserID)
	if err != nil {
		return nil, err
	}
	defer release()

	current, err := s.roster(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if err := current.CheckIn(caller.UserID); err != nil {
		return nil, err
	}
	if err := s.Volunteers.CheckIn(ctx, slotID, caller.UserID); err != nil {
		return nil, domain.NewStoreError("check in", err)
	}

	refreshed, err := s.listSlots(ctx, current.PositionID)
	if err != nil {
		return nil, err
	}
	s.notifyCheckIn(ctx, caller.Email, &current.Slot)
	return refreshed, nil
}

func (s *checkInService) GetCheckInPage(ctx context.Context, positionID string) (*domain.CheckInPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	pos, err := getPosition(ctx, s.Positions, positionID)
	if err != nil {
		return nil, err
	}
	slots, err := s.listSlots(ctx, positionID)
	if err != nil {
		return nil, err
	}
	return domain.NewCheckInPage(pos, slots), nil
}

func (s *checkInService) CheckInByEmail(ctx context.Context, positionID, email string) (*domain.CheckInReceipt, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, errEmailRequired
	}
	release, err := s.Guard.Acquire(ctx, "checkin-email:"+positionID+":"+email)
	if err != nil {
		return nil, err
	}
	defer release()

	pos, err := getPosition(ctx, s.Positions, positionID)
	if err != nil {
		return nil, err
	}
	slots, err := s.listSlots(ctx, positionID)
	if err != nil {
		return nil, err
	}
	slot, v, err := domain.FindRegistrationByEmail(slots, email)
	if err != nil {
		return nil, err
	}
	if err := slot.CheckIn(v.User.ID); err != nil {
		return nil, err
	}
	if err := s.Volunteers.CheckIn(ctx, slot.ID, v.User.ID); err != nil {
		return nil, domain.NewStoreError("check in", err)
	}

	s.notifyCheckIn(ctx, v.User.Email, &slot.Slot)
	return &domain.CheckInReceipt{
		PositionID:   pos.ID,
		PositionName: pos.Name,
		SlotID:       slot.ID,
		SlotStart:    slot.StartTime,
		SlotEnd:      slot.EndTime,
		Email:        v.User.Email,
		Message:      domain.CheckInSucceededMessage,
	}, nil
}

func (s *checkInService) CheckInCode(ctx context.Context, caller *domain.Identity, positionID string) (*domain.CheckInCode, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if caller.IsZero() {
		return nil, domain.ErrUnauthenticated
	}
	pos, err := getPosition(ctx, s.Positions, positionID)
	if err != nil {
		return nil, err
	}
	if _, err := requireOwner(ctx, s.Events, caller, pos.EventID); err != nil {
		return nil, err
	}
	png, err := s.Linker.PNG(positionID)
	if err != nil {
		return nil, err
	}
	return &domain.CheckInCode{URL: s.Linker.URL(positionID), PNG: png}, nil
}

// Notifications are best effort. A failed email never fails the state change.

func (s *checkInService) notifySignUp(ctx context.Context, email string, slot *domain.Slot) {
	if s.Email == nil {
		return
	}
	data := &domain.SignUpEmailData{
		Email:        email,
		PositionName: s.positionName(ctx, slot.PositionID),
		SlotStart:    slot.StartTime,
		SlotEnd:      slot.EndTime,
	}
	if s.Linker != nil {
		data.CheckInURL = s.Linker.URL(slot.PositionID)
	}
	if err := s.Email.SendSignUpConfirmation(ctx, data); err != nil {
		s.Logger.WarnContext(ctx, "sign-up confirmation not sent", "slot_id", slot.ID, "error", err)
	}
}

func (s *checkInService) notifyCheckIn(ctx context.Context, email string, slot *domain.Slot) {
	if s.Email == nil {
		return
	}
	data := &domain.CheckInEmailData{
		Email:        email,
		PositionName: s.positionName(ctx, slot.PositionID),
		SlotStart:    slot.StartTime,
		SlotEnd:      slot.EndTime,
	}
	if err := s.Email.SendCheckInConfirmation(ctx, data); err != nil {
		s.Logger.WarnContext(ctx, "check-in confirmation not sent", "slot_id", slot.ID, "error", err)
	}
}

func (s *checkInService) positionName(ctx context.Context, positionID string) string {
	pos, err := s.Positions.GetByID(ctx, positionID)
	if err != nil {
		return ""
	}
	return pos.Name
}
