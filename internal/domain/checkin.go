package domain

import (
	"context"
	"time"
)

// RegistrationState is the sign-up/check-in state of one (slot, user) pairing.
type RegistrationState int

const (
	StateUnregistered RegistrationState = iota
	StateRegistered
	StateCheckedIn
)

func (s RegistrationState) String() string {
	switch s {
	case StateRegistered:
		return "registered"
	case StateCheckedIn:
		return "checked_in"
	default:
		return "unregistered"
	}
}

// Volunteer is a user's registration on a slot.
// swagger:model Volunteer
type Volunteer struct {
	User      *User `json:"user"`
	CheckedIn bool  `json:"checked_in"`
}

// SlotWithVolunteers is a slot together with its registrations. It is the roster
// the sign-up and check-in transitions operate on.
// swagger:model SlotWithVolunteers
type SlotWithVolunteers struct {
	Slot
	Volunteers []*Volunteer `json:"volunteers"`
}

// Find returns the registration held by userID, or nil.
func (s *SlotWithVolunteers) Find(userID string) *Volunteer {
	for _, v := range s.Volunteers {
		if v.User != nil && v.User.ID == userID {
			return v
		}
	}
	return nil
}

// FindByEmail returns the registration whose user email matches, ignoring case.
func (s *SlotWithVolunteers) FindByEmail(email string) *Volunteer {
	email = NormalizeEmail(email)
	if email == "" {
		return nil
	}
	for _, v := range s.Volunteers {
		if v.User != nil && NormalizeEmail(v.User.Email) == email {
			return v
		}
	}
	return nil
}

// State returns the state of userID's pairing with this slot.
func (s *SlotWithVolunteers) State(userID string) RegistrationState {
	v := s.Find(userID)
	switch {
	case v == nil:
		return StateUnregistered
	case v.CheckedIn:
		return StateCheckedIn
	default:
		return StateRegistered
	}
}

// IsFull reports whether the slot has no remaining capacity.
func (s *SlotWithVolunteers) IsFull() bool {
	return len(s.Volunteers) >= s.Capacity
}

// CanSignUp reports why user cannot sign up, or nil if they can.
func (s *SlotWithVolunteers) CanSignUp(userID string) error {
	if s.Find(userID) != nil {
		return ErrAlreadyRegistered
	}
	if s.IsFull() {
		return ErrCapacityExceeded
	}
	return nil
}

// SignUp moves user from unregistered to registered on this in-memory roster.
// The services apply it before persisting so the caller gets the precise refusal;
// the store repeats the capacity check under a row lock.
func (s *SlotWithVolunteers) SignUp(user *User) error {
	if err := s.CanSignUp(user.ID); err != nil {
		return err
	}
	s.Volunteers = append(s.Volunteers, &Volunteer{User: user})
	return nil
}

// CanCheckIn returns userID's registration if it may be checked in.
func (s *SlotWithVolunteers) CanCheckIn(userID string) (*Volunteer, error) {
	switch s.State(userID) {
	case StateUnregistered:
		return nil, ErrNotRegistered
	case StateCheckedIn:
		return nil, ErrAlreadyCheckedIn
	}
	return s.Find(userID), nil
}

// CheckIn moves userID from registered to checked in on this roster. The transition
// is irreversible; the store only flips a registration that is not yet checked in.
func (s *SlotWithVolunteers) CheckIn(userID string) error {
	v, err := s.CanCheckIn(userID)
	if err != nil {
		return err
	}
	v.CheckedIn = true
	s.VolunteersCheckedIn++
	return nil
}

// FindRegistrationByEmail locates the first slot holding a registration for email.
func FindRegistrationByEmail(slots []*SlotWithVolunteers, email string) (*SlotWithVolunteers, *Volunteer, error) {
	for _, s := range slots {
		if v := s.FindByEmail(email); v != nil {
			return s, v, nil
		}
	}
	return nil, nil, ErrNotRegistered
}

// CheckInSlot is the public view of a slot on the check-in page. It carries counts, not emails.
// swagger:model CheckInSlot
type CheckInSlot struct {
	ID                  string    `json:"id"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	Capacity            int       `json:"capacity"`
	VolunteersSignedUp  int       `json:"volunteers_signed_up"`
	VolunteersCheckedIn int       `json:"volunteers_checked_in"`
}

// CheckInPage is what the public check-in link resolves to.
// swagger:model CheckInPage
type CheckInPage struct {
	PositionID string         `json:"position_id"`
	Name       string         `json:"name"`
	StartTime  time.Time      `json:"start_time"`
	EndTime    time.Time      `json:"end_time"`
	Slots      []*CheckInSlot `json:"slots"`
}

// NewCheckInPage builds the public view of a position and its slots.
func NewCheckInPage(pos *Position, slots []*SlotWithVolunteers) *CheckInPage {
	page := &CheckInPage{
		PositionID: pos.ID,
		Name:       pos.Name,
		StartTime:  pos.StartTime,
		EndTime:    pos.EndTime,
		Slots:      make([]*CheckInSlot, 0, len(slots)),
	}
	for _, s := range slots {
		checkedIn := 0
		for _, v := range s.Volunteers {
			if v.CheckedIn {
				checkedIn++
			}
		}
		page.Slots = append(page.Slots, &CheckInSlot{
			ID:                  s.ID,
			StartTime:           s.StartTime,
			EndTime:             s.EndTime,
			Capacity:            s.Capacity,
			VolunteersSignedUp:  len(s.Volunteers),
			VolunteersCheckedIn: checkedIn,
		})
	}
	return page
}

// CheckInReceipt describes a completed check-in.
// swagger:model CheckInReceipt
type CheckInReceipt struct {
	PositionID   string    `json:"position_id"`
	PositionName string    `json:"position_name"`
	SlotID       string    `json:"slot_id"`
	SlotStart    time.Time `json:"slot_start"`
	SlotEnd      time.Time `json:"slot_end"`
	Email        string    `json:"email"`
	Message      string    `json:"message"`
}

// CheckInSucceededMessage is reported to the volunteer after a successful check-in.
const CheckInSucceededMessage = "Successfully checked in!"

// VolunteerRepository stores slot registrations. Implementations enforce capacity
// and single check-in atomically, mapping refusals to ErrCapacityExceeded,
// ErrAlreadyRegistered, ErrNotRegistered and ErrAlreadyCheckedIn.
type VolunteerRepository interface {
	SignUp(ctx context.Context, slotID, userID string) error
	CheckIn(ctx context.Context, slotID, userID string) error
}

// SubmissionGuard rejects a second submission of the same operation while the first
// is still in flight. Acquire returns ErrDuplicateSubmission when key is held.
type SubmissionGuard interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// CheckInService defines the volunteer-facing sign-up and check-in operations.
type CheckInService interface {
	// SignUp registers caller on the slot and returns the refreshed slots of its position.
	SignUp(ctx context.Context, caller *Identity, slotID string) ([]*SlotWithVolunteers, error)
	// CheckIn checks caller in on the slot and returns the refreshed slots of its position.
	CheckIn(ctx context.Context, caller *Identity, slotID string) ([]*SlotWithVolunteers, error)
	// GetCheckInPage resolves the public check-in link of a position.
	GetCheckInPage(ctx context.Context, positionID string) (*CheckInPage, error)
	// CheckInByEmail checks in the volunteer registered under email on any slot of the position.
	CheckInByEmail(ctx context.Context, positionID, email string) (*CheckInReceipt, error)
	// CheckInCode returns the public check-in link of a position owned by caller.
	CheckInCode(ctx context.Context, caller *Identity, positionID string) (*CheckInCode, error)
}

// CheckInCode is a position's public check-in link and its QR image.
type CheckInCode struct {
	URL string
	PNG []byte
}
