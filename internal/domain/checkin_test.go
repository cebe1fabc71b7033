package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoster(capacity int) *SlotWithVolunteers {
	return &SlotWithVolunteers{
		Slot: Slot{ID: "slot-1", PositionID: "pos-1", StartTime: at(9, 0), EndTime: at(12, 0), Capacity: capacity},
	}
}

func TestSlotWithVolunteers_SignUpUntilFull(t *testing.T) {
	roster := newRoster(2)
	alice := &User{ID: "u-alice", Email: "alice@example.com"}
	bob := &User{ID: "u-bob", Email: "bob@example.com"}
	carol := &User{ID: "u-carol", Email: "carol@example.com"}

	require.NoError(t, roster.SignUp(alice))
	require.NoError(t, roster.SignUp(bob))
	require.True(t, roster.IsFull())

	require.ErrorIs(t, roster.SignUp(carol), ErrCapacityExceeded)
	assert.Len(t, roster.Volunteers, 2)
	assert.Equal(t, StateUnregistered, roster.State(carol.ID))

	require.NoError(t, roster.CheckIn(alice.ID))
	assert.Equal(t, StateCheckedIn, roster.State(alice.ID))
	assert.Equal(t, 1, roster.VolunteersCheckedIn)

	require.ErrorIs(t, roster.CheckIn(alice.ID), ErrAlreadyCheckedIn)
	assert.Equal(t, 1, roster.VolunteersCheckedIn)
	assert.Equal(t, StateRegistered, roster.State(bob.ID))
}

func TestSlotWithVolunteers_SignUpTwice(t *testing.T) {
	roster := newRoster(3)
	alice := &User{ID: "u-alice", Email: "alice@example.com"}

	require.NoError(t, roster.SignUp(alice))
	require.ErrorIs(t, roster.SignUp(alice), ErrAlreadyRegistered)
	assert.Len(t, roster.Volunteers, 1)
}

func TestSlotWithVolunteers_CheckInWithoutRegistration(t *testing.T) {
	roster := newRoster(1)
	require.ErrorIs(t, roster.CheckIn("u-nobody"), ErrNotRegistered)
	assert.Equal(t, 0, roster.VolunteersCheckedIn)
}

func TestFindRegistrationByEmail(t *testing.T) {
	first := newRoster(2)
	first.Volunteers = []*Volunteer{{User: &User{ID: "u-1", Email: "one@example.com"}}}
	second := newRoster(2)
	second.ID = "slot-2"
	second.Volunteers = []*Volunteer{{User: &User{ID: "u-2", Email: "Two@Example.com"}, CheckedIn: true}}
	slots := []*SlotWithVolunteers{first, second}

	tests := []struct {
		name       string
		email      string
		wantSlotID string
		wantUserID string
		wantErr    error
	}{
		{"exact match", "one@example.com", "slot-1", "u-1", nil},
		{"case insensitive", "TWO@example.COM", "slot-2", "u-2", nil},
		{"surrounding whitespace", "  one@example.com ", "slot-1", "u-1", nil},
		{"unknown", "three@example.com", "", "", ErrNotRegistered},
		{"empty", "", "", "", ErrNotRegistered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, v, err := FindRegistrationByEmail(slots, tt.email)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSlotID, slot.ID)
			assert.Equal(t, tt.wantUserID, v.User.ID)
		})
	}
}

func TestNewCheckInPage_HidesEmails(t *testing.T) {
	pos := &Position{ID: "pos-1", Name: "Greeter", StartTime: at(9, 0), EndTime: at(17, 0)}
	roster := newRoster(3)
	roster.Volunteers = []*Volunteer{
		{User: &User{ID: "u-1", Email: "one@example.com"}, CheckedIn: true},
		{User: &User{ID: "u-2", Email: "two@example.com"}},
	}

	page := NewCheckInPage(pos, []*SlotWithVolunteers{roster})

	require.Len(t, page.Slots, 1)
	assert.Equal(t, "Greeter", page.Name)
	assert.Equal(t, 2, page.Slots[0].VolunteersSignedUp)
	assert.Equal(t, 1, page.Slots[0].VolunteersCheckedIn)
	assert.Equal(t, 3, page.Slots[0].Capacity)
}

func TestRegistrationState_String(t *testing.T) {
	assert.Equal(t, "unregistered", StateUnregistered.String())
	assert.Equal(t, "registered", StateRegistered.String())
	assert.Equal(t, "checked_in", StateCheckedIn.String())
}
