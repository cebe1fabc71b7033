package services

import (
	"context"
	"testing"
	"time"

	"volunteerhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionService_CreatePosition(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		caller  *domain.Identity
		in      domain.PositionInput
		wantErr error
	}{
		{
			name:   "valid",
			caller: alice,
			in:     domain.PositionInput{Name: "Setup crew", StartTime: at(8, 0), EndTime: at(10, 0), VolunteersNeeded: 3},
		},
		{
			name:    "end before start",
			caller:  alice,
			in:      domain.PositionInput{Name: "Setup crew", StartTime: at(10, 0), EndTime: at(8, 0), VolunteersNeeded: 3},
			wantErr: domain.ErrPositionTimeRange,
		},
		{
			name:    "no volunteers needed",
			caller:  alice,
			in:      domain.PositionInput{Name: "Setup crew", StartTime: at(8, 0), EndTime: at(10, 0)},
			wantErr: domain.ErrPositionVolunteersNeeded,
		},
		{
			name:    "not the organizer",
			caller:  bob,
			in:      domain.PositionInput{Name: "Setup crew", StartTime: at(8, 0), EndTime: at(10, 0), VolunteersNeeded: 3},
			wantErr: domain.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			ev, _ := store.seedPosition(alice.UserID)
			svc := NewPositionService(memEvents{store}, memPositions{store}, time.Second)

			positions, err := svc.CreatePosition(ctx, tt.caller, ev.ID, tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, store.positions, 1)
				return
			}
			require.NoError(t, err)
			require.Len(t, positions, 2)
			assert.Equal(t, "Setup crew", positions[0].Name)
		})
	}
}

func TestPositionService_UpdatePosition(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	_, pos := store.seedPosition(alice.UserID)
	svc := NewPositionService(memEvents{store}, memPositions{store}, time.Second)

	// The merged record is validated, so moving only the end before the start fails.
	_, err := svc.UpdatePosition(ctx, alice, pos.ID, domain.PositionPatch{EndTime: timePtr(at(8, 0))})
	require.ErrorIs(t, err, domain.ErrPositionTimeRange)

	positions, err := svc.UpdatePosition(ctx, alice, pos.ID, domain.PositionPatch{VolunteersNeeded: intPtr(6)})
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, 6, positions[0].VolunteersNeeded)
	assert.Equal(t, "Greeter", positions[0].Name)

	_, err = svc.UpdatePosition(ctx, alice, "pos-missing", domain.PositionPatch{VolunteersNeeded: intPtr(2)})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPositionService_DeletePosition(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	ev, pos := store.seedPosition(alice.UserID)
	store.seedSlot(pos.ID, 2)
	svc := NewPositionService(memEvents{store}, memPositions{store}, time.Second)

	_, err := svc.DeletePosition(ctx, bob, pos.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	positions, err := svc.DeletePosition(ctx, alice, pos.ID)
	require.NoError(t, err)
	assert.Empty(t, positions)
	assert.Empty(t, store.slots)

	positions, err = svc.ListPositions(ctx, ev.ID)
	require.NoError(t, err)
	assert.Empty(t, positions)

	_, err = svc.ListPositions(ctx, "ev-missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
