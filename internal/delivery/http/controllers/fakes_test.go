package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/delivery/http/middleware"
	"volunteerhub/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	testEventID    = "5b0e3c3e-6a43-4c1f-9a0e-8f7d2a1b9c01"
	testPositionID = "7c1d4e5f-2b3a-4d6e-8f90-1a2b3c4d5e6f"
	testSlotID     = "9e8d7c6b-5a49-4382-a1b0-c9d8e7f6a5b4"
)

var testCaller = &domain.Identity{UserID: "user-123", Email: "alice@example.com"}

// serve routes req through a mux registered with pattern, optionally as testCaller.
func serve(t *testing.T, pattern string, h http.HandlerFunc, req *http.Request, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	if authed {
		req = req.WithContext(middleware.WithIdentity(req.Context(), testCaller))
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, data any) *helpers.APIError {
	t.Helper()
	var env struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	if data != nil && env.Error == nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env.Error
}

type fakeEventService struct {
	events     []*domain.Event
	err        error
	lastCaller *domain.Identity
	lastID     string
	lastInput  domain.EventInput
	lastPatch  domain.EventPatch
}

func (f *fakeEventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	return f.events, f.err
}

func (f *fakeEventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.events[0], nil
}

func (f *fakeEventService) CreateEvent(ctx context.Context, caller *domain.Identity, in domain.EventInput) ([]*domain.Event, error) {
	f.lastCaller, f.lastInput = caller, in
	return f.events, f.err
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, caller *domain.Identity, id string, patch domain.EventPatch) ([]*domain.Event, error) {
	f.lastCaller, f.lastID, f.lastPatch = caller, id, patch
	return f.events, f.err
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, caller *domain.Identity, id string) ([]*domain.Event, error) {
	f.lastCaller, f.lastID = caller, id
	return f.events, f.err
}

type fakePositionService struct {
	positions []*domain.PositionWithVolunteers
	err       error
	lastID    string
	lastInput domain.PositionInput
	lastPatch domain.PositionPatch
}

func (f *fakePositionService) ListPositions(ctx context.Context, eventID string) ([]*domain.PositionWithVolunteers, error) {
	f.lastID = eventID
	return f.positions, f.err
}

func (f *fakePositionService) CreatePosition(ctx context.Context, caller *domain.Identity, eventID string, in domain.PositionInput) ([]*domain.PositionWithVolunteers, error) {
	f.lastID, f.lastInput = eventID, in
	return f.positions, f.err
}

func (f *fakePositionService) UpdatePosition(ctx context.Context, caller *domain.Identity, id string, patch domain.PositionPatch) ([]*domain.PositionWithVolunteers, error) {
	f.lastID, f.lastPatch = id, patch
	return f.positions, f.err
}

func (f *fakePositionService) DeletePosition(ctx context.Context, caller *domain.Identity, id string) ([]*domain.PositionWithVolunteers, error) {
	f.lastID = id
	return f.positions, f.err
}

type fakeSlotService struct {
	slots     []*domain.SlotWithVolunteers
	err       error
	lastID    string
	lastInput domain.SlotInput
	lastPatch domain.SlotPatch
}

func (f *fakeSlotService) ListSlots(ctx context.Context, positionID string) ([]*domain.SlotWithVolunteers, error) {
	f.lastID = positionID
	return f.slots, f.err
}

func (f *fakeSlotService) CreateSlot(ctx context.Context, caller *domain.Identity, positionID string, in domain.SlotInput) ([]*domain.SlotWithVolunteers, error) {
	f.lastID, f.lastInput = positionID, in
	return f.slots, f.err
}

func (f *fakeSlotService) UpdateSlot(ctx context.Context, caller *domain.Identity, id string, patch domain.SlotPatch) ([]*domain.SlotWithVolunteers, error) {
	f.lastID, f.lastPatch = id, patch
	return f.slots, f.err
}

func (f *fakeSlotService) DeleteSlot(ctx context.Context, caller *domain.Identity, id string) ([]*domain.SlotWithVolunteers, error) {
	f.lastID = id
	return f.slots, f.err
}

type fakeCheckInService struct {
	slots      []*domain.SlotWithVolunteers
	page       *domain.CheckInPage
	receipt    *domain.CheckInReceipt
	code       *domain.CheckInCode
	err        error
	lastCaller *domain.Identity
	lastID     string
	lastEmail  string
}

func (f *fakeCheckInService) SignUp(ctx context.Context, caller *domain.Identity, slotID string) ([]*domain.SlotWithVolunteers, error) {
	f.lastCaller, f.lastID = caller, slotID
	return f.slots, f.err
}

func (f *fakeCheckInService) CheckIn(ctx context.Context, caller *domain.Identity, slotID string) ([]*domain.SlotWithVolunteers, error) {
	f.lastCaller, f.lastID = caller, slotID
	return f.slots, f.err
}

func (f *fakeCheckInService) GetCheckInPage(ctx context.Context, positionID string) (*domain.CheckInPage, error) {
	f.lastID = positionID
	return f.page, f.err
}

func (f *fakeCheckInService) CheckInByEmail(ctx context.Context, positionID, email string) (*domain.CheckInReceipt, error) {
	f.lastID, f.lastEmail = positionID, email
	return f.receipt, f.err
}

func (f *fakeCheckInService) CheckInCode(ctx context.Context, caller *domain.Identity, positionID string) (*domain.CheckInCode, error) {
	f.lastCaller, f.lastID = caller, positionID
	return f.code, f.err
}
