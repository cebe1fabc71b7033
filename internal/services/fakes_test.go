package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"volunteerhub/internal/domain"
)

// memStore is an in-memory implementation of every repository the services use.
// Capacity and check-in rules are enforced the way the Postgres store enforces them.
type memStore struct {
	mu         sync.Mutex
	nextID     int
	events     map[string]*domain.Event
	positions  map[string]*domain.Position
	slots      map[string]*domain.Slot
	users      map[string]*domain.User
	signups    map[string][]*domain.Volunteer // by slot id, in sign-up order
	listErr    error
	signUpErr  error
	checkInHit int
}

func newMemStore() *memStore {
	return &memStore{
		nextID:    1,
		events:    make(map[string]*domain.Event),
		positions: make(map[string]*domain.Position),
		slots:     make(map[string]*domain.Slot),
		users:     make(map[string]*domain.User),
		signups:   make(map[string][]*domain.Volunteer),
	}
}

func (m *memStore) id(prefix string) string {
	id := fmt.Sprintf("%s-%d", prefix, m.nextID)
	m.nextID++
	return id
}

type memEvents struct{ *memStore }
type memPositions struct{ *memStore }
type memSlots struct{ *memStore }
type memUsers struct{ *memStore }
type memVolunteers struct{ *memStore }

func (m memEvents) List(ctx context.Context) ([]*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*domain.Event, 0, len(m.events))
	for _, e := range m.events {
		c := *e
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventTime.Before(out[j].EventTime) })
	return out, nil
}

func (m memEvents) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *e
	return &c, nil
}

func (m memEvents) Create(ctx context.Context, e *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = m.id("ev")
	c := *e
	m.events[e.ID] = &c
	return nil
}

func (m memEvents) Update(ctx context.Context, id string, p domain.EventPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.EventTime != nil {
		e.EventTime = *p.EventTime
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	return nil
}

func (m memEvents) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	for pid, p := range m.positions {
		if p.EventID == id {
			m.deletePosition(pid)
		}
	}
	return nil
}

func (m *memStore) deletePosition(id string) {
	delete(m.positions, id)
	for sid, s := range m.slots {
		if s.PositionID == id {
			delete(m.slots, sid)
			delete(m.signups, sid)
		}
	}
}

func (m memPositions) ListByEventID(ctx context.Context, eventID string) ([]*domain.PositionWithVolunteers, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*domain.PositionWithVolunteers
	for _, p := range m.positions {
		if p.EventID != eventID {
			continue
		}
		pw := &domain.PositionWithVolunteers{Position: *p, Volunteers: []*domain.User{}}
		seen := map[string]bool{}
		for sid, s := range m.slots {
			if s.PositionID != p.ID {
				continue
			}
			for _, v := range m.signups[sid] {
				if !seen[v.User.ID] {
					seen[v.User.ID] = true
					pw.Volunteers = append(pw.Volunteers, v.User)
				}
			}
		}
		out = append(out, pw)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (m memPositions) GetByID(ctx context.Context, id string) (*domain.Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.positions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (m memPositions) Create(ctx context.Context, p *domain.Position) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[p.EventID]; !ok {
		return domain.ErrNotFound
	}
	p.ID = m.id("pos")
	c := *p
	m.positions[p.ID] = &c
	return nil
}

func (m memPositions) Update(ctx context.Context, id string, patch domain.PositionPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.positions[id]
	if !ok {
		return domain.ErrNotFound
	}
	in := patch.Apply(p)
	p.Name, p.StartTime, p.EndTime, p.VolunteersNeeded = in.Name, in.StartTime, in.EndTime, in.VolunteersNeeded
	return nil
}

func (m memPositions) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.positions[id]; !ok {
		return domain.ErrNotFound
	}
	m.deletePosition(id)
	return nil
}

func (m memSlots) ListByPositionID(ctx context.Context, positionID string) ([]*domain.SlotWithVolunteers, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*domain.SlotWithVolunteers
	for sid, s := range m.slots {
		if s.PositionID != positionID {
			continue
		}
		sw := &domain.SlotWithVolunteers{Slot: *s, Volunteers: []*domain.Volunteer{}}
		for _, v := range m.signups[sid] {
			c := *v
			sw.Volunteers = append(sw.Volunteers, &c)
		}
		out = append(out, sw)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (m memSlots) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *s
	return &c, nil
}

func (m memSlots) Create(ctx context.Context, s *domain.Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.id("slot")
	c := *s
	m.slots[s.ID] = &c
	return nil
}

func (m memSlots) Update(ctx context.Context, id string, patch domain.SlotPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[id]
	if !ok {
		return domain.ErrNotFound
	}
	in := patch.Apply(s)
	s.StartTime, s.EndTime, s.Capacity = in.StartTime, in.EndTime, in.Capacity
	return nil
}

func (m memSlots) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.slots[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.slots, id)
	delete(m.signups, id)
	return nil
}

func (m memUsers) Upsert(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.users[u.ID]; ok {
		existing.Email = u.Email
		u.CreatedAt = existing.CreatedAt
		return nil
	}
	c := *u
	m.users[u.ID] = &c
	return nil
}

func (m memVolunteers) SignUp(ctx context.Context, slotID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.signUpErr != nil {
		return m.signUpErr
	}
	s, ok := m.slots[slotID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, v := range m.signups[slotID] {
		if v.User.ID == userID {
			return domain.ErrAlreadyRegistered
		}
	}
	if len(m.signups[slotID]) >= s.Capacity {
		return domain.ErrCapacityExceeded
	}
	u := *m.users[userID]
	m.signups[slotID] = append(m.signups[slotID], &domain.Volunteer{User: &u})
	return nil
}

func (m memVolunteers) CheckIn(ctx context.Context, slotID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkInHit++
	for _, v := range m.signups[slotID] {
		if v.User.ID != userID {
			continue
		}
		if v.CheckedIn {
			return domain.ErrAlreadyCheckedIn
		}
		v.CheckedIn = true
		s := m.slots[slotID]
		s.VolunteersCheckedIn++
		m.positions[s.PositionID].VolunteersCheckedIn++
		return nil
	}
	return domain.ErrNotRegistered
}

// seedPosition stores an event owned by owner with one position from 09:00 to 17:00.
func (m *memStore) seedPosition(owner string) (*domain.Event, *domain.Position) {
	ctx := context.Background()
	ev := &domain.Event{UserID: owner, Name: "Beach cleanup", EventTime: at(9, 0)}
	_ = memEvents{m}.Create(ctx, ev)
	pos := &domain.Position{EventID: ev.ID, Name: "Greeter", StartTime: at(9, 0), EndTime: at(17, 0), VolunteersNeeded: 4}
	_ = memPositions{m}.Create(ctx, pos)
	return ev, pos
}

func (m *memStore) seedSlot(positionID string, capacity int) *domain.Slot {
	s := &domain.Slot{PositionID: positionID, StartTime: at(9, 0), EndTime: at(12, 0), Capacity: capacity}
	_ = memSlots{m}.Create(context.Background(), s)
	return s
}

type fakeEmailService struct {
	mu       sync.Mutex
	signUps  []*domain.SignUpEmailData
	checkIns []*domain.CheckInEmailData
	err      error
}

func (f *fakeEmailService) SendSignUpConfirmation(ctx context.Context, data *domain.SignUpEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signUps = append(f.signUps, data)
	return f.err
}

func (f *fakeEmailService) SendCheckInConfirmation(ctx context.Context, data *domain.CheckInEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkIns = append(f.checkIns, data)
	return f.err
}

type fakeLinker struct{}

func (fakeLinker) URL(positionID string) string { return "https://volunteer.example.org/checkin/" + positionID }

func (fakeLinker) PNG(positionID string) ([]byte, error) { return []byte("png:" + positionID), nil }
