package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"volunteerhub/internal/domain"
)

const slotColumns = `id, position_id, start_time, end_time, capacity, volunteers_checked_in, created_at`

type slotRepository struct {
	DB *sql.DB
}

func NewSlotRepository(db *sql.DB) domain.SlotRepository {
	return &slotRepository{DB: db}
}

func scanSlot(row interface{ Scan(...any) error }, s *domain.Slot) error {
	return row.Scan(&s.ID, &s.PositionID, &s.StartTime, &s.EndTime, &s.Capacity, &s.VolunteersCheckedIn, &s.CreatedAt)
}

func (r *slotRepository) ListByPositionID(ctx context.Context, positionID string) ([]*domain.SlotWithVolunteers, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE position_id = $1
		ORDER BY start_time ASC, created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, positionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]*domain.SlotWithVolunteers, 0)
	byID := make(map[string]*domain.SlotWithVolunteers)
	for rows.Next() {
		s := &domain.SlotWithVolunteers{Volunteers: []*domain.Volunteer{}}
		if err := scanSlot(rows, &s.Slot); err != nil {
			return nil, err
		}
		slots = append(slots, s)
		byID[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return slots, nil
	}

	volunteerQuery := `
		SELECT sv.slot_id, u.id, u.email, u.created_at, sv.checked_in
		FROM slot_volunteers sv
		JOIN slots s ON s.id = sv.slot_id
		JOIN users u ON u.id = sv.user_id
		WHERE s.position_id = $1
		ORDER BY sv.created_at ASC
	`
	vrows, err := r.DB.QueryContext(ctx, volunteerQuery, positionID)
	if err != nil {
		return nil, err
	}
	defer vrows.Close()
	for vrows.Next() {
		var slotID string
		v := &domain.Volunteer{User: &domain.User{}}
		if err := vrows.Scan(&slotID, &v.User.ID, &v.User.Email, &v.User.CreatedAt, &v.CheckedIn); err != nil {
			return nil, err
		}
		if s, ok := byID[slotID]; ok {
			s.Volunteers = append(s.Volunteers, v)
		}
	}
	return slots, vrows.Err()
}

func (r *slotRepository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE id = $1
	`
	s := &domain.Slot{}
	if err := scanSlot(r.DB.QueryRowContext(ctx, query, id), s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *slotRepository) Create(ctx context.Context, s *domain.Slot) error {
	query := `
		INSERT INTO slots (position_id, start_time, end_time, capacity, volunteers_checked_in, created_at)
		VALUES ($1, $2, $3, $4, 0, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, s.PositionID, s.StartTime, s.EndTime, s.Capacity, s.CreatedAt).Scan(&s.ID)
	if hasPQCode(err, pqForeignKeyViolation) {
		return domain.ErrNotFound
	}
	return err
}

func (r *slotRepository) Update(ctx context.Context, id string, patch domain.SlotPatch) error {
	var setClauses []string
	var args []any
	n := 1
	if patch.StartTime != nil {
		setClauses = append(setClauses, fmt.Sprintf("start_time = $%d", n))
		args = append(args, *patch.StartTime)
		n++
	}
	if patch.EndTime != nil {
		setClauses = append(setClauses, fmt.Sprintf("end_time = $%d", n))
		args = append(args, *patch.EndTime)
		n++
	}
	if patch.Capacity != nil {
		setClauses = append(setClauses, fmt.Sprintf("capacity = $%d", n))
		args = append(args, *patch.Capacity)
		n++
	}
	if n == 1 {
		_, err := r.GetByID(ctx, id)
		return err
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE slots SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), n)
	return execAffectingOne(ctx, r.DB, query, args...)
}

func (r *slotRepository) Delete(ctx context.Context, id string) error {
	return execAffectingOne(ctx, r.DB, `DELETE FROM slots WHERE id = $1`, id)
}
