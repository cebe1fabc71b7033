package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"volunteerhub/internal/domain"
)

const positionColumns = `id, event_id, name, start_time, end_time, volunteers_needed, volunteers_checked_in, created_at`

type positionRepository struct {
	DB *sql.DB
}

func NewPositionRepository(db *sql.DB) domain.PositionRepository {
	return &positionRepository{DB: db}
}

func scanPosition(row interface{ Scan(...any) error }, p *domain.Position) error {
	return row.Scan(&p.ID, &p.EventID, &p.Name, &p.StartTime, &p.EndTime, &p.VolunteersNeeded, &p.VolunteersCheckedIn, &p.CreatedAt)
}

func (r *positionRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.PositionWithVolunteers, error) {
	query := `
		SELECT ` + positionColumns + `
		FROM positions
		WHERE event_id = $1
		ORDER BY start_time ASC, created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	positions := make([]*domain.PositionWithVolunteers, 0)
	byID := make(map[string]*domain.PositionWithVolunteers)
	for rows.Next() {
		p := &domain.PositionWithVolunteers{Volunteers: []*domain.User{}}
		if err := scanPosition(rows, &p.Position); err != nil {
			return nil, err
		}
		positions = append(positions, p)
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(positions) == 0 {
		return positions, nil
	}

	volunteerQuery := `
		SELECT DISTINCT s.position_id, u.id, u.email, u.created_at
		FROM slot_volunteers sv
		JOIN slots s ON s.id = sv.slot_id
		JOIN positions p ON p.id = s.position_id
		JOIN users u ON u.id = sv.user_id
		WHERE p.event_id = $1
		ORDER BY s.position_id, u.email
	`
	vrows, err := r.DB.QueryContext(ctx, volunteerQuery, eventID)
	if err != nil {
		return nil, err
	}
	defer vrows.Close()
	for vrows.Next() {
		var positionID string
		u := &domain.User{}
		if err := vrows.Scan(&positionID, &u.ID, &u.Email, &u.CreatedAt); err != nil {
			return nil, err
		}
		if p, ok := byID[positionID]; ok {
			p.Volunteers = append(p.Volunteers, u)
		}
	}
	return positions, vrows.Err()
}

func (r *positionRepository) GetByID(ctx context.Context, id string) (*domain.Position, error) {
	query := `
		SELECT ` + positionColumns + `
		FROM positions
		WHERE id = $1
	`
	p := &domain.Position{}
	if err := scanPosition(r.DB.QueryRowContext(ctx, query, id), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *positionRepository) Create(ctx context.Context, p *domain.Position) error {
	query := `
		INSERT INTO positions (event_id, name, start_time, end_time, volunteers_needed, volunteers_checked_in, created_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, p.EventID, p.Name, p.StartTime, p.EndTime, p.VolunteersNeeded, p.CreatedAt).Scan(&p.ID)
	if hasPQCode(err, pqForeignKeyViolation) {
		return domain.ErrNotFound
	}
	return err
}

func (r *positionRepository) Update(ctx context.Context, id string, patch domain.PositionPatch) error {
	var setClauses []string
	var args []any
	n := 1
	if patch.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *patch.Name)
		n++
	}
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
	if patch.VolunteersNeeded != nil {
		setClauses = append(setClauses, fmt.Sprintf("volunteers_needed = $%d", n))
		args = append(args, *patch.VolunteersNeeded)
		n++
	}
	if n == 1 {
		_, err := r.GetByID(ctx, id)
		return err
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE positions SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), n)
	return execAffectingOne(ctx, r.DB, query, args...)
}

func (r *positionRepository) Delete(ctx context.Context, id string) error {
	return execAffectingOne(ctx, r.DB, `DELETE FROM positions WHERE id = $1`, id)
}
