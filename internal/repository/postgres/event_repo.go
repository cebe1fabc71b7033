package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"volunteerhub/internal/domain"
)

const eventColumns = `id, user_id, name, description, event_time, location, created_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY event_time ASC, created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.Description, &e.EventTime, &e.Location, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.UserID, &e.Name, &e.Description, &e.EventTime, &e.Location, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (user_id, name, description, event_time, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, e.UserID, e.Name, e.Description, e.EventTime, e.Location, e.CreatedAt).Scan(&e.ID)
}

func (r *eventRepository) Update(ctx context.Context, id string, patch domain.EventPatch) error {
	var setClauses []string
	var args []any
	n := 1
	if patch.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *patch.Name)
		n++
	}
	if patch.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *patch.Description)
		n++
	}
	if patch.EventTime != nil {
		setClauses = append(setClauses, fmt.Sprintf("event_time = $%d", n))
		args = append(args, *patch.EventTime)
		n++
	}
	if patch.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *patch.Location)
		n++
	}
	if n == 1 {
		// Nothing to write; still report a missing row.
		_, err := r.GetByID(ctx, id)
		return err
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE events SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), n)
	return execAffectingOne(ctx, r.DB, query, args...)
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	return execAffectingOne(ctx, r.DB, `DELETE FROM events WHERE id = $1`, id)
}

// execAffectingOne runs query and reports domain.ErrNotFound when no row was affected.
func execAffectingOne(ctx context.Context, db *sql.DB, query string, args ...any) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
