package postgres

import (
	"context"
	"database/sql"
	"errors"

	"volunteerhub/internal/domain"
)

type volunteerRepository struct {
	DB *sql.DB
}

// NewVolunteerRepository returns a domain.VolunteerRepository implemented with Postgres.
// Capacity and single check-in are enforced inside transactions so concurrent
// requests cannot overbook a slot or count a check-in twice.
func NewVolunteerRepository(db *sql.DB) domain.VolunteerRepository {
	return &volunteerRepository{DB: db}
}

func (r *volunteerRepository) SignUp(ctx context.Context, slotID, userID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Lock the slot row so concurrent sign-ups serialize on the capacity check.
	var capacity int
	err = tx.QueryRowContext(ctx, `SELECT capacity FROM slots WHERE id = $1 FOR UPDATE`, slotID).Scan(&capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	var taken int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM slot_volunteers WHERE slot_id = $1`, slotID).Scan(&taken); err != nil {
		return err
	}
	if taken >= capacity {
		return domain.ErrCapacityExceeded
	}

	query := `
		INSERT INTO slot_volunteers (slot_id, user_id, checked_in, created_at)
		VALUES ($1, $2, FALSE, NOW())
	`
	if _, err := tx.ExecContext(ctx, query, slotID, userID); err != nil {
		if hasPQCode(err, pqUniqueViolation) {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return tx.Commit()
}

func (r *volunteerRepository) CheckIn(ctx context.Context, slotID, userID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		UPDATE slot_volunteers SET checked_in = TRUE
		WHERE slot_id = $1 AND user_id = $2 AND checked_in = FALSE
	`, slotID, userID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var checkedIn bool
		err := tx.QueryRowContext(ctx, `SELECT checked_in FROM slot_volunteers WHERE slot_id = $1 AND user_id = $2`, slotID, userID).Scan(&checkedIn)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return domain.ErrNotRegistered
		case err != nil:
			return err
		default:
			return domain.ErrAlreadyCheckedIn
		}
	}

	var positionID string
	err = tx.QueryRowContext(ctx, `
		UPDATE slots SET volunteers_checked_in = volunteers_checked_in + 1
		WHERE id = $1
		RETURNING position_id
	`, slotID).Scan(&positionID)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE positions SET volunteers_checked_in = volunteers_checked_in + 1
		WHERE id = $1
	`, positionID); err != nil {
		return err
	}
	return tx.Commit()
}
