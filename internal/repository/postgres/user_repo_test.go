package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"volunteerhub/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	stored := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		mock        func(mock sqlmock.Sqlmock)
		wantCreated time.Time
		wantErr     bool
	}{
		{
			name: "existing user keeps original created_at",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users \(id, email, created_at\)`).
					WithArgs("u-1", "alice@example.com", now).
					WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(stored))
			},
			wantCreated: stored,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			u := &domain.User{ID: "u-1", Email: "alice@example.com", CreatedAt: now}
			err = NewUserRepository(db).Upsert(ctx, u)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantCreated, u.CreatedAt)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
