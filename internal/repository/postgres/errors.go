package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// PostgreSQL error codes the repositories translate.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func hasPQCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
