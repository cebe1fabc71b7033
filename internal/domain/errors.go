package domain

import "errors"

// Sentinel errors shared by services and repositories.
var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthenticated     = errors.New("User not authenticated")
	ErrForbidden           = errors.New("forbidden")
	ErrCapacityExceeded    = errors.New("This slot is already full")
	ErrAlreadyRegistered   = errors.New("You are already signed up for this slot")
	ErrNotRegistered       = errors.New("You are not registered for any slots in this position")
	ErrAlreadyCheckedIn    = errors.New("You have already checked in for this slot")
	ErrDuplicateSubmission = errors.New("request already in progress")
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError is a local rule violation. It never reaches the store.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is reports whether target is ErrValidation or the same rule violation.
func (e *ValidationError) Is(target error) bool {
	if target == ErrValidation {
		return true
	}
	t, ok := target.(*ValidationError)
	return ok && t.Rule == e.Rule
}

// NewValidationError returns a ValidationError for an ad-hoc rule, e.g. a required field.
func NewValidationError(rule, message string) *ValidationError {
	return &ValidationError{Rule: rule, Message: message}
}

// StoreError carries a failure reported by the database. Its message is the
// driver's message, unchanged.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError wraps err unless it is nil or already a domain sentinel.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomainError(err) {
		return err
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// IsDomainError reports whether err is one of the package's sentinel or validation errors.
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrUnauthenticated, ErrForbidden, ErrCapacityExceeded,
		ErrAlreadyRegistered, ErrNotRegistered, ErrAlreadyCheckedIn,
		ErrDuplicateSubmission, ErrValidation,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
