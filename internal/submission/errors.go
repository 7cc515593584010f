package submission

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/movilidad/internal/amount"
)

// Kind classifies a ledger failure for callers that render messages or pick
// status codes.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindWorkerNotFound  Kind = "worker_not_found"
	KindWorkerInactive  Kind = "worker_inactive"
	KindEmptySubmission Kind = "empty_submission"
	KindCapExceeded     Kind = "cap_exceeded"
	KindPersistence     Kind = "persistence"
	KindNotFound        Kind = "not_found"
)

var (
	ErrValidation      = errors.New("invalid submission")
	ErrWorkerNotFound  = errors.New("worker not found")
	ErrWorkerInactive  = errors.New("worker is inactive")
	ErrEmptySubmission = errors.New("submission has no item with a positive amount")
	ErrCapExceeded     = errors.New("daily cap exceeded")
	ErrPersistence     = errors.New("persistence failure")
	ErrNotFound        = errors.New("submission not found")
)

// CapExceededError carries the figures needed to explain a cap rejection.
type CapExceededError struct {
	WorkerID    string
	Date        time.Time
	Accumulated decimal.Decimal
	Attempted   decimal.Decimal
	Cap         decimal.Decimal
}

func (e *CapExceededError) Error() string {
	return fmt.Sprintf("daily cap of %s exceeded on %s: already used %s, attempted %s",
		amount.Format(e.Cap), e.Date.Format(time.DateOnly),
		amount.Format(e.Accumulated), amount.Format(e.Attempted))
}

func (e *CapExceededError) Is(target error) bool {
	return target == ErrCapExceeded
}

// Remaining is what the worker could still claim that day.
func (e *CapExceededError) Remaining() decimal.Decimal {
	return decimal.Max(e.Cap.Sub(e.Accumulated), decimal.Zero)
}

// KindOf returns the kind of err, or "" for nil. Unclassified errors are
// treated as persistence failures.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrWorkerNotFound):
		return KindWorkerNotFound
	case errors.Is(err, ErrWorkerInactive):
		return KindWorkerInactive
	case errors.Is(err, ErrEmptySubmission):
		return KindEmptySubmission
	case errors.Is(err, ErrCapExceeded):
		return KindCapExceeded
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	}

	return KindPersistence
}

// Retryable reports whether retrying the same request may succeed.
func Retryable(err error) bool {
	return KindOf(err) == KindPersistence
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
