package usecase

import (
	"errors"
	"fmt"
	"time"

	"barber-booking/pkg/utils"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid booking transition")
)

// ValidationError carries per-field messages; errors.Is(err, ErrValidation) holds.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + utils.FormatValidationErrors(e.Fields)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Message: "Validation failed", Fields: map[string]string{field: msg}}
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// ConflictError reports the booking already holding part of the requested interval.
type ConflictError struct {
	Resource   string
	ResourceID int64
	BookingID  int64
	Start      time.Time
	End        time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %d is already booked from %s to %s",
		e.Resource, e.ResourceID, e.Start.Format("2006-01-02 15:04"), e.End.Format("15:04"))
}
