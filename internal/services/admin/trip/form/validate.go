package form

import (
	apperrors "github.com/travelagency/admin/internal/platform/errors"
)

// Validation messages and their catalog keys.
const (
	MessageMissingFields = "Please provide values for all fields."
	MessageDurationRange = "Duration must be between 1 and 10 days"

	KeyMissingFields = "trip.error.missing_fields"
	KeyDurationRange = "trip.error.duration_range"
)

// Duration bounds in days, inclusive.
const (
	MinDuration = 1
	MaxDuration = 10
)

// Validate reports whether d may be submitted. Missing categorical fields are
// checked before the duration range. The returned error carries
// apperrors.CodeValidation.
func Validate(d FormData) error {
	if d.Country == "" || d.TravelStyle == "" || d.Interest == "" || d.Budget == "" || d.GroupType == "" {
		return apperrors.WithKey(apperrors.CodeValidation, KeyMissingFields, MessageMissingFields)
	}
	if d.Duration < MinDuration || d.Duration > MaxDuration {
		return apperrors.WithKey(apperrors.CodeValidation, KeyDurationRange, MessageDurationRange)
	}
	return nil
}
