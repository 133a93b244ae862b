// Package errors provides structured application errors with stable codes.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeDataLoad marks a failed or malformed reference-data fetch.
	CodeDataLoad Code = "DATA_LOAD_FAILED"

	// CodeValidation marks form input that failed validation.
	CodeValidation Code = "VALIDATION_FAILED"

	// CodeUnauthenticated marks a request without a resolvable identity.
	CodeUnauthenticated Code = "UNAUTHENTICATED"

	// CodeSubmission marks a failure while finalizing a submission.
	CodeSubmission Code = "SUBMISSION_FAILED"

	// CodeNotFound marks a missing record or session.
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps the code to the HTTP status used by page handlers.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeDataLoad:
		return http.StatusBadGateway
	case CodeValidation:
		return http.StatusUnprocessableEntity
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
