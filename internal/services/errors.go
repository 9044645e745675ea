package services

import "errors"

var (
	// ErrValidation wraps malformed-input failures; rejected before any
	// side effect.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateReport means the reporter already has an open report
	// against the same content.
	ErrDuplicateReport = errors.New("an open report already exists for this content")

	ErrReportNotFound = errors.New("report not found")

	// ErrAlreadyReviewed means the report has reached a terminal status;
	// status never moves backward.
	ErrAlreadyReviewed = errors.New("report has already been reviewed")
)
