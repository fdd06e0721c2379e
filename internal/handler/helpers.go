package handler

import (
	"time"

	appErrors "github.com/noah-isme/hrms-lite-api/pkg/errors"
)

// parseDateParam parses an optional YYYY-MM-DD query value.
func parseDateParam(raw string, field string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, appErrors.Validation("invalid date filter",
			appErrors.FieldError{Field: field, Message: "invalid date format, expected YYYY-MM-DD"})
	}
	return &parsed, nil
}
