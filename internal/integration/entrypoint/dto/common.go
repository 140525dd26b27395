// Package dto defines data transfer objects for API requests and responses.
package dto

import "time"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// DateLayout is the date-only layout accepted and produced by the API.
const DateLayout = "2006-01-02"

// ParseDate accepts an RFC 3339 timestamp or a YYYY-MM-DD date.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(DateLayout, value)
}
