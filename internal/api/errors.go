package api

import "fmt"

// APIError is a non-success response received before any streaming began.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %s\nResponse body: %s", e.Status, e.Body)
}
