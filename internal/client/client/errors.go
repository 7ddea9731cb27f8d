package client

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

var (
	ErrNotModified  = errors.New("not modified")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response from the DAM.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("request failed with status code %d", e.StatusCode)
	if body := strings.TrimSpace(e.Body); body != "" {
		if len(body) > 200 {
			body = body[:200] + "..."
		}
		msg += ": " + body
	}
	return msg
}

// Unwrap maps 401 and 403 to ErrUnauthorized.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// OperationError adds the failed operation and its subject to a
// transport error.
type OperationError struct {
	Verb    string
	Subject string
	ID      string
	Err     error
}

func (e *OperationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Verb, e.Subject, e.Err)
	}
	return fmt.Sprintf("failed to %s %s %q: %v", e.Verb, e.Subject, e.ID, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// wrap decorates transport errors with operation context. Other errors
// are returned unchanged.
func wrap(err error, verb, subject, id string) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	var urlErr *url.Error
	if errors.As(err, &apiErr) || errors.As(err, &urlErr) {
		return &OperationError{Verb: verb, Subject: subject, ID: id, Err: err}
	}
	return err
}
