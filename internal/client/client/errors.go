package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")
	ErrTransport    = errors.New("transport failure")

	// ErrStaleSession means the response arrived after the session that
	// issued the request was replaced or cleared; its result was dropped.
	ErrStaleSession = errors.New("response belongs to an ended session")
)

// APIError is a non-2xx response other than an authorization rejection.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %d %s", e.Status, e.Detail)
}

// Is lets 5xx gateway statuses match ErrUnavailable.
func (e *APIError) Is(target error) bool {
	if target != ErrUnavailable {
		return false
	}
	switch e.Status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}
