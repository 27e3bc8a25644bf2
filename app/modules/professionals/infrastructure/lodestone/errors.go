package lodestone

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned when the Lodestone has no page for the request.
	ErrNotFound = errors.New("lodestone: not found")

	// ErrRateLimited is returned when the Lodestone answers 429.
	ErrRateLimited = errors.New("lodestone: rate limited")

	// ErrServerError is returned when the Lodestone answers 5xx.
	ErrServerError = errors.New("lodestone: server error")

	// ErrClientError is returned for any other non-200 answer.
	ErrClientError = errors.New("lodestone: client error")

	// ErrParse is returned when a page does not have the expected structure.
	ErrParse = errors.New("lodestone: unexpected page structure")
)

// Error is a failed Lodestone request. errors.Is matches it against its Kind.
type Error struct {
	Kind       error
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Kind returns a short label for the error class, suitable for metrics and
// event payloads.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrServerError):
		return "server_error"
	case errors.Is(err, ErrClientError):
		return "client_error"
	case errors.Is(err, ErrParse):
		return "parse_error"
	default:
		return "unknown"
	}
}

func parseError(format string, args ...any) error {
	return &Error{Kind: ErrParse, Message: fmt.Sprintf(format, args...)}
}

// request describes one kind of Lodestone page for error messages and metrics.
type request struct {
	endpoint string
	subject  string
	notFound string
}

func statusError(status int, req request) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusNotFound:
		return &Error{Kind: ErrNotFound, StatusCode: status, Message: req.notFound}
	case status == http.StatusTooManyRequests:
		return &Error{
			Kind:       ErrRateLimited,
			StatusCode: status,
			Message:    fmt.Sprintf("unable to fetch %s due to Lodestone rate limiting", req.subject),
		}
	case status >= 400 && status < 500:
		return &Error{
			Kind:       ErrClientError,
			StatusCode: status,
			Message:    fmt.Sprintf("failed to fetch %s due to an unknown client error", req.subject),
		}
	case status >= 500:
		return &Error{Kind: ErrServerError, StatusCode: status, Message: "the Lodestone appears to be down"}
	default:
		return &Error{
			Kind:       ErrClientError,
			StatusCode: status,
			Message:    fmt.Sprintf("failed to fetch %s due to an unknown issue", req.subject),
		}
	}
}
