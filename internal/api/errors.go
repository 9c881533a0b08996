package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failed request
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindConflict
	KindServer
	KindTransport
)

// Sentinels usable with errors.Is against any *Error
var (
	ErrValidation   = errors.New("request rejected as invalid")
	ErrUnauthorized = errors.New("request not authorized")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource already exists")
	ErrServer       = errors.New("server error")
	ErrTransport    = errors.New("transport error")
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindServer:
		return "server"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindUnauthorized:
		return ErrUnauthorized
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	case KindServer:
		return ErrServer
	case KindTransport:
		return ErrTransport
	default:
		return nil
	}
}

// Error is returned for every failed API call.
// StatusCode is zero for transport failures.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string

	// Err is the underlying transport error, if any
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches the package sentinels by kind
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// classifyStatus maps an HTTP status code to a Kind
func classifyStatus(code int) Kind {
	switch {
	case code == http.StatusBadRequest, code == http.StatusUnprocessableEntity:
		return KindValidation
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return KindUnauthorized
	case code == http.StatusNotFound:
		return KindNotFound
	case code == http.StatusConflict:
		return KindConflict
	case code >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

// errorPayload is the body the server sends with non-2xx responses
type errorPayload struct {
	Error string `json:"error"`
}

// newStatusError builds an *Error from a non-2xx response body.
// The message is extracted best-effort: the JSON error field, then the raw
// body, then the status text.
func newStatusError(code int, body []byte) *Error {
	msg := ""
	var payload errorPayload
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	} else if text := strings.TrimSpace(string(body)); text != "" && len(text) < 512 {
		msg = text
	}
	if msg == "" {
		msg = http.StatusText(code)
	}
	return &Error{
		Kind:       classifyStatus(code),
		StatusCode: code,
		Message:    msg,
	}
}

// newTransportError wraps a network-level failure
func newTransportError(err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Message: err.Error(),
		Err:     err,
	}
}

// Message returns a user-facing message for any error.
// API errors yield the server's own message.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
