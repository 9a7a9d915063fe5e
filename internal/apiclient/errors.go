package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"warranty/internal/domain"
)

// Error is the only failure type the client returns.
// Status is 0 when no HTTP response was obtained or it could not be decoded.
type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return "warranty api: " + e.Message
	}
	return fmt.Sprintf("warranty api: %d %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets callers test a 404 with errors.Is(err, domain.ErrNotFound).
func (e *Error) Is(target error) bool {
	return target == domain.ErrNotFound && e.Status == http.StatusNotFound
}

func transportError(msg string, err error) *Error {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	return &Error{Status: 0, Message: msg, Err: err}
}

// statusError builds an Error from a non-2xx response body.
func statusError(status int, body []byte) *Error {
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
		Code    json.RawMessage `json:"code"`
	}
	_ = json.Unmarshal(body, &payload)

	msg := messageText(payload.Message)
	if msg == "" {
		msg = payload.Error
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", status)
	}
	return &Error{Status: status, Code: rawCode(payload.Code), Message: msg}
}

// messageText reads a message that is either a string or, for validation
// failures, a list of strings.
func messageText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ", ")
	}
	return ""
}

// codes arrive both as "E_SOMETHING" and as numbers
func rawCode(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// StatusOf returns the HTTP status carried by err, if err came from the client.
func StatusOf(err error) (int, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status, true
	}
	return 0, false
}

func IsTransport(err error) bool {
	s, ok := StatusOf(err)
	return ok && s == 0
}

func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
