package medusa

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Error is a non-2xx answer from the Store API.
type Error struct {
	Status  int
	Type    string
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("medusa: %d %s: %s", e.Status, e.Type, e.Message)
	}
	return fmt.Sprintf("medusa: %d %s", e.Status, http.StatusText(e.Status))
}

// TransportError means no response was received from the backend.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return e.Op + ": no response from backend: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

func parseError(status int, body []byte) *Error {
	e := &Error{Status: status}
	if gjson.ValidBytes(body) {
		res := gjson.GetManyBytes(body, "type", "code", "message")
		e.Type, e.Code, e.Message = res[0].String(), res[1].String(), res[2].String()
		if e.Message == "" {
			e.Message = gjson.GetBytes(body, "errors.0.message").String()
		}
	} else {
		e.Message = strings.TrimSpace(string(body))
	}
	if e.Type == "" {
		e.Type = strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
	return e
}

func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	e, ok := AsError(err)
	return ok && (e.Status == http.StatusNotFound || e.Type == "not_found")
}

func IsUnauthorized(err error) bool {
	e, ok := AsError(err)
	return ok && e.Status == http.StatusUnauthorized
}

func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Message returns the backend's human readable message, falling back to err.Error().
func Message(err error) string {
	if e, ok := AsError(err); ok && e.Message != "" {
		return e.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
