package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

var ErrUnauthorized = errors.New("api: unauthorized")

// Error is a non-2xx response from the league API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("api: HTTP %d: %s", e.StatusCode, e.Message)
}

// BackendMessage is the message the backend wants shown to the user.
func (e *Error) BackendMessage() string { return e.Message }

func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

func newError(statusCode int, body []byte) *Error {
	msg := gjson.GetBytes(body, "message").String()
	if msg == "" {
		msg = gjson.GetBytes(body, "error").String()
	}
	return &Error{StatusCode: statusCode, Message: msg}
}
