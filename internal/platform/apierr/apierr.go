package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error carries the HTTP status and a stable machine-readable code for an
// API failure. Handlers build one at the edge; services return plain errors.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

type payload struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type envelope struct {
	Error payload `json:"error"`
}

// Write renders err as the standard JSON error envelope. Errors that are
// not *Error fall back to a bare 500 without leaking the message.
func Write(w http.ResponseWriter, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = New(http.StatusInternalServerError, "INTERNAL", errors.New("internal error"))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	_ = json.NewEncoder(w).Encode(envelope{Error: payload{
		Message: apiErr.Error(),
		Code:    apiErr.Code,
	}})
}
