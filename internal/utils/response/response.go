// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client, and
// every error reaches the client through exactly one function: WriteError
// maps each error kind in the system (validation problems, rejected
// files, duplicate email, failed login, everything else) to its HTTP
// status and body. Handlers never hand-build error payloads, so the
// mapping lives in one place instead of being scattered per endpoint.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/karuna-foundation/outreach-api/internal/schema"
	"github.com/karuna-foundation/outreach-api/internal/storage"
	"github.com/karuna-foundation/outreach-api/internal/upload"
)

// Response is the standard envelope returned for error cases.
//
// Success responses may return any JSON shape (an id, a list, an
// acknowledgement); error responses always look like:
//
//	{ "status": "error", "error": "missing: amount" }
type Response struct {
	Status string `json:"status"` // "ok" or "error"
	Error  string `json:"error"`  // human-readable error detail
}

// Status string constants — a typo in a literal would ship silently;
// a typo in a constant is a compile error.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status
// code. Header() → WriteHeader() → body, in that order — once the first
// body byte is written the headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into the standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// WriteError is the single error-to-HTTP mapping for the whole service:
//
//	schema.Problems          → 400, every problem listed
//	*upload.FileError        → 400, names the offending file
//	storage.ErrDuplicateEmail     → 400 "email already exists"
//	storage.ErrInvalidCredentials → 401 "invalid email or password"
//	anything else            → 500 "internal error"
//
// The 500 body is deliberately generic: storage and disk failures are
// for the server log, not the caller. The 401 body is deliberately the
// same for unknown email and wrong password.
func WriteError(w http.ResponseWriter, err error) error {
	var problems schema.Problems
	if errors.As(err, &problems) {
		return WriteJSON(w, http.StatusBadRequest, GeneralError(problems))
	}

	var fileErr *upload.FileError
	if errors.As(err, &fileErr) {
		return WriteJSON(w, http.StatusBadRequest, GeneralError(fileErr))
	}

	if errors.Is(err, storage.ErrDuplicateEmail) {
		return WriteJSON(w, http.StatusBadRequest, GeneralError(storage.ErrDuplicateEmail))
	}

	if errors.Is(err, storage.ErrInvalidCredentials) {
		return WriteJSON(w, http.StatusUnauthorized, GeneralError(storage.ErrInvalidCredentials))
	}

	return WriteJSON(w, http.StatusInternalServerError,
		GeneralError(errors.New("internal error")))
}

// ValidationError converts go-playground/validator field errors into a
// single Response, one plain-English clause per failing field.
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "email":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a valid email address", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}
