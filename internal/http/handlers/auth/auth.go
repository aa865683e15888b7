// Package auth contains the HTTP handlers for user signup and login.
//
// The payload for both endpoints is a fixed two-field JSON object, so
// validation uses go-playground/validator struct tags on
// types.Credentials rather than the data-driven schema the form
// endpoints use.
package auth

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/karuna-foundation/outreach-api/internal/storage"
	"github.com/karuna-foundation/outreach-api/internal/types"
	"github.com/karuna-foundation/outreach-api/internal/utils/response"
)

// decodeCredentials reads and validates the {email, password} body
// shared by signup and login. On failure it writes the 400 response
// itself and reports false.
func decodeCredentials(w http.ResponseWriter, r *http.Request) (types.Credentials, bool) {
	var creds types.Credentials

	err := json.NewDecoder(r.Body).Decode(&creds)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return creds, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return creds, false
	}

	if err := validator.New().Struct(creds); err != nil {
		validateErrs := err.(validator.ValidationErrors)
		response.WriteJSON(w, http.StatusBadRequest,
			response.ValidationError(validateErrs))
		return creds, false
	}

	return creds, true
}

// Signup handles POST /signup.
//
// Request body (JSON):
//
//	{ "email": "dana@example.org", "password": "s3cret" }
//
// Success response (201 Created):
//
//	{ "status": "ok", "message": "User created successfully" }
//
// Error responses:
//
//	400 Bad Request — empty/malformed body, missing or malformed
//	                  fields, or the email is already registered
//	500 Internal    — database error
func Signup(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("signing up a user")

		creds, ok := decodeCredentials(w, r)
		if !ok {
			return
		}

		userID, err := store.CreateUser(creds.Email, creds.Password)
		if err != nil {
			if !errors.Is(err, storage.ErrDuplicateEmail) {
				slog.Error("error creating user", slog.String("error", err.Error()))
			}
			response.WriteError(w, err)
			return
		}

		slog.Info("user created", slog.Int64("id", userID))

		response.WriteJSON(w, http.StatusCreated, map[string]string{
			"status":  response.StatusOK,
			"message": "User created successfully",
		})
	}
}

// Login handles POST /login.
//
// Success response (200 OK):
//
//	{ "status": "ok", "message": "Login successful" }
//
// A wrong password and an unknown email both return the same
// 401 body — "invalid email or password" — so the response does not
// reveal which of the two checks failed. No token or session is
// issued; the acknowledgement is the whole result.
func Login(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("logging in a user")

		creds, ok := decodeCredentials(w, r)
		if !ok {
			return
		}

		if err := store.AuthenticateUser(creds.Email, creds.Password); err != nil {
			if !errors.Is(err, storage.ErrInvalidCredentials) {
				slog.Error("error authenticating user", slog.String("error", err.Error()))
			}
			response.WriteError(w, err)
			return
		}

		slog.Info("user logged in")

		response.WriteJSON(w, http.StatusOK, map[string]string{
			"status":  response.StatusOK,
			"message": "Login successful",
		})
	}
}
