// Package donation contains the HTTP handlers for the donation intake
// endpoints.
//
// Handlers here follow the closure/factory pattern used across this
// service: the exported function accepts dependencies (the storage
// gateway) and returns the http.HandlerFunc the router needs. The
// factory runs once at startup; the returned closure runs per request
// with the captured dependencies.
package donation

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/karuna-foundation/outreach-api/internal/schema"
	"github.com/karuna-foundation/outreach-api/internal/storage"
	"github.com/karuna-foundation/outreach-api/internal/types"
	"github.com/karuna-foundation/outreach-api/internal/utils/response"
)

// New handles POST /api/donate.
//
// Request body (JSON): the donation form fields, e.g.
//
//	{ "name": "...", "email": "...", "amount": 2500, "donation_type": "One-Time", ... }
//
// Success response (200 OK):
//
//	{ "success": true, "message": "Donation saved successfully", "donationId": 1 }
//
// Error responses:
//
//	400 Bad Request — empty body, malformed JSON, or validation
//	                  problems (every missing/invalid field listed)
//	500 Internal    — database error
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("receiving a donation")

		// Decode into a field-map rather than a struct: the schema
		// validator reports required-field and enum problems over the
		// raw submitted keys, collecting every issue at once.
		var fields map[string]any
		err := json.NewDecoder(r.Body).Decode(&fields)

		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		record, problems := schema.Validate(fields, schema.Donation)
		if problems != nil {
			slog.Info("donation rejected",
				slog.String("problems", problems.Error()))
			response.WriteError(w, problems)
			return
		}

		donationID, err := store.CreateDonation(fromRecord(record))
		if err != nil {
			slog.Error("error saving donation", slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		slog.Info("donation saved", slog.Int64("id", donationID))

		response.WriteJSON(w, http.StatusOK, map[string]any{
			"success":    true,
			"message":    "Donation saved successfully",
			"donationId": donationID,
		})
	}
}

// GetList handles GET /api/donations.
// Returns every donation, newest first; [] (not null) when empty.
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all donations")

		donations, err := store.GetDonations()
		if err != nil {
			slog.Error("error getting donations", slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, donations)
	}
}

// fromRecord converts a validated record into the storage type. The
// validator has already coerced amount to float64 and guaranteed every
// required key is present.
func fromRecord(r schema.Record) types.Donation {
	str := func(k string) string { s, _ := r[k].(string); return s }
	num := func(k string) float64 { n, _ := r[k].(float64); return n }

	return types.Donation{
		Name:          str("name"),
		Email:         str("email"),
		Amount:        num("amount"),
		DonationType:  str("donation_type"),
		Cause:         str("cause"),
		FundType:      str("fund_type"),
		Message:       str("message"),
		Communication: str("communication"),
		Interaction:   str("interaction"),
		Mentorship:    str("mentorship"),
		TaxExemption:  str("tax_exemption"),
		Motivation:    str("motivation"),
	}
}
