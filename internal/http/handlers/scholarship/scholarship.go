// Package scholarship contains the HTTP handlers for scholarship
// application intake.
//
// The submit handler is the one multipart endpoint in the service:
// text fields and five named file parts arrive in a single form. File
// intake runs first — each provided attachment is checked and stored,
// and its generated handle replaces the file in the field-map — then
// the schema validator runs over the combined map, so a slot with no
// upload surfaces as an ordinary missing field.
package scholarship

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/karuna-foundation/outreach-api/internal/schema"
	"github.com/karuna-foundation/outreach-api/internal/storage"
	"github.com/karuna-foundation/outreach-api/internal/types"
	"github.com/karuna-foundation/outreach-api/internal/upload"
	"github.com/karuna-foundation/outreach-api/internal/utils/response"
)

// New handles POST /submit_application.
//
// Request body: multipart/form-data with the applicant's text fields
// plus five file parts (adhaarCard, rationCard, incomeCertificate,
// marksheet, attendanceSheet), each .pdf/.jpg/.jpeg/.png and at most
// 10 MB.
//
// Success response (200 OK):
//
//	{ "success": true, "message": "Application submitted successfully", "applicationId": 1 }
//
// Error responses:
//
//	400 Bad Request — not multipart, a rejected file (wrong type or
//	                  too large, named in the error), or validation
//	                  problems including missing attachment slots
//	500 Internal    — disk or database error
//
// Files stored for earlier slots are NOT removed when a later slot is
// rejected or the database insert fails; they stay orphaned in the
// content directory.
func New(store storage.Storage, files *upload.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("receiving a scholarship application")

		// The memory threshold only decides when parts spill to temp
		// files; per-file size limits are enforced by the upload store.
		if err := r.ParseMultipartForm(files.MaxSize); err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("expected a multipart form body")))
			return
		}

		fields := make(map[string]any, len(r.MultipartForm.Value))
		for key, values := range r.MultipartForm.Value {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}

		// File intake first: store what was provided, abort on any
		// rejection. Slots with no upload are left out of the map and
		// reported as missing fields by the validator below.
		for _, slot := range schema.AttachmentSlots {
			headers := r.MultipartForm.File[slot]
			if len(headers) == 0 {
				continue
			}

			handle, err := files.Save(headers[0])
			if err != nil {
				var fileErr *upload.FileError
				if errors.As(err, &fileErr) {
					slog.Info("attachment rejected",
						slog.String("slot", slot),
						slog.String("filename", fileErr.Filename))
				} else {
					slog.Error("error storing attachment",
						slog.String("slot", slot),
						slog.String("error", err.Error()))
				}
				response.WriteError(w, err)
				return
			}

			fields[slot] = handle
		}

		record, problems := schema.Validate(fields, schema.Scholarship)
		if problems != nil {
			slog.Info("application rejected",
				slog.String("problems", problems.Error()))
			response.WriteError(w, problems)
			return
		}

		applicationID, err := store.CreateApplication(fromRecord(record))
		if err != nil {
			slog.Error("error saving application", slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		slog.Info("application saved", slog.Int64("id", applicationID))

		response.WriteJSON(w, http.StatusOK, map[string]any{
			"success":       true,
			"message":       "Application submitted successfully",
			"applicationId": applicationID,
		})
	}
}

// GetList handles GET /api/applications.
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all applications")

		applications, err := store.GetApplications()
		if err != nil {
			slog.Error("error getting applications", slog.String("error", err.Error()))
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, applications)
	}
}

func fromRecord(r schema.Record) types.ScholarshipApplication {
	str := func(k string) string { s, _ := r[k].(string); return s }
	num := func(k string) float64 { n, _ := r[k].(float64); return n }

	return types.ScholarshipApplication{
		FullName:          str("fullName"),
		Email:             str("email"),
		Phone:             str("phone"),
		Grade:             str("grade"),
		Essay:             str("essay"),
		AdhaarCard:        str("adhaarCard"),
		RationCard:        str("rationCard"),
		IncomeCertificate: str("incomeCertificate"),
		Marksheet:         str("marksheet"),
		AttendanceSheet:   str("attendanceSheet"),
		FatherName:        str("fatherName"),
		FatherOccupation:  str("fatherOccupation"),
		MotherName:        str("motherName"),
		MotherOccupation:  str("motherOccupation"),
		AnnualIncome:      num("annualIncome"),
		BankAccountNumber: str("bankAccountNumber"),
		IFSCCode:          str("ifscCode"),
	}
}
