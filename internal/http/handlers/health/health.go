// Package health exposes the liveness endpoint.
package health

import (
	"net/http"
	"time"

	"github.com/karuna-foundation/outreach-api/internal/utils/response"
)

// New handles GET /health. Always 200 with the current server time.
func New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]string{
			"status":    response.StatusOK,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
