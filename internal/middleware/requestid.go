// Package middleware provides HTTP middleware for ProposalForge.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dlriva/proposalforge/internal/logger"
)

const headerRequestID = "X-Request-ID"

// RequestID is HTTP middleware that tags every request with an id for log
// correlation. An id supplied by the caller is honored so the editor
// frontend can trace a save across its own logs and ours; otherwise a
// fresh uuid is assigned. The id is stored in the context and echoed on
// the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := logger.WithRequestID(r.Context(), id)
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
