package http

import (
	"context"
	"net/http"

	"github.com/dlriva/proposalforge/internal/middleware"
)

// ---------------------------------------------------------------------------
// Generic owner-scoped CRUD handler factories
// ---------------------------------------------------------------------------

// ownerID extracts the authenticated owner's id from the request context.
func ownerID(r *http.Request) string {
	if u := middleware.UserFromContext(r.Context()); u != nil {
		return u.ID
	}
	return ""
}

// handleGet creates a handler that retrieves one of the owner's resources by URL param "id".
func handleGet[T any](getFn func(ctx context.Context, ownerID, id string) (*T, error), notFoundMsg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := getFn(r.Context(), ownerID(r), urlParam(r, "id"))
		if err != nil {
			writeDomainError(w, err, notFoundMsg)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

// handleDelete creates a handler that deletes one of the owner's resources by URL param "id".
func handleDelete(deleteFn func(ctx context.Context, ownerID, id string) error, notFoundMsg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deleteFn(r.Context(), ownerID(r), urlParam(r, "id")); err != nil {
			writeDomainError(w, err, notFoundMsg)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleAction creates a handler for body-less POST actions on a resource.
func handleAction[Res any](fn func(ctx context.Context, ownerID, id string) (*Res, error), notFoundMsg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := fn(r.Context(), ownerID(r), urlParam(r, "id"))
		if err != nil {
			writeDomainError(w, err, notFoundMsg)
			return
		}
		writeJSON(w, http.StatusCreated, res)
	}
}
