package http

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Route("/api/v1", func(r chi.Router) {
		// Auth
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.Get("/auth/me", h.CurrentUser)

		// Proposals
		r.Get("/proposals", h.ListProposals)
		r.Post("/proposals", h.CreateProposal)
		r.Get("/proposals/{id}", h.GetProposal)
		r.Put("/proposals/{id}", h.UpdateProposal)
		r.Delete("/proposals/{id}", h.DeleteProposal)
		r.Post("/proposals/{id}/duplicate", h.DuplicateProposal)

		// Rendering
		r.Get("/proposals/{id}/preview", h.PreviewProposal)
		r.Get("/proposals/{id}/export", h.ExportProposal)

		// Uploads
		r.Post("/uploads/logo", h.UploadLogo)

		// Draft sessions (wizard)
		r.Post("/drafts", h.StartDraft)
		r.Get("/drafts/{id}", h.GetDraft)
		r.Post("/drafts/{id}/steps/{n}", h.SubmitDraftStep)
		r.Post("/drafts/{id}/goto/{n}", h.GoToDraftStep)
		r.Post("/drafts/{id}/save", h.SaveDraft)
		r.Delete("/drafts/{id}", h.CloseDraft)
	})
}
