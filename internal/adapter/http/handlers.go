package http

import (
	"io"
	"net/http"

	"github.com/dlriva/proposalforge/internal/domain/proposal"
	"github.com/dlriva/proposalforge/internal/service"
)

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	Auth      *service.AuthService
	Proposals *service.ProposalService
	Drafts    *service.DraftService
	Renders   *service.RenderService
	Uploads   *service.UploadService
}

// proposalRequest is the JSON body for proposal create and update.
type proposalRequest struct {
	Data   proposal.Document `json:"data"`
	Status string            `json:"status,omitempty"`
}

// ListProposals handles GET /api/v1/proposals?status=<optional>
func (h *Handlers) ListProposals(w http.ResponseWriter, r *http.Request) {
	var status proposal.Status
	if q := r.URL.Query().Get("status"); q != "" {
		status = proposal.Status(q)
		if !proposal.ValidStatuses[status] {
			writeError(w, http.StatusBadRequest, "unknown status filter")
			return
		}
	}

	items, err := h.Proposals.List(r.Context(), ownerID(r))
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if status != "" {
		filtered := items[:0]
		for _, s := range items {
			if s.Status == status {
				filtered = append(filtered, s)
			}
		}
		items = filtered
	}
	if items == nil {
		items = []proposal.Summary{}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetProposal handles GET /api/v1/proposals/{id}
func (h *Handlers) GetProposal(w http.ResponseWriter, r *http.Request) {
	handleGet(h.Proposals.Get, "proposal not found")(w, r)
}

// CreateProposal handles POST /api/v1/proposals
func (h *Handlers) CreateProposal(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[proposalRequest](w, r)
	if !ok {
		return
	}
	p, err := h.Proposals.Create(r.Context(), ownerID(r), req.Data)
	if err != nil {
		writeDomainError(w, err, "proposal creation failed")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// UpdateProposal handles PUT /api/v1/proposals/{id}
func (h *Handlers) UpdateProposal(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[proposalRequest](w, r)
	if !ok {
		return
	}
	p, err := h.Proposals.Update(r.Context(), ownerID(r), urlParam(r, "id"), req.Data, proposal.Status(req.Status))
	if err != nil {
		writeDomainError(w, err, "proposal not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteProposal handles DELETE /api/v1/proposals/{id}
func (h *Handlers) DeleteProposal(w http.ResponseWriter, r *http.Request) {
	handleDelete(h.Proposals.Delete, "proposal not found")(w, r)
}

// DuplicateProposal handles POST /api/v1/proposals/{id}/duplicate
func (h *Handlers) DuplicateProposal(w http.ResponseWriter, r *http.Request) {
	handleAction(h.Proposals.Duplicate, "proposal not found")(w, r)
}

// PreviewProposal handles GET /api/v1/proposals/{id}/preview
func (h *Handlers) PreviewProposal(w http.ResponseWriter, r *http.Request) {
	data, err := h.Renders.Preview(r.Context(), ownerID(r), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "proposal not found")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ExportProposal handles GET /api/v1/proposals/{id}/export
func (h *Handlers) ExportProposal(w http.ResponseWriter, r *http.Request) {
	file, err := h.Renders.Export(r.Context(), ownerID(r), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "proposal not found")
		return
	}
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}

// UploadLogo handles POST /api/v1/uploads/logo
func (h *Handlers) UploadLogo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(service.MaxLogoBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxLogoBytes+1))
	if err != nil {
		writeInternalError(w, err)
		return
	}

	result, err := h.Uploads.UploadLogo(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		writeDomainError(w, err, "upload failed")
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
