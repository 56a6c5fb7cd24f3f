package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
)

// StartDraft handles POST /api/v1/drafts
func (h *Handlers) StartDraft(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProposalID string `json:"proposal_id"`
	}
	// Body is optional; an empty body starts a blank draft.
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	_ = json.NewDecoder(r.Body).Decode(&req)

	state, err := h.Drafts.Start(r.Context(), ownerID(r), req.ProposalID)
	if err != nil {
		writeDomainError(w, err, "proposal not found")
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

// GetDraft handles GET /api/v1/drafts/{id}
func (h *Handlers) GetDraft(w http.ResponseWriter, r *http.Request) {
	state, err := h.Drafts.Get(ownerID(r), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "draft session not found")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// SubmitDraftStep handles POST /api/v1/drafts/{id}/steps/{n}
// The body is the raw section payload for the submitted step.
func (h *Handlers) SubmitDraftStep(w http.ResponseWriter, r *http.Request) {
	step, ok := stepParam(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	if !json.Valid(payload) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.Drafts.SubmitStep(ownerID(r), urlParam(r, "id"), step, payload)
	if err != nil {
		writeDomainError(w, err, "draft session not found")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// GoToDraftStep handles POST /api/v1/drafts/{id}/goto/{n}
func (h *Handlers) GoToDraftStep(w http.ResponseWriter, r *http.Request) {
	step, ok := stepParam(w, r)
	if !ok {
		return
	}
	state, err := h.Drafts.GoTo(ownerID(r), urlParam(r, "id"), step)
	if err != nil {
		writeDomainError(w, err, "draft session not found")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// SaveDraft handles POST /api/v1/drafts/{id}/save
func (h *Handlers) SaveDraft(w http.ResponseWriter, r *http.Request) {
	p, err := h.Drafts.Save(r.Context(), ownerID(r), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "draft session not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CloseDraft handles DELETE /api/v1/drafts/{id}
func (h *Handlers) CloseDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.Drafts.Close(ownerID(r), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "draft session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// stepParam parses the {n} URL parameter as a wizard step number.
func stepParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	step, err := strconv.Atoi(urlParam(r, "n"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid step number")
		return 0, false
	}
	return step, true
}
