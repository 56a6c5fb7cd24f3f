package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	pfotel "github.com/dlriva/proposalforge/internal/adapter/otel"
	"github.com/dlriva/proposalforge/internal/domain"
	"github.com/dlriva/proposalforge/internal/domain/proposal"
	"github.com/dlriva/proposalforge/internal/port/cache"
	"github.com/dlriva/proposalforge/internal/port/database"
)

// ProposalService owns the persisted proposal lifecycle. Every save
// normalizes the document, re-derives the summary columns, and drops any
// cached render of the proposal.
type ProposalService struct {
	store   database.Store
	cache   cache.Cache
	metrics *pfotel.Metrics
}

// NewProposalService creates a new proposal service.
func NewProposalService(store database.Store, c cache.Cache) *ProposalService {
	return &ProposalService{store: store, cache: c}
}

// SetMetrics attaches metric instruments. Left nil, nothing is recorded.
func (s *ProposalService) SetMetrics(m *pfotel.Metrics) {
	s.metrics = m
}

// List returns the owner's proposal summaries, most recently updated first.
func (s *ProposalService) List(ctx context.Context, ownerID string) ([]proposal.Summary, error) {
	return s.store.ListProposals(ctx, ownerID)
}

// Get returns one proposal. An id belonging to another owner is not found.
func (s *ProposalService) Get(ctx context.Context, ownerID, id string) (*proposal.Proposal, error) {
	return s.store.GetProposal(ctx, ownerID, id)
}

// Create persists a new draft proposal from a document.
func (s *ProposalService) Create(ctx context.Context, ownerID string, doc proposal.Document) (*proposal.Proposal, error) {
	p, err := s.prepare(ownerID, doc, proposal.StatusDraft)
	if err != nil {
		return nil, err
	}

	ctx, span := pfotel.StartSaveSpan(ctx, ownerID, "")
	defer span.End()

	created, err := s.store.CreateProposal(ctx, p)
	s.countSave(ctx, err)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("proposal.id", created.ID))
	return created, nil
}

// Update replaces a proposal's document (last write wins) and optionally
// its status. An empty status keeps the stored one.
func (s *ProposalService) Update(ctx context.Context, ownerID, id string, doc proposal.Document, status proposal.Status) (*proposal.Proposal, error) {
	existing, err := s.store.GetProposal(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if status == "" {
		status = existing.Status
	} else if !proposal.ValidStatuses[status] {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, status)
	}

	p, err := s.prepare(ownerID, doc, status)
	if err != nil {
		return nil, err
	}
	p.ID = id

	ctx, span := pfotel.StartSaveSpan(ctx, ownerID, id)
	defer span.End()

	updated, err := s.store.UpdateProposal(ctx, p)
	s.countSave(ctx, err)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	s.invalidate(ctx, id)
	return updated, nil
}

// Delete removes a proposal and its cached render.
func (s *ProposalService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.store.DeleteProposal(ctx, ownerID, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// Duplicate copies a proposal into a fresh draft. The copy gets a new id,
// the client name picks up the copy marker, and the status resets to draft
// regardless of the source. Section data is carried over untouched.
func (s *ProposalService) Duplicate(ctx context.Context, ownerID, id string) (*proposal.Proposal, error) {
	src, err := s.store.GetProposal(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	doc := src.Document
	doc.Basic.ClientName += proposal.CopyMarker

	return s.Create(ctx, ownerID, doc)
}

// prepare normalizes and validates a document and assembles the row with
// its derived summary columns. It works on a deep copy: callers such as
// the draft service hand over documents whose slices they still hold, and
// a save that fails must leave those untouched.
func (s *ProposalService) prepare(ownerID string, doc proposal.Document, status proposal.Status) (*proposal.Proposal, error) {
	doc = doc.Clone()
	doc.Normalize()
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	p := &proposal.Proposal{
		OwnerID:      ownerID,
		ClientName:   doc.Basic.ClientName,
		ProjectTitle: doc.Basic.ProjectTitle,
		Status:       status,
		Document:     doc,
	}
	if tier := proposal.SelectTier(doc.Financial.Tiers); tier != nil {
		p.SelectedTier = tier.Name
		v := tier.Value
		p.TotalValue = &v
	}
	return p, nil
}

func (s *ProposalService) countSave(ctx context.Context, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.Saves.Add(ctx, 1)
	if err != nil {
		s.metrics.SaveFailures.Add(ctx, 1)
	}
}

func (s *ProposalService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, renderCacheKey(id)); err != nil {
		slog.Warn("failed to invalidate render cache", "proposal", id, "error", err)
	}
}
