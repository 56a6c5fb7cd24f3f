package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/dlriva/proposalforge/internal/adapter/export"
	pfotel "github.com/dlriva/proposalforge/internal/adapter/otel"
	"github.com/dlriva/proposalforge/internal/config"
	"github.com/dlriva/proposalforge/internal/domain/render"
	"github.com/dlriva/proposalforge/internal/port/cache"
)

// RenderService produces the visual tree for a proposal and the exported
// print file. Rendered trees are cached; export always re-renders so the
// file reflects the render of record at download time.
type RenderService struct {
	proposals *ProposalService
	cache     cache.Cache
	cacheTTL  time.Duration
	branding  config.Branding
	metrics   *pfotel.Metrics
	now       func() time.Time
}

// NewRenderService creates a new render service.
func NewRenderService(proposals *ProposalService, c cache.Cache, cfg config.Cache, branding config.Branding) *RenderService {
	return &RenderService{
		proposals: proposals,
		cache:     c,
		cacheTTL:  cfg.TTL,
		branding:  branding,
		now:       time.Now,
	}
}

// SetMetrics attaches metric instruments. Left nil, nothing is recorded.
func (s *RenderService) SetMetrics(m *pfotel.Metrics) {
	s.metrics = m
}

// Preview returns the rendered visual tree for a proposal as JSON.
func (s *RenderService) Preview(ctx context.Context, ownerID, id string) ([]byte, error) {
	key := renderCacheKey(id)
	if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		if s.metrics != nil {
			s.metrics.RenderCacheHits.Add(ctx, 1)
		}
		return data, nil
	}

	ctx, span := pfotel.StartRenderSpan(ctx, id)
	defer span.End()
	start := time.Now()

	doc, err := s.renderProposal(ctx, ownerID, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.Renders.Add(ctx, 1)
		s.metrics.RenderDuration.Record(ctx, time.Since(start).Seconds())
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal rendered document: %w", err)
	}

	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		slog.Warn("failed to cache rendered document", "proposal", id, "error", err)
	}
	return data, nil
}

// Export renders a proposal and packages it as a downloadable file.
// Any failure aborts the export; no partial file is produced.
func (s *RenderService) Export(ctx context.Context, ownerID, id string) (*export.File, error) {
	ctx, span := pfotel.StartExportSpan(ctx, id)
	defer span.End()

	doc, err := s.renderProposal(ctx, ownerID, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	file, err := export.HTML(*doc, s.now())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("export proposal %s: %w", id, err)
	}
	if s.metrics != nil {
		s.metrics.Exports.Add(ctx, 1)
	}
	return file, nil
}

func (s *RenderService) renderProposal(ctx context.Context, ownerID, id string) (*render.Document, error) {
	p, err := s.proposals.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	doc := render.Render(p.Document)
	if doc.Consultancy == "" {
		doc.Consultancy = s.branding.Consultancy
	}
	if doc.Contact == "" {
		doc.Contact = s.branding.Contact
	}
	return &doc, nil
}

func renderCacheKey(id string) string {
	return "render:" + id
}
