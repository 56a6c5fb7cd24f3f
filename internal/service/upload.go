package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	pfotel "github.com/dlriva/proposalforge/internal/adapter/otel"
	"github.com/dlriva/proposalforge/internal/domain"
	"github.com/dlriva/proposalforge/internal/port/blobstore"
	"github.com/dlriva/proposalforge/internal/resilience"
)

// MaxLogoBytes is the upload size cap for service logos.
const MaxLogoBytes = 5 << 20

// acceptedImageTypes lists the content types the upload endpoint accepts.
var acceptedImageTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// UploadResult is the outcome of a logo upload. Exactly one of the two
// shapes applies: a durable URL from the blob store, or the image inlined
// as a data URI when storage was unavailable.
type UploadResult struct {
	URL     string `json:"url"`
	Inlined bool   `json:"inlined"`
	Warning string `json:"warning,omitempty"`
}

// UploadService validates logo uploads and hands them to the blob store,
// degrading to an inline data URI when the store fails. A circuit breaker
// skips the store entirely while it is known to be down, so uploads stay
// fast instead of waiting out every failure.
type UploadService struct {
	blobs   blobstore.Store
	breaker *resilience.Breaker
	metrics *pfotel.Metrics
}

// NewUploadService creates a new upload service.
func NewUploadService(blobs blobstore.Store) *UploadService {
	return &UploadService{
		blobs:   blobs,
		breaker: resilience.NewBreaker(3, 30*time.Second),
	}
}

// SetMetrics attaches metric instruments. Left nil, nothing is recorded.
func (s *UploadService) SetMetrics(m *pfotel.Metrics) {
	s.metrics = m
}

// UploadLogo stores a logo image. Oversized or non-image payloads are
// rejected outright; a storage failure is not an error for the caller,
// the image is inlined instead and the result carries a warning.
func (s *UploadService) UploadLogo(ctx context.Context, filename, contentType string, data []byte) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", domain.ErrValidation)
	}
	if len(data) > MaxLogoBytes {
		return nil, fmt.Errorf("%w: logo exceeds %d bytes", domain.ErrValidation, MaxLogoBytes)
	}
	if !acceptedImageTypes[contentType] {
		return nil, fmt.Errorf("%w: unsupported content type %q", domain.ErrValidation, contentType)
	}

	var url string
	err := s.breaker.Do(func() error {
		var putErr error
		url, putErr = s.blobs.Put(ctx, filename, contentType, data)
		return putErr
	})
	if err != nil {
		slog.Warn("blob store unavailable, inlining logo", "file", filename, "error", err)
		if s.metrics != nil {
			s.metrics.LogosInlined.Add(ctx, 1)
		}
		return &UploadResult{
			URL:     "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
			Inlined: true,
			Warning: "storage unavailable, image embedded inline",
		}, nil
	}

	return &UploadResult{URL: url}, nil
}
