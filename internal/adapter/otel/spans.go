package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "proposalforge"

// StartSaveSpan starts a span for persisting a proposal. proposalID is
// empty for creates; the save path fills it in once the row exists.
func StartSaveSpan(ctx context.Context, ownerID, proposalID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "proposal.save",
		trace.WithAttributes(
			attribute.String("owner.id", ownerID),
			attribute.String("proposal.id", proposalID),
		),
	)
}

// StartRenderSpan starts a span for building a proposal's visual tree.
func StartRenderSpan(ctx context.Context, proposalID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "proposal.render",
		trace.WithAttributes(attribute.String("proposal.id", proposalID)),
	)
}

// StartExportSpan starts a span for packaging the downloadable file.
func StartExportSpan(ctx context.Context, proposalID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "proposal.export",
		trace.WithAttributes(attribute.String("proposal.id", proposalID)),
	)
}
