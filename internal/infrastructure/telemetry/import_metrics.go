package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when no meter is supplied
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// ImportMetrics counts imported documents and partner matches
type ImportMetrics struct {
	documents metric.Int64Counter
	lines     metric.Int64Histogram
	matches   metric.Int64Counter
}

// NewImportMetrics registers the import instruments on meter
func NewImportMetrics(meter metric.Meter) (*ImportMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	documents, err := meter.Int64Counter("docimport.documents",
		metric.WithDescription("Documents submitted for import, by type and outcome"),
		metric.WithUnit("{document}"))
	if err != nil {
		return nil, fmt.Errorf("create documents counter: %w", err)
	}
	lines, err := meter.Int64Histogram("docimport.order.lines",
		metric.WithDescription("Lines per imported order"),
		metric.WithUnit("{line}"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 25, 50, 100, 250, 1000))
	if err != nil {
		return nil, fmt.Errorf("create lines histogram: %w", err)
	}
	matches, err := meter.Int64Counter("docimport.partner.matches",
		metric.WithDescription("Customer match attempts, by strategy and outcome"),
		metric.WithUnit("{match}"))
	if err != nil {
		return nil, fmt.Errorf("create matches counter: %w", err)
	}
	return &ImportMetrics{documents: documents, lines: lines, matches: matches}, nil
}

// RecordImport counts one document. docType is empty when detection failed.
func (m *ImportMetrics) RecordImport(ctx context.Context, docType, outcome string, lines int) {
	if docType == "" {
		docType = "unknown"
	}
	attrs := metric.WithAttributes(
		attribute.String("doc_type", docType),
		attribute.String("outcome", outcome),
	)
	m.documents.Add(ctx, 1, attrs)
	if outcome == "imported" {
		m.lines.Record(ctx, int64(lines), metric.WithAttributes(attribute.String("doc_type", docType)))
	}
}

// RecordMatch counts one customer match attempt
func (m *ImportMetrics) RecordMatch(ctx context.Context, strategy, outcome string) {
	if strategy == "" {
		strategy = "none"
	}
	m.matches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("strategy", strategy),
		attribute.String("outcome", outcome),
	))
}
