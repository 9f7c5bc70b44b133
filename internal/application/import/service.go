package importapp

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	partnerapp "github.com/erp/docimport/internal/application/partner"
	"github.com/erp/docimport/internal/domain/shared"
	"github.com/erp/docimport/internal/domain/trade"
	"github.com/erp/docimport/internal/infrastructure/logger"
	"github.com/erp/docimport/internal/infrastructure/ubl"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/erp/docimport/internal/application/import"

// ArchiveContentType is the content type raw documents are archived with
const ArchiveContentType = "application/xml"

// DocumentArchive keeps the raw bytes of imported documents
type DocumentArchive interface {
	Store(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
}

// CustomerMatcher resolves the customer party of an order
type CustomerMatcher interface {
	Match(ctx context.Context, party trade.Party) (partnerapp.MatchOutcome, error)
}

// Metrics records import outcomes
type Metrics interface {
	RecordImport(ctx context.Context, docType, outcome string, lines int)
	RecordMatch(ctx context.Context, strategy, outcome string)
}

type nopMetrics struct{}

func (nopMetrics) RecordImport(context.Context, string, string, int) {}
func (nopMetrics) RecordMatch(context.Context, string, string)      {}

// Import outcomes reported to Metrics
const (
	OutcomeImported    = "imported"
	OutcomeDuplicate   = "duplicate"
	OutcomeUnsupported = "unsupported"
	OutcomeRejected    = "rejected"
	OutcomeUnmatched   = "unmatched"
	OutcomeFailed      = "failed"
)

// ServiceConfig holds import limits
type ServiceConfig struct {
	// MaxDocumentSize is the largest accepted document in bytes; 0 disables the check
	MaxDocumentSize int64
	Idempotency     shared.IdempotencyConfig
}

// ImportRequest is one document submitted for import
type ImportRequest struct {
	Filename      string
	Content       []byte
	MatchCustomer bool
}

// ImportResult is the canonical order plus what the import resolved around it
type ImportResult struct {
	Order         *trade.CanonicalOrder `json:"order" yaml:"order"`
	DocType       trade.DocType         `json:"doc_type" yaml:"doc_type"`
	Importer      string                `json:"importer" yaml:"importer"`
	CustomerID    *uuid.UUID            `json:"customer_id,omitempty" yaml:"customer_id,omitempty"`
	ContactID     *uuid.UUID            `json:"contact_id,omitempty" yaml:"contact_id,omitempty"`
	MatchStrategy string                `json:"match_strategy,omitempty" yaml:"match_strategy,omitempty"`
	ArchiveKey    string                `json:"archive_key,omitempty" yaml:"archive_key,omitempty"`
}

// ImportService imports order documents: parse, deduplicate, archive and
// match the customer
type ImportService struct {
	chain   *Chain
	matcher CustomerMatcher
	store   shared.IdempotencyStore
	archive DocumentArchive
	metrics Metrics
	cfg     ServiceConfig
	logger  *zap.Logger
	tracer  trace.Tracer
	now     func() time.Time
	newID   func() uuid.UUID
}

// ServiceOption configures an ImportService
type ServiceOption func(*ImportService)

// WithMatcher enables customer matching
func WithMatcher(m CustomerMatcher) ServiceOption {
	return func(s *ImportService) {
		s.matcher = m
	}
}

// WithIdempotencyStore enables duplicate detection backed by store
func WithIdempotencyStore(store shared.IdempotencyStore) ServiceOption {
	return func(s *ImportService) {
		s.store = store
	}
}

// WithArchive enables archiving of raw documents
func WithArchive(a DocumentArchive) ServiceOption {
	return func(s *ImportService) {
		s.archive = a
	}
}

// WithMetrics sets the outcome recorder
func WithMetrics(m Metrics) ServiceOption {
	return func(s *ImportService) {
		s.metrics = m
	}
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *ImportService) {
		s.logger = l
	}
}

// WithTracer sets the tracer used for import spans
func WithTracer(t trace.Tracer) ServiceOption {
	return func(s *ImportService) {
		s.tracer = t
	}
}

// NewImportService creates an ImportService over the importer chain
func NewImportService(chain *Chain, cfg ServiceConfig, opts ...ServiceOption) *ImportService {
	s := &ImportService{
		chain:   chain,
		cfg:     cfg,
		metrics: nopMetrics{},
		logger:  zap.NewNop(),
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
		newID:   uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg.Idempotency.TTL <= 0 {
		s.cfg.Idempotency.TTL = shared.DefaultIdempotencyConfig().TTL
	}
	return s
}

// Detect reports the document type without importing
func (s *ImportService) Detect(ctx context.Context, raw []byte) (trade.DocType, error) {
	if err := s.checkSize(raw); err != nil {
		return "", err
	}
	return s.chain.Detect(ctx, raw)
}

// Import runs the full import of one document. A failure after the document
// was marked as seen releases the mark and removes the archived copy, so the
// same document can be submitted again.
func (s *ImportService) Import(ctx context.Context, req ImportRequest) (result *ImportResult, err error) {
	ctx, span := s.tracer.Start(ctx, "import.Import", trace.WithAttributes(
		attribute.String("import.filename", req.Filename),
		attribute.Int("import.size", len(req.Content)),
	))
	var order *trade.CanonicalOrder
	defer func() {
		var docType string
		var lines int
		if order != nil {
			docType, lines = order.DocType.String(), len(order.Lines)
		}
		s.metrics.RecordImport(ctx, docType, importOutcome(err), lines)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := s.checkSize(req.Content); err != nil {
		return nil, err
	}

	order, importer, err := s.chain.Parse(ctx, req.Content)
	if err != nil {
		s.requestLogger(ctx).Info("Document rejected",
			zap.String("filename", req.Filename),
			zap.String("importer", importer),
			zap.Error(err),
		)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("import.doc_type", order.DocType.String()),
		attribute.String("import.order_ref", order.OrderReference),
	)

	ctx, log := logger.WithDocument(logger.WithContext(ctx, s.requestLogger(ctx)),
		order.DocType.String(), order.OrderReference)

	var cleanups []func()
	defer func() {
		if err == nil {
			return
		}
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}()

	if key, marked, err := s.markSeen(ctx, log, order, req.Content); err != nil {
		return nil, err
	} else if marked {
		cleanups = append(cleanups, func() {
			if rerr := s.store.Release(context.WithoutCancel(ctx), key); rerr != nil {
				log.Warn("Failed to release idempotency key", zap.String("key", key), zap.Error(rerr))
			}
		})
	}

	result = &ImportResult{Order: order, DocType: order.DocType, Importer: importer}

	if s.archive != nil {
		key := ArchiveKey(order.DocType, s.now(), s.newID())
		if err := s.archive.Store(ctx, key, req.Content, ArchiveContentType); err != nil {
			return nil, fmt.Errorf("archive document: %w", err)
		}
		result.ArchiveKey = key
		cleanups = append(cleanups, func() {
			if derr := s.archive.Delete(context.WithoutCancel(ctx), key); derr != nil {
				log.Warn("Failed to remove archived document", zap.String("key", key), zap.Error(derr))
			}
		})
	}

	if req.MatchCustomer {
		if s.matcher == nil {
			return nil, ErrMatchingDisabled
		}
		outcome, err := s.matcher.Match(ctx, order.Partner)
		s.metrics.RecordMatch(ctx, outcome.Strategy, matchOutcome(outcome, err))
		if err != nil {
			return nil, err
		}
		customerID := outcome.CompanyID()
		result.CustomerID = &customerID
		if outcome.Kind == partnerapp.OutcomeMatchedContact {
			contactID := outcome.PartnerID()
			result.ContactID = &contactID
		}
		result.MatchStrategy = outcome.Strategy
	}

	log.Info("Imported document",
		zap.String("filename", req.Filename),
		zap.String("importer", importer),
		zap.Int("lines", len(order.Lines)),
		zap.String("archive_key", result.ArchiveKey),
		zap.Bool("customer_matched", result.CustomerID != nil),
	)
	return result, nil
}

// markSeen records the document fingerprint. A store failure is logged and
// the import goes on without duplicate protection.
func (s *ImportService) markSeen(ctx context.Context, log *zap.Logger, order *trade.CanonicalOrder, content []byte) (string, bool, error) {
	if s.store == nil || !s.cfg.Idempotency.Enabled {
		return "", false, nil
	}
	key := IdempotencyKey(order.DocType, order.OrderReference, content)
	fresh, err := s.store.MarkProcessed(ctx, key, s.cfg.Idempotency.TTL)
	if err != nil {
		log.Warn("Idempotency store unavailable, skipping duplicate check", zap.Error(err))
		return key, false, nil
	}
	if !fresh {
		log.Info("Duplicate document rejected", zap.String("key", key))
		return key, false, ErrDuplicateDocument
	}
	return key, true, nil
}

func importOutcome(err error) string {
	var unmatched *partnerapp.UnmatchedPartnerError
	var domainErr *shared.DomainError
	switch {
	case err == nil:
		return OutcomeImported
	case errors.Is(err, ErrDuplicateDocument):
		return OutcomeDuplicate
	case errors.Is(err, ErrUnsupportedFormat):
		return OutcomeUnsupported
	case errors.As(err, &unmatched), errors.Is(err, partnerapp.ErrPartnerNotFound):
		return OutcomeUnmatched
	case errors.As(err, &domainErr), isDocumentError(err):
		return OutcomeRejected
	default:
		return OutcomeFailed
	}
}

func matchOutcome(o partnerapp.MatchOutcome, err error) string {
	switch {
	case err == nil:
		return string(o.Kind)
	case errors.Is(err, partnerapp.ErrPartnerNotFound):
		return "not_found"
	}
	var unmatched *partnerapp.UnmatchedPartnerError
	if errors.As(err, &unmatched) {
		return string(partnerapp.OutcomeUnmatched)
	}
	return "error"
}

func isDocumentError(err error) bool {
	var parseErr *ubl.ParseError
	var schemaErr *ubl.SchemaValidationError
	return errors.As(err, &parseErr) || errors.As(err, &schemaErr)
}

func (s *ImportService) checkSize(raw []byte) error {
	if len(raw) == 0 {
		return ErrEmptyDocument
	}
	if s.cfg.MaxDocumentSize > 0 && int64(len(raw)) > s.cfg.MaxDocumentSize {
		return ErrDocumentTooLarge
	}
	return nil
}

func (s *ImportService) requestLogger(ctx context.Context) *zap.Logger {
	l := s.logger
	if id := logger.GetRequestID(ctx); id != "" {
		l = l.With(zap.String("request_id", id))
	}
	return logger.WithTraceContext(ctx, l)
}

// IdempotencyKey fingerprints a document as
// ubl-import:{doctype}:{order_ref}:{first 16 hex chars of sha256(content)}
func IdempotencyKey(dt trade.DocType, orderRef string, content []byte) string {
	sum := sha256.Sum256(content)
	return fmt.Sprintf("ubl-import:%s:%s:%s", dt, orderRef, hex.EncodeToString(sum[:])[:16])
}

// ArchiveKey places a document under {doctype}/{yyyy}/{mm}/{id}.xml
func ArchiveKey(dt trade.DocType, at time.Time, id uuid.UUID) string {
	at = at.UTC()
	return fmt.Sprintf("%s/%04d/%02d/%s.xml", dt, at.Year(), int(at.Month()), id)
}
