package partner

import (
	"context"
	"errors"

	"github.com/erp/docimport/internal/domain/partner"
	"github.com/erp/docimport/internal/domain/trade"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/erp/docimport/internal/application/partner"

// Matcher tries its strategies in order until one applies
type Matcher struct {
	strategies []MatchStrategy
	logger     *zap.Logger
	tracer     trace.Tracer
}

// MatcherOption is a functional option for configuring Matcher
type MatcherOption func(*Matcher)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) MatcherOption {
	return func(m *Matcher) {
		m.logger = logger
	}
}

// WithTracer sets the tracer
func WithTracer(t trace.Tracer) MatcherOption {
	return func(m *Matcher) {
		m.tracer = t
	}
}

// NewMatcher creates a Matcher over the given strategies
func NewMatcher(strategies []MatchStrategy, opts ...MatcherOption) *Matcher {
	m := &Matcher{
		strategies: strategies,
		logger:     zap.NewNop(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewDirectoryMatcher creates the standard chain: identifier numbers first,
// then generic matching, both narrowing to contacts through the directory
func NewDirectoryMatcher(identifiers partner.IdentifierDirectory, partners partner.PartnerDirectory, opts ...MatcherOption) *Matcher {
	m := NewMatcher(nil, opts...)
	contacts := NewDirectoryContactMatcher(partners)
	m.strategies = []MatchStrategy{
		NewIdentifierStrategy(identifiers, partners, contacts, m.logger),
		NewGenericStrategy(partners, contacts),
	}
	return m
}

// Strategies returns the names of the chained strategies in order
func (m *Matcher) Strategies() []string {
	names := make([]string, len(m.strategies))
	for i, s := range m.strategies {
		names[i] = s.Name()
	}
	return names
}

// Match resolves party to a partner or contact.
//
// Returns *UnmatchedPartnerError when a strategy tried identifiers and all of
// them missed; later strategies are not consulted in that case. Returns
// ErrPartnerNotFound when no strategy applies or matches.
func (m *Matcher) Match(ctx context.Context, party trade.Party) (MatchOutcome, error) {
	ctx, span := m.tracer.Start(ctx, "partner.Match")
	defer span.End()

	for _, s := range m.strategies {
		outcome, err := s.Match(ctx, party)
		if errors.Is(err, ErrNotApplicable) {
			m.logger.Debug("Partner strategy not applicable", zap.String("strategy", s.Name()))
			continue
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return MatchOutcome{}, err
		}

		outcome.Strategy = s.Name()
		span.SetAttributes(
			attribute.String("partner.strategy", s.Name()),
			attribute.String("partner.outcome", string(outcome.Kind)),
		)
		if !outcome.IsMatch() {
			err := &UnmatchedPartnerError{Party: party, Unmatched: outcome.Unmatched}
			m.logger.Warn("No partner matches the document identifiers",
				zap.String("party", party.Name),
				zap.Int("unmatched", len(outcome.Unmatched)),
			)
			span.SetStatus(codes.Error, "unmatched identifiers")
			return outcome, err
		}

		m.logger.Info("Matched document party",
			zap.String("strategy", s.Name()),
			zap.String("outcome", string(outcome.Kind)),
			zap.String("partner_id", outcome.PartnerID().String()),
		)
		return outcome, nil
	}

	span.SetStatus(codes.Error, ErrPartnerNotFound.Message)
	return MatchOutcome{}, ErrPartnerNotFound
}
