package importapp

import (
	"context"
	"errors"

	"github.com/erp/docimport/internal/domain/trade"
	"github.com/erp/docimport/internal/infrastructure/ubl"
	"go.uber.org/zap"
)

// Importer reads one family of order documents. Both methods return
// ubl.ErrFormatMismatch when the document is not theirs.
type Importer interface {
	Name() string
	DetectDocType(ctx context.Context, raw []byte) (trade.DocType, error)
	Parse(ctx context.Context, raw []byte) (*trade.CanonicalOrder, error)
}

// Chain tries importers in order until one accepts the document
type Chain struct {
	importers []Importer
	logger    *zap.Logger
}

// NewChain creates a chain over importers, tried in the given order
func NewChain(logger *zap.Logger, importers ...Importer) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{importers: importers, logger: logger}
}

// Names lists the importers in the order they are tried
func (c *Chain) Names() []string {
	names := make([]string, len(c.importers))
	for i, imp := range c.importers {
		names[i] = imp.Name()
	}
	return names
}

// Detect returns the document type reported by the first importer that
// recognizes the document
func (c *Chain) Detect(ctx context.Context, raw []byte) (trade.DocType, error) {
	for _, imp := range c.importers {
		dt, err := imp.DetectDocType(ctx, raw)
		if errors.Is(err, ubl.ErrFormatMismatch) {
			continue
		}
		if err != nil {
			return "", err
		}
		return dt, nil
	}
	return "", ErrUnsupportedFormat
}

// Parse returns the order built by the first importer that accepts the
// document, along with that importer's name. Errors other than a format
// mismatch stop the chain.
func (c *Chain) Parse(ctx context.Context, raw []byte) (*trade.CanonicalOrder, string, error) {
	for _, imp := range c.importers {
		order, err := imp.Parse(ctx, raw)
		if errors.Is(err, ubl.ErrFormatMismatch) {
			c.logger.Debug("Importer declined document", zap.String("importer", imp.Name()))
			continue
		}
		if err != nil {
			return nil, imp.Name(), err
		}
		return order, imp.Name(), nil
	}
	return nil, "", ErrUnsupportedFormat
}
