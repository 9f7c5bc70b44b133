package importapp

import (
	"context"
	"os"
	"testing"
	"time"

	partnerapp "github.com/erp/docimport/internal/application/partner"
	"github.com/erp/docimport/internal/domain/trade"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockImporter is a mock implementation of Importer
type MockImporter struct {
	mock.Mock
	name string
}

func newMockImporter(name string) *MockImporter {
	return &MockImporter{name: name}
}

func (m *MockImporter) Name() string {
	return m.name
}

func (m *MockImporter) DetectDocType(ctx context.Context, raw []byte) (trade.DocType, error) {
	args := m.Called(ctx, raw)
	return args.Get(0).(trade.DocType), args.Error(1)
}

func (m *MockImporter) Parse(ctx context.Context, raw []byte) (*trade.CanonicalOrder, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.CanonicalOrder), args.Error(1)
}

// MockIdempotencyStore is a mock implementation of shared.IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockIdempotencyStore) Close() error {
	return m.Called().Error(0)
}

// MockCustomerMatcher is a mock implementation of CustomerMatcher
type MockCustomerMatcher struct {
	mock.Mock
}

func (m *MockCustomerMatcher) Match(ctx context.Context, party trade.Party) (partnerapp.MatchOutcome, error) {
	args := m.Called(ctx, party)
	return args.Get(0).(partnerapp.MatchOutcome), args.Error(1)
}

// MockArchive is a mock implementation of DocumentArchive
type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Store(ctx context.Context, key string, data []byte, contentType string) error {
	return m.Called(ctx, key, data, contentType).Error(0)
}

func (m *MockArchive) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func readOrderFixture(t *testing.T) []byte {
	t.Helper()
	raw, err := os.ReadFile("../../infrastructure/ubl/testdata/order.xml")
	require.NoError(t, err)
	return raw
}
