package partner

import (
	"context"

	"github.com/erp/docimport/internal/domain/partner"
	"github.com/erp/docimport/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockIdentifierDirectory is a mock implementation of IdentifierDirectory
type MockIdentifierDirectory struct {
	mock.Mock
}

func (m *MockIdentifierDirectory) FindCategoriesByCode(ctx context.Context, codes []string) ([]partner.IdentifierCategory, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.IdentifierCategory), args.Error(1)
}

func (m *MockIdentifierDirectory) FindActiveIdentifier(ctx context.Context, categoryID uuid.UUID, value string) (*partner.IdentifierNumber, error) {
	args := m.Called(ctx, categoryID, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.IdentifierNumber), args.Error(1)
}

// MockPartnerDirectory is a mock implementation of PartnerDirectory
type MockPartnerDirectory struct {
	mock.Mock
}

func (m *MockPartnerDirectory) FindByID(ctx context.Context, id uuid.UUID) (*partner.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

func (m *MockPartnerDirectory) FindCompanyByVAT(ctx context.Context, vat string) (*partner.Partner, error) {
	args := m.Called(ctx, vat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

func (m *MockPartnerDirectory) FindByEmail(ctx context.Context, email string) (*partner.Partner, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

func (m *MockPartnerDirectory) FindByName(ctx context.Context, name string) (*partner.Partner, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

func (m *MockPartnerDirectory) FindContacts(ctx context.Context, filter partner.ContactFilter) ([]partner.Partner, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Partner), args.Error(1)
}

// MockContactMatcher is a mock implementation of ContactMatcher
type MockContactMatcher struct {
	mock.Mock
}

func (m *MockContactMatcher) FindContact(ctx context.Context, company *partner.Partner, party trade.Party) (*partner.Partner, error) {
	args := m.Called(ctx, company, party)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

func newTestCompany(name, vat string) *partner.Partner {
	p, err := partner.NewCompany(name, vat)
	if err != nil {
		panic(err)
	}
	return p
}

func newTestContact(parent *partner.Partner, name, email string) *partner.Partner {
	p, err := partner.NewContact(parent, name, email)
	if err != nil {
		panic(err)
	}
	return p
}

func newTestCategory(code string) *partner.IdentifierCategory {
	c, err := partner.NewIdentifierCategory(code, "")
	if err != nil {
		panic(err)
	}
	return c
}

func newTestIdentifier(c *partner.IdentifierCategory, owner *partner.Partner, value string) *partner.IdentifierNumber {
	n, err := partner.NewIdentifierNumber(c, owner.ID, value)
	if err != nil {
		panic(err)
	}
	return n
}
