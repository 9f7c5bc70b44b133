package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/erp/docimport/internal/domain/partner"
	"github.com/erp/docimport/internal/domain/shared"
	"github.com/erp/docimport/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPartnerDirectory implements the partner directory ports using GORM
type GormPartnerDirectory struct {
	db *gorm.DB
}

var (
	_ partner.IdentifierDirectory = (*GormPartnerDirectory)(nil)
	_ partner.PartnerDirectory    = (*GormPartnerDirectory)(nil)
	_ partner.DirectoryWriter     = (*GormPartnerDirectory)(nil)
)

// NewGormPartnerDirectory creates a new GormPartnerDirectory
func NewGormPartnerDirectory(db *gorm.DB) *GormPartnerDirectory {
	return &GormPartnerDirectory{db: db}
}

// AutoMigrateDirectory creates or updates the directory tables
func AutoMigrateDirectory(db *gorm.DB) error {
	return db.AutoMigrate(models.DirectoryModels()...)
}

// FindCategoriesByCode returns the categories whose code is in codes
func (r *GormPartnerDirectory) FindCategoriesByCode(ctx context.Context, codes []string) ([]partner.IdentifierCategory, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	var rows []models.IdentifierCategoryModel
	if err := r.db.WithContext(ctx).
		Where("code IN ?", codes).
		Order("code").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	categories := make([]partner.IdentifierCategory, len(rows))
	for i := range rows {
		categories[i] = *rows[i].ToDomain()
	}
	return categories, nil
}

// FindActiveIdentifier returns the oldest non-closed identifier with the
// given category and exact value
func (r *GormPartnerDirectory) FindActiveIdentifier(ctx context.Context, categoryID uuid.UUID, value string) (*partner.IdentifierNumber, error) {
	var model models.IdentifierNumberModel
	if err := r.db.WithContext(ctx).
		Where("category_id = ? AND value = ? AND status <> ?", categoryID, value, partner.IdentifierStatusClose).
		Order("created_at").
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByID finds a partner by its ID, active or not
func (r *GormPartnerDirectory) FindByID(ctx context.Context, id uuid.UUID) (*partner.Partner, error) {
	var model models.PartnerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindCompanyByVAT finds an active company by normalized VAT
func (r *GormPartnerDirectory) FindCompanyByVAT(ctx context.Context, vat string) (*partner.Partner, error) {
	vat = partner.NormalizeVAT(vat)
	if vat == "" {
		return nil, shared.ErrNotFound
	}
	var model models.PartnerModel
	if err := r.db.WithContext(ctx).
		Where("vat = ? AND is_company = ? AND active = ?", vat, true, true).
		Order("created_at").
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByEmail finds an active partner by email, case-insensitively.
// Companies win over contacts sharing the address.
func (r *GormPartnerDirectory) FindByEmail(ctx context.Context, email string) (*partner.Partner, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.ErrNotFound
	}
	var model models.PartnerModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ? AND active = ?", email, true).
		Order("is_company DESC, created_at").
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByName finds an active company by name, case-insensitively
func (r *GormPartnerDirectory) FindByName(ctx context.Context, name string) (*partner.Partner, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, shared.ErrNotFound
	}
	var model models.PartnerModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ? AND is_company = ? AND active = ?", name, true, true).
		Order("created_at").
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindContacts lists active partners matching the filter. Email and name
// compare case-insensitively.
func (r *GormPartnerDirectory) FindContacts(ctx context.Context, filter partner.ContactFilter) ([]partner.Partner, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PartnerModel{}).
		Where("active = ? AND is_company = ?", true, filter.IsCompany)
	if filter.ParentID != uuid.Nil {
		query = query.Where("parent_id = ?", filter.ParentID)
	}
	if email := strings.ToLower(strings.TrimSpace(filter.Email)); email != "" {
		query = query.Where("LOWER(email) = ?", email)
	}
	if name := strings.ToLower(strings.TrimSpace(filter.Name)); name != "" {
		query = query.Where("LOWER(name) = ?", name)
	}

	var rows []models.PartnerModel
	if err := query.Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	partners := make([]partner.Partner, len(rows))
	for i := range rows {
		partners[i] = *rows[i].ToDomain()
	}
	return partners, nil
}

// SavePartner creates or updates a partner
func (r *GormPartnerDirectory) SavePartner(ctx context.Context, p *partner.Partner) error {
	return translateError(r.db.WithContext(ctx).Save(models.PartnerModelFromDomain(p)).Error)
}

// SaveCategory creates or updates an identifier category. A second category
// with the same code returns shared.ErrAlreadyExists.
func (r *GormPartnerDirectory) SaveCategory(ctx context.Context, c *partner.IdentifierCategory) error {
	return translateError(r.db.WithContext(ctx).Save(models.IdentifierCategoryModelFromDomain(c)).Error)
}

// SaveIdentifier creates or updates an identifier number
func (r *GormPartnerDirectory) SaveIdentifier(ctx context.Context, n *partner.IdentifierNumber) error {
	return translateError(r.db.WithContext(ctx).Save(models.IdentifierNumberModelFromDomain(n)).Error)
}

func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	}
	return err
}
