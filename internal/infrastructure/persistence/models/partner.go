package models

import (
	"github.com/erp/docimport/internal/domain/partner"
	"github.com/google/uuid"
)

// PartnerModel is the persistence model for companies and their contacts
type PartnerModel struct {
	BaseModel
	Name      string     `gorm:"type:varchar(200);not null;index"`
	IsCompany bool       `gorm:"not null;default:false"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index"`
	VAT       string     `gorm:"column:vat;type:varchar(50);index"`
	Email     string     `gorm:"type:varchar(200);index"`
	Phone     string     `gorm:"type:varchar(50)"`
	Ref       string     `gorm:"type:varchar(100)"`
	Active    bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PartnerModel) TableName() string {
	return "partners"
}

// ToDomain converts the persistence model to a domain Partner
func (m *PartnerModel) ToDomain() *partner.Partner {
	return &partner.Partner{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		IsCompany:  m.IsCompany,
		ParentID:   m.ParentID,
		VAT:        m.VAT,
		Email:      m.Email,
		Phone:      m.Phone,
		Ref:        m.Ref,
		Active:     m.Active,
	}
}

// FromDomain populates the model from a domain Partner
func (m *PartnerModel) FromDomain(p *partner.Partner) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.IsCompany = p.IsCompany
	m.ParentID = p.ParentID
	m.VAT = p.VAT
	m.Email = p.Email
	m.Phone = p.Phone
	m.Ref = p.Ref
	m.Active = p.Active
}

// PartnerModelFromDomain creates a model from a domain Partner
func PartnerModelFromDomain(p *partner.Partner) *PartnerModel {
	m := &PartnerModel{}
	m.FromDomain(p)
	return m
}

// IdentifierCategoryModel is the persistence model for identifier schemes
type IdentifierCategoryModel struct {
	BaseModel
	Code string `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (IdentifierCategoryModel) TableName() string {
	return "partner_id_categories"
}

// ToDomain converts the persistence model to a domain IdentifierCategory
func (m *IdentifierCategoryModel) ToDomain() *partner.IdentifierCategory {
	return &partner.IdentifierCategory{
		BaseEntity: m.BaseModel.ToDomain(),
		Code:       m.Code,
		Name:       m.Name,
	}
}

// IdentifierCategoryModelFromDomain creates a model from a domain IdentifierCategory
func IdentifierCategoryModelFromDomain(c *partner.IdentifierCategory) *IdentifierCategoryModel {
	m := &IdentifierCategoryModel{Code: c.Code, Name: c.Name}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// IdentifierNumberModel is the persistence model for identifier values
type IdentifierNumberModel struct {
	BaseModel
	CategoryID uuid.UUID                `gorm:"type:uuid;not null;index:idx_partner_id_numbers_lookup,priority:1"`
	PartnerID  uuid.UUID                `gorm:"type:uuid;not null;index"`
	Value      string                   `gorm:"type:varchar(200);not null;index:idx_partner_id_numbers_lookup,priority:2"`
	Status     partner.IdentifierStatus `gorm:"type:varchar(20);not null;default:'open'"`
}

// TableName returns the table name for GORM
func (IdentifierNumberModel) TableName() string {
	return "partner_id_numbers"
}

// ToDomain converts the persistence model to a domain IdentifierNumber
func (m *IdentifierNumberModel) ToDomain() *partner.IdentifierNumber {
	return &partner.IdentifierNumber{
		BaseEntity: m.BaseModel.ToDomain(),
		CategoryID: m.CategoryID,
		PartnerID:  m.PartnerID,
		Value:      m.Value,
		Status:     m.Status,
	}
}

// IdentifierNumberModelFromDomain creates a model from a domain IdentifierNumber
func IdentifierNumberModelFromDomain(n *partner.IdentifierNumber) *IdentifierNumberModel {
	m := &IdentifierNumberModel{
		CategoryID: n.CategoryID,
		PartnerID:  n.PartnerID,
		Value:      n.Value,
		Status:     n.Status,
	}
	m.FromDomainBaseEntity(n.BaseEntity)
	return m
}

// DirectoryModels lists the models backing the partner directory
func DirectoryModels() []any {
	return []any{&PartnerModel{}, &IdentifierCategoryModel{}, &IdentifierNumberModel{}}
}
