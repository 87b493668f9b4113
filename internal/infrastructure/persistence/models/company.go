package models

import (
	"github.com/faktulove/backend/internal/domain/company"
	"github.com/faktulove/backend/internal/domain/contractor"
	"github.com/faktulove/backend/internal/domain/partnership"
	"github.com/google/uuid"
)

// CompanyModel is the persistence model for the tenant company profile.
type CompanyModel struct {
	TenantAggregateModel
	Name        string `gorm:"type:varchar(200);not null"`
	NIP         string `gorm:"type:varchar(10);not null;uniqueIndex:idx_company_nip"`
	REGON       string `gorm:"type:varchar(14)"`
	Street      string `gorm:"type:varchar(200)"`
	City        string `gorm:"type:varchar(100)"`
	PostalCode  string `gorm:"type:varchar(10)"`
	Country     string `gorm:"type:varchar(100);default:'Polska'"`
	Email       string `gorm:"type:varchar(200)"`
	Phone       string `gorm:"type:varchar(50)"`
	BankName    string `gorm:"type:varchar(100)"`
	BankAccount string `gorm:"type:varchar(26)"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company.
func (m *CompanyModel) ToDomain() *company.Company {
	c := &company.Company{
		Name:        m.Name,
		NIP:         m.NIP,
		REGON:       m.REGON,
		Street:      m.Street,
		City:        m.City,
		PostalCode:  m.PostalCode,
		Country:     m.Country,
		Email:       m.Email,
		Phone:       m.Phone,
		BankName:    m.BankName,
		BankAccount: m.BankAccount,
	}
	m.PopulateTenantAggregateRoot(&c.TenantAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Company.
func (m *CompanyModel) FromDomain(c *company.Company) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Name = c.Name
	m.NIP = c.NIP
	m.REGON = c.REGON
	m.Street = c.Street
	m.City = c.City
	m.PostalCode = c.PostalCode
	m.Country = c.Country
	m.Email = c.Email
	m.Phone = c.Phone
	m.BankName = c.BankName
	m.BankAccount = c.BankAccount
}

// ContractorModel is the persistence model for address book contractors.
// NIP uniqueness is scoped to the tenant.
type ContractorModel struct {
	TenantAggregateModel
	Name       string          `gorm:"type:varchar(200);not null"`
	Kind       contractor.Kind `gorm:"type:varchar(20);not null;default:'company'"`
	NIP        string          `gorm:"type:varchar(10);index:idx_contractor_tenant_nip,unique,where:nip <> ''"`
	REGON      string          `gorm:"type:varchar(14)"`
	Street     string          `gorm:"type:varchar(200)"`
	City       string          `gorm:"type:varchar(100)"`
	PostalCode string          `gorm:"type:varchar(10)"`
	Country    string          `gorm:"type:varchar(100);default:'Polska'"`
	Email      string          `gorm:"type:varchar(200)"`
	Phone      string          `gorm:"type:varchar(50)"`
	Notes      string          `gorm:"type:text"`
	CompanyID  *uuid.UUID      `gorm:"type:uuid;index"`
	Anonymized bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ContractorModel) TableName() string {
	return "contractors"
}

// ToDomain converts the persistence model to a domain Contractor.
func (m *ContractorModel) ToDomain() *contractor.Contractor {
	c := &contractor.Contractor{
		Name:       m.Name,
		Kind:       m.Kind,
		NIP:        m.NIP,
		REGON:      m.REGON,
		Street:     m.Street,
		City:       m.City,
		PostalCode: m.PostalCode,
		Country:    m.Country,
		Email:      m.Email,
		Phone:      m.Phone,
		Notes:      m.Notes,
		CompanyID:  m.CompanyID,
		Anonymized: m.Anonymized,
	}
	m.PopulateTenantAggregateRoot(&c.TenantAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Contractor.
func (m *ContractorModel) FromDomain(c *contractor.Contractor) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Name = c.Name
	m.Kind = c.Kind
	m.NIP = c.NIP
	m.REGON = c.REGON
	m.Street = c.Street
	m.City = c.City
	m.PostalCode = c.PostalCode
	m.Country = c.Country
	m.Email = c.Email
	m.Phone = c.Phone
	m.Notes = c.Notes
	m.CompanyID = c.CompanyID
	m.Anonymized = c.Anonymized
}

// PartnershipModel is the persistence model for company partnerships.
// The composite unique index over the normalized pair is what makes the
// "one partnership per pair" invariant hold under concurrent creation.
type PartnershipModel struct {
	AggregateModel
	Company1ID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_partnership_pair,priority:1"`
	Company2ID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_partnership_pair,priority:2;index"`
	Active      bool      `gorm:"not null;default:true"`
	AutoPosting bool      `gorm:"not null;default:false"`
	Notes       string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PartnershipModel) TableName() string {
	return "partnerships"
}

// ToDomain converts the persistence model to a domain Partnership.
func (m *PartnershipModel) ToDomain() *partnership.Partnership {
	p := &partnership.Partnership{
		Company1ID:  m.Company1ID,
		Company2ID:  m.Company2ID,
		Active:      m.Active,
		AutoPosting: m.AutoPosting,
		Notes:       m.Notes,
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Partnership.
func (m *PartnershipModel) FromDomain(p *partnership.Partnership) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	// stored order stays canonical even if a caller bypassed the constructor
	m.Company1ID, m.Company2ID = partnership.NormalizePair(p.Company1ID, p.Company2ID)
	m.Active = p.Active
	m.AutoPosting = p.AutoPosting
	m.Notes = p.Notes
}
