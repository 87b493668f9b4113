package company

import (
	"strings"

	"github.com/faktulove/backend/internal/domain/compliance"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Company is the tenant's own business profile. Each tenant owns exactly one
// company; it appears as the seller on every sales invoice the tenant issues
// and is the join point for cross-tenant partnerships.
type Company struct {
	shared.TenantAggregateRoot
	Name        string
	NIP         string
	REGON       string
	Street      string
	City        string
	PostalCode  string
	Country     string
	Email       string
	Phone       string
	BankName    string
	BankAccount string
}

// TableName returns the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a company profile for a tenant
func NewCompany(tenantID uuid.UUID, name, nip string) (*Company, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	normalized := compliance.NormalizeNIP(nip)
	if !compliance.ValidateNIP(normalized) {
		return nil, shared.NewDomainError("INVALID_NIP", "NIP fails checksum validation")
	}

	c := &Company{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		NIP:                 normalized,
		Country:             "Polska",
	}
	c.AddDomainEvent(NewCompanyCreatedEvent(c))
	return c, nil
}

// UpdateDetails updates the company's basic information
func (c *Company) UpdateDetails(name, regon, street, city, postalCode, email, phone string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if regon != "" && len(regon) != 9 && len(regon) != 14 {
		return shared.NewDomainError("INVALID_REGON", "REGON must be 9 or 14 digits")
	}

	c.Name = name
	c.REGON = regon
	c.Street = street
	c.City = city
	c.PostalCode = postalCode
	c.Email = email
	c.Phone = phone
	c.Touch()
	c.IncrementVersion()

	c.AddDomainEvent(NewCompanyUpdatedEvent(c))
	return nil
}

// SetBankAccount sets the company's bank details used on invoices
func (c *Company) SetBankAccount(bankName, account string) error {
	stripped := strings.ReplaceAll(account, " ", "")
	if stripped != "" && len(stripped) != 26 {
		return shared.NewDomainError("INVALID_BANK_ACCOUNT", "Polish bank account number must have 26 digits")
	}
	c.BankName = bankName
	c.BankAccount = stripped
	c.Touch()
	c.IncrementVersion()
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot exceed 200 characters")
	}
	return nil
}
