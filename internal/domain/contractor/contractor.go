package contractor

import (
	"regexp"
	"strings"

	"github.com/faktulove/backend/internal/domain/compliance"
	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Kind distinguishes business counterparties from private persons
type Kind string

const (
	KindCompany Kind = "company"
	KindPerson  Kind = "person"
)

// Contractor is a counterparty in a tenant's address book: the buyer on
// sales invoices and the seller on cost invoices. When the counterparty is
// itself a tenant of the system, CompanyID links to that tenant's company
// profile; this link is what makes cross-tenant invoice mirroring possible.
//
// Invariant: (tenant, NIP) is unique within a tenant's contractor set.
type Contractor struct {
	shared.TenantAggregateRoot
	Name       string
	Kind       Kind
	NIP        string
	REGON      string
	Street     string
	City       string
	PostalCode string
	Country    string
	Email      string
	Phone      string
	Notes      string
	// CompanyID links a counterparty to its own tenant company, if any
	CompanyID *uuid.UUID
	// Anonymized marks contractors scrubbed by a GDPR erasure request
	Anonymized bool
}

// TableName returns the table name for GORM
func (Contractor) TableName() string {
	return "contractors"
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NewContractor creates a contractor in the tenant's address book
func NewContractor(tenantID uuid.UUID, name, nip string, kind Kind) (*Contractor, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateKind(kind); err != nil {
		return nil, err
	}
	normalized := compliance.NormalizeNIP(nip)
	if kind == KindCompany && !compliance.ValidateNIP(normalized) {
		return nil, shared.NewDomainError("INVALID_NIP", "NIP fails checksum validation")
	}

	c := &Contractor{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Kind:                kind,
		NIP:                 normalized,
		Country:             "Polska",
	}
	c.AddDomainEvent(NewContractorCreatedEvent(c))
	return c, nil
}

// Update updates the contractor's details
func (c *Contractor) Update(name, street, city, postalCode, email, phone, notes string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if email != "" && !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	c.Name = name
	c.Street = street
	c.City = city
	c.PostalCode = postalCode
	c.Email = email
	c.Phone = phone
	c.Notes = notes
	c.Touch()
	c.IncrementVersion()

	c.AddDomainEvent(NewContractorUpdatedEvent(c))
	return nil
}

// LinkCompany attaches the contractor to a tenant company profile
func (c *Contractor) LinkCompany(companyID uuid.UUID) {
	c.CompanyID = &companyID
	c.Touch()
	c.IncrementVersion()
}

// UnlinkCompany detaches the contractor from a tenant company profile
func (c *Contractor) UnlinkCompany() {
	c.CompanyID = nil
	c.Touch()
	c.IncrementVersion()
}

// IsLinked reports whether the counterparty is itself a tenant company
func (c *Contractor) IsLinked() bool {
	return c.CompanyID != nil
}

// Anonymize scrubs personal data in place, keeping the record for the
// integrity of historical invoices. Irreversible.
func (c *Contractor) Anonymize() {
	c.Name = "[usunięto]"
	c.Email = ""
	c.Phone = ""
	c.Street = ""
	c.City = ""
	c.PostalCode = ""
	c.Notes = ""
	c.Anonymized = true
	c.Touch()
	c.IncrementVersion()

	c.AddDomainEvent(NewContractorAnonymizedEvent(c))
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Contractor name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Contractor name cannot exceed 200 characters")
	}
	return nil
}

func validateKind(k Kind) error {
	switch k {
	case KindCompany, KindPerson:
		return nil
	default:
		return shared.NewDomainError("INVALID_KIND", "Contractor kind must be 'company' or 'person'")
	}
}
