package company

import (
	"time"

	"github.com/faktulove/backend/internal/domain/company"
	"github.com/google/uuid"
)

// CreateCompanyRequest represents a request to create a tenant company profile
type CreateCompanyRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
	NIP  string `json:"nip" binding:"required,nip"`
}

// UpdateCompanyRequest represents a request to update company details
type UpdateCompanyRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=200"`
	REGON      string `json:"regon" binding:"max=14"`
	Street     string `json:"street" binding:"max=200"`
	City       string `json:"city" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"max=10"`
	Email      string `json:"email" binding:"omitempty,email,max=200"`
	Phone      string `json:"phone" binding:"max=50"`
}

// SetBankAccountRequest represents a request to set the bank details
type SetBankAccountRequest struct {
	BankName    string `json:"bank_name" binding:"max=200"`
	BankAccount string `json:"bank_account" binding:"max=35"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Name        string    `json:"name"`
	NIP         string    `json:"nip"`
	REGON       string    `json:"regon"`
	Street      string    `json:"street"`
	City        string    `json:"city"`
	PostalCode  string    `json:"postal_code"`
	Country     string    `json:"country"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	BankName    string    `json:"bank_name"`
	BankAccount string    `json:"bank_account"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCompanyResponse converts a domain company to its response DTO
func ToCompanyResponse(c *company.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		TenantID:    c.TenantID,
		Name:        c.Name,
		NIP:         c.NIP,
		REGON:       c.REGON,
		Street:      c.Street,
		City:        c.City,
		PostalCode:  c.PostalCode,
		Country:     c.Country,
		Email:       c.Email,
		Phone:       c.Phone,
		BankName:    c.BankName,
		BankAccount: c.BankAccount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
