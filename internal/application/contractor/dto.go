package contractor

import (
	"time"

	"github.com/faktulove/backend/internal/domain/contractor"
	"github.com/google/uuid"
)

// CreateContractorRequest represents a request to add a counterparty
type CreateContractorRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=200"`
	Kind       string `json:"kind" binding:"required,oneof=company person"`
	NIP        string `json:"nip" binding:"omitempty,max=20,nip"`
	REGON      string `json:"regon" binding:"max=14"`
	Street     string `json:"street" binding:"max=200"`
	City       string `json:"city" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"max=10"`
	Email      string `json:"email" binding:"omitempty,email,max=200"`
	Phone      string `json:"phone" binding:"max=50"`
	Notes      string `json:"notes"`
}

// UpdateContractorRequest represents a request to update a counterparty
type UpdateContractorRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=200"`
	Street     string `json:"street" binding:"max=200"`
	City       string `json:"city" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"max=10"`
	Email      string `json:"email" binding:"omitempty,email,max=200"`
	Phone      string `json:"phone" binding:"max=50"`
	Notes      string `json:"notes"`
}

// ContractorResponse represents a contractor in API responses
type ContractorResponse struct {
	ID         uuid.UUID  `json:"id"`
	TenantID   uuid.UUID  `json:"tenant_id"`
	Name       string     `json:"name"`
	Kind       string     `json:"kind"`
	NIP        string     `json:"nip"`
	REGON      string     `json:"regon"`
	Street     string     `json:"street"`
	City       string     `json:"city"`
	PostalCode string     `json:"postal_code"`
	Country    string     `json:"country"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Notes      string     `json:"notes"`
	CompanyID  *uuid.UUID `json:"company_id,omitempty"`
	Anonymized bool       `json:"anonymized"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ContractorListFilter holds list query parameters
type ContractorListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	Kind     string `form:"kind"`
}

// ToContractorResponse converts a domain contractor to its response DTO
func ToContractorResponse(c *contractor.Contractor) ContractorResponse {
	return ContractorResponse{
		ID:         c.ID,
		TenantID:   c.TenantID,
		Name:       c.Name,
		Kind:       string(c.Kind),
		NIP:        c.NIP,
		REGON:      c.REGON,
		Street:     c.Street,
		City:       c.City,
		PostalCode: c.PostalCode,
		Country:    c.Country,
		Email:      c.Email,
		Phone:      c.Phone,
		Notes:      c.Notes,
		CompanyID:  c.CompanyID,
		Anonymized: c.Anonymized,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
