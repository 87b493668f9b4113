package partnership

import (
	"time"

	"github.com/faktulove/backend/internal/domain/partnership"
	"github.com/google/uuid"
)

// CreatePartnershipRequest represents a request to link two companies
type CreatePartnershipRequest struct {
	PartnerNIP string `json:"partner_nip" binding:"required,nip"`
	Notes      string `json:"notes"`
}

// PartnershipResponse represents a partnership in API responses
type PartnershipResponse struct {
	ID          uuid.UUID `json:"id"`
	Company1ID  uuid.UUID `json:"company1_id"`
	Company2ID  uuid.UUID `json:"company2_id"`
	Active      bool      `json:"active"`
	AutoPosting bool      `json:"auto_posting"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToPartnershipResponse converts a domain partnership to its response DTO
func ToPartnershipResponse(p *partnership.Partnership) PartnershipResponse {
	return PartnershipResponse{
		ID:          p.ID,
		Company1ID:  p.Company1ID,
		Company2ID:  p.Company2ID,
		Active:      p.Active,
		AutoPosting: p.AutoPosting,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
