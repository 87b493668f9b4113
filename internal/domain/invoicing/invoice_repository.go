package invoicing

import (
	"context"
	"time"

	"github.com/faktulove/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice with its lines by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByIDForTenant finds an invoice by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error)

	// FindByNumber finds an invoice by number and type within a tenant
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string, typ InvoiceType) (*Invoice, error)

	// FindBySourceInvoice finds the mirrored cost invoice created from a
	// source sales invoice within the partner tenant
	FindBySourceInvoice(ctx context.Context, tenantID, sourceInvoiceID uuid.UUID) (*Invoice, error)

	// FindBySourceDocument finds the invoice drafted from an OCR upload
	FindBySourceDocument(ctx context.Context, tenantID, documentID uuid.UUID) (*Invoice, error)

	// FindAllForTenant finds all invoices for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// FindIssuedBetween finds issued invoices in a date range, for exports
	FindIssuedBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]Invoice, error)

	// FindIssuedUnmirrored finds issued sales invoices to a contractor that
	// have not been mirrored yet. The partnership sweep uses it to catch up
	// on invoices the event path missed.
	FindIssuedUnmirrored(ctx context.Context, tenantID, contractorID uuid.UUID) ([]Invoice, error)

	// Save creates or updates an invoice together with its lines
	Save(ctx context.Context, inv *Invoice) error

	// SaveMirror persists a mirror invoice and the mirrored flag on its
	// source in one transaction
	SaveMirror(ctx context.Context, mirror, source *Invoice) error

	// DeleteForTenant deletes an invoice within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts invoices for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByNumber checks whether a number is already taken in the tenant
	ExistsByNumber(ctx context.Context, tenantID uuid.UUID, number string, typ InvoiceType) (bool, error)

	// ExistsBySourceInvoice checks whether a mirror of the source invoice
	// already exists in the tenant. One of the two idempotency guards of the
	// auto-posting engine.
	ExistsBySourceInvoice(ctx context.Context, tenantID, sourceInvoiceID uuid.UUID) (bool, error)

	// NextNumber allocates the next number in the tenant's monthly series
	// for the given type and date
	NextNumber(ctx context.Context, tenantID uuid.UUID, typ InvoiceType, date time.Time) (string, error)
}
