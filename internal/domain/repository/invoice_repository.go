package repository

import (
	"context"

	"github.com/dkimathi/invoicer-api/internal/domain/entity"
	"github.com/dkimathi/invoicer-api/pkg/pagination"
	"github.com/google/uuid"
)

// InvoiceFilterParams holds filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
}

// InvoiceRepository defines the interface for invoice data access. Invoices
// are insert-only from this system's point of view: no update or delete.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// List returns the user's invoices newest first.
	List(ctx context.Context, userID uuid.UUID, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	// ListAll returns the user's full history newest first, unpaginated.
	ListAll(ctx context.Context, userID uuid.UUID) ([]entity.Invoice, error)
}
