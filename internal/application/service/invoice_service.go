package service

import (
	"context"

	"github.com/dkimathi/invoicer-api/internal/domain/entity"
	"github.com/dkimathi/invoicer-api/internal/domain/repository"
	"github.com/dkimathi/invoicer-api/pkg/apperror"
	"github.com/dkimathi/invoicer-api/pkg/pagination"
	"github.com/google/uuid"
)

// InvoiceService handles invoice history queries. Records are created only
// through the composer; this service never mutates or deletes them.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoiceRepo repository.InvoiceRepository) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo}
}

// ListInvoicesInput represents the input for listing invoices
type ListInvoicesInput struct {
	UserID     uuid.UUID
	Pagination *pagination.PaginationParams
	Search     string
}

// ListInvoices returns the user's invoice history, newest first
func (s *InvoiceService) ListInvoices(ctx context.Context, input *ListInvoicesInput) (*pagination.PaginatedResult[entity.Invoice], error) {
	params := &repository.InvoiceFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
	}

	invoices, total, err := s.invoiceRepo.List(ctx, input.UserID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// GetInvoice retrieves one of the user's invoices by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, userID, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return invoice, nil
}
