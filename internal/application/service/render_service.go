package service

import (
	"context"
	"fmt"

	"github.com/dkimathi/invoicer-api/internal/domain/entity"
	"github.com/dkimathi/invoicer-api/internal/domain/repository"
	"github.com/dkimathi/invoicer-api/pkg/apperror"
	"github.com/dkimathi/invoicer-api/pkg/pdf"
	"github.com/google/uuid"
)

// defaultIssuer is substituted when a record carries no sender profile.
// Records created before sender info existed have none.
var defaultIssuer = entity.SenderProfile{
	Name:    "My Company Inc.",
	Address: "123 Tech Street",
	City:    "Silicon Valley, CA",
}

// displayDateFormat approximates the browser's locale date output.
const displayDateFormat = "Jan 2, 2006"

// RenderService maps stored invoice records to fixed-layout printable
// documents.
type RenderService struct {
	invoiceRepo repository.InvoiceRepository
}

// NewRenderService creates a new render service
func NewRenderService(invoiceRepo repository.InvoiceRepository) *RenderService {
	return &RenderService{invoiceRepo: invoiceRepo}
}

// Render derives the printable document from one invoice record. It fails
// only when the record itself is absent; missing sender data and missing or
// empty items degrade to the default issuer and a placeholder row. The total
// is always re-derived from the item snapshot, never read from the stored
// amount.
func (s *RenderService) Render(record *entity.Invoice) (*entity.RenderedInvoice, error) {
	if record == nil {
		return nil, apperror.ErrMissingRecord
	}

	issuer := defaultIssuer
	if record.CompanyInfo != nil {
		issuer = *record.CompanyInfo
	}

	rows := make([]entity.DocumentRow, 0, len(record.Items))
	for _, item := range record.Items {
		rows = append(rows, entity.DocumentRow{
			Description: item.Description,
			Amount:      fmt.Sprintf("%.2f", float64(item.UnitPrice)),
		})
	}
	if len(rows) == 0 {
		rows = append(rows, entity.DocumentRow{Description: "-", Amount: "-"})
	}

	return &entity.RenderedInvoice{
		DisplayID:  displayID(record.ID),
		Issuer:     issuer,
		ClientName: record.ClientName,
		Date:       record.CreatedAt.Format(displayDateFormat),
		Rows:       rows,
		Total:      fmt.Sprintf("%.2f", entity.ComputeTotal(record.Items)),
	}, nil
}

// RenderDocument fetches one of the user's records and renders it.
func (s *RenderService) RenderDocument(ctx context.Context, userID, invoiceID uuid.UUID) (*entity.RenderedInvoice, error) {
	record, err := s.fetch(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	return s.Render(record)
}

// RenderPDF fetches one of the user's records, renders it, and lays it out
// on a single A4 page. The returned bytes are complete and printable; no
// further readiness signal is needed.
func (s *RenderService) RenderPDF(ctx context.Context, userID, invoiceID uuid.UUID) ([]byte, error) {
	doc, err := s.RenderDocument(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	return pdf.RenderInvoicePDF(doc)
}

func (s *RenderService) fetch(ctx context.Context, userID, invoiceID uuid.UUID) (*entity.Invoice, error) {
	record, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.ErrMissingRecord
	}
	if record.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return record, nil
}

// displayID truncates a record id for compact display. Display only, never
// valid for lookups.
func displayID(id uuid.UUID) string {
	s := id.String()
	if id == uuid.Nil || s == "" {
		return "000"
	}
	if len(s) > 6 {
		return s[:6]
	}
	return s
}
