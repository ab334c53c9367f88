package service

import (
	"context"
	"fmt"

	"github.com/dkimathi/invoicer-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ExportService produces XLSX bytes for invoice history exports.
type ExportService struct {
	invoiceRepo repository.InvoiceRepository
}

// NewExportService creates a new export service
func NewExportService(invoiceRepo repository.InvoiceRepository) *ExportService {
	return &ExportService{invoiceRepo: invoiceRepo}
}

// ExportInvoicesXLSX returns an XLSX workbook of the user's invoice history,
// newest first, one row per invoice.
func (s *ExportService) ExportInvoicesXLSX(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	invoices, err := s.invoiceRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Invoices"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"Date", "Invoice ID", "Client", "Items", "Status", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, inv := range invoices {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, inv.CreatedAt.Format("2006-01-02"))
		write(2, inv.ID.String())
		write(3, inv.ClientName)
		write(4, len(inv.Items))
		write(5, inv.Status.String())
		write(6, inv.Amount)
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
