package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dkimathi/invoicer-api/internal/domain/entity"
	"github.com/dkimathi/invoicer-api/pkg/apperror"
	"github.com/dkimathi/invoicer-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

func TestGetInvoice(t *testing.T) {
	owner := uuid.New()
	record := sampleInvoice(owner)
	repo := &stubInvoiceRepo{invoices: map[uuid.UUID]*entity.Invoice{record.ID: record}}
	svc := NewInvoiceService(repo)

	got, err := svc.GetInvoice(context.Background(), owner, record.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if got.ClientName != "Acme Corp" {
		t.Errorf("client = %q", got.ClientName)
	}

	if _, err := svc.GetInvoice(context.Background(), uuid.New(), record.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("foreign access: got %v, want ErrForbidden", err)
	}

	_, err = svc.GetInvoice(context.Background(), owner, uuid.New())
	if appErr := apperror.GetAppError(err); appErr.Code != 404 {
		t.Errorf("absent record: got %v, want 404", err)
	}
}

func TestListInvoices(t *testing.T) {
	owner := uuid.New()
	record := sampleInvoice(owner)
	other := sampleInvoice(uuid.New())
	other.ID = uuid.New()
	repo := &stubInvoiceRepo{invoices: map[uuid.UUID]*entity.Invoice{
		record.ID: record,
		other.ID:  other,
	}}
	svc := NewInvoiceService(repo)

	result, err := svc.ListInvoices(context.Background(), &ListInvoicesInput{
		UserID:     owner,
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
	})
	if err != nil {
		t.Fatalf("ListInvoices: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("got %d invoices, want only the owner's", len(result.Items))
	}
	if result.Pagination.Total != 1 {
		t.Errorf("total = %d, want 1", result.Pagination.Total)
	}
}

func TestExportInvoicesXLSX(t *testing.T) {
	owner := uuid.New()
	record := sampleInvoice(owner)
	record.Amount = 299.5
	repo := &stubInvoiceRepo{invoices: map[uuid.UUID]*entity.Invoice{record.ID: record}}
	svc := NewExportService(repo)

	data, err := svc.ExportInvoicesXLSX(context.Background(), owner)
	if err != nil {
		t.Fatalf("ExportInvoicesXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Invoices")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header plus one invoice", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][2] != "Client" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	if rows[1][2] != "Acme Corp" {
		t.Errorf("client cell = %q", rows[1][2])
	}
	if rows[1][0] != "2026-03-05" {
		t.Errorf("date cell = %q", rows[1][0])
	}
}
