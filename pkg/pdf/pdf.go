package pdf

import (
	"bytes"
	"fmt"

	"github.com/dkimathi/invoicer-api/internal/domain/entity"
	"github.com/jung-kurt/gofpdf"
)

// Invoice page metrics, millimeters. Content is laid out to fit one A4 page;
// there is no overflow handling.
const (
	pageMargin  = 15
	pageWidth   = 210
	contentW    = pageWidth - 2*pageMargin
	amountColW  = 40
	descColW    = contentW - amountColW
	tableRowH   = 7
	headerBlueR = 30
	headerBlueG = 64
	headerBlueB = 175
)

// RenderInvoicePDF lays out a rendered invoice document on a single A4 page
// and returns the PDF bytes. The returned bytes are the "document ready"
// signal: once this function returns, the document is fully attached and
// printable.
func RenderInvoicePDF(doc *entity.RenderedInvoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Header: title and display id on the left, issuer block on the right
	pdf.SetTextColor(headerBlueR, headerBlueG, headerBlueB)
	pdf.SetFont("Arial", "B", 28)
	pdf.CellFormat(contentW/2, 12, "INVOICE", "", 0, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(contentW/2, 6, doc.Issuer.Name, "", 1, "R", false, 0, "")

	pdf.SetTextColor(102, 102, 102)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(contentW/2, 5, "ID: "+doc.DisplayID, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, doc.Issuer.Address, "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, doc.Issuer.City, "", 1, "R", false, 0, "")

	// Rule under the header
	pdf.SetDrawColor(headerBlueR, headerBlueG, headerBlueB)
	pdf.SetLineWidth(0.6)
	y := pdf.GetY() + 2
	pdf.Line(pageMargin, y, pageWidth-pageMargin, y)
	pdf.SetY(y + 6)

	// Bill-to block
	pdf.SetTextColor(headerBlueR, headerBlueG, headerBlueB)
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(contentW, 5, "BILL TO:", "", 1, "L", false, 0, "")
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(contentW, 6, doc.ClientName, "", 1, "L", false, 0, "")
	pdf.SetTextColor(102, 102, 102)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(contentW, 5, "Date: "+doc.Date, "", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Item table
	pdf.SetTextColor(headerBlueR, headerBlueG, headerBlueB)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(descColW, tableRowH, "Description", "B", 0, "L", false, 0, "")
	pdf.CellFormat(amountColW, tableRowH, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetDrawColor(229, 231, 235)
	pdf.SetLineWidth(0.2)
	pdf.SetFont("Arial", "", 10)
	for _, row := range doc.Rows {
		pdf.SetTextColor(51, 51, 51)
		pdf.CellFormat(descColW, tableRowH, row.Description, "B", 0, "L", false, 0, "")
		pdf.SetTextColor(17, 17, 17)
		pdf.CellFormat(amountColW, tableRowH, formatCurrency(row.Amount), "B", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Total line, right-aligned over half the content width
	pdf.SetX(pageMargin + contentW/2)
	pdf.SetDrawColor(headerBlueR, headerBlueG, headerBlueB)
	pdf.SetLineWidth(0.6)
	totalY := pdf.GetY()
	pdf.Line(pageMargin+contentW/2, totalY, pageWidth-pageMargin, totalY)
	pdf.SetY(totalY + 2)
	pdf.SetX(pageMargin + contentW/2)
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(contentW/2-amountColW, 8, "Total Due:", "", 0, "L", false, 0, "")
	pdf.SetTextColor(headerBlueR, headerBlueG, headerBlueB)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(amountColW, 8, "$"+doc.Total, "", 1, "R", false, 0, "")

	// Footer
	pdf.SetY(-30)
	pdf.SetDrawColor(229, 231, 235)
	pdf.SetLineWidth(0.2)
	footY := pdf.GetY()
	pdf.Line(pageMargin, footY, pageWidth-pageMargin, footY)
	pdf.SetY(footY + 4)
	pdf.SetTextColor(153, 153, 153)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(contentW, 5, "Thank you for your business!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: failed to generate invoice document: %w", err)
	}
	return buf.Bytes(), nil
}

// formatCurrency prefixes row amounts with the currency symbol, leaving the
// placeholder row untouched.
func formatCurrency(amount string) string {
	if amount == "-" {
		return amount
	}
	return "$" + amount
}
