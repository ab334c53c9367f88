package handler

import (
	"fmt"
	"time"

	"github.com/dkimathi/invoicer-api/internal/application/service"
	"github.com/dkimathi/invoicer-api/internal/presentation/http/dto/response"
	"github.com/dkimathi/invoicer-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles invoice history and rendering HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	renderService  *service.RenderService
	exportService  *service.ExportService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(
	invoiceService *service.InvoiceService,
	renderService *service.RenderService,
	exportService *service.ExportService,
) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		renderService:  renderService,
		exportService:  exportService,
	}
}

// List handles listing the user's invoice history, newest first
func (h *InvoiceHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page := 1
	perPage := 15
	if p := c.Query("page"); p != "" {
		if parsed, err := parsePositiveInt(p); err == nil {
			page = parsed
		}
	}
	if pp := c.Query("per_page"); pp != "" {
		if parsed, err := parsePositiveInt(pp); err == nil {
			perPage = parsed
		}
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), &service.ListInvoicesInput{
		UserID: *userID,
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles getting a single invoice record
func (h *InvoiceHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// GetDocument handles returning the rendered document for one invoice
func (h *InvoiceHandler) GetDocument(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	doc, err := h.renderService.RenderDocument(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document rendered successfully", doc)
}

// GetPDF handles returning the printable A4 PDF for one invoice
func (h *InvoiceHandler) GetPDF(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	data, err := h.renderService.RenderPDF(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("invoice-%s.pdf", id.String()[:6])
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/pdf", data)
}

// Export handles downloading the invoice history as an XLSX workbook
func (h *InvoiceHandler) Export(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	data, err := h.exportService.ExportInvoicesXLSX(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("invoices-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
