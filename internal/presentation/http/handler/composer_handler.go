package handler

import (
	"github.com/dkimathi/invoicer-api/internal/application/composer"
	"github.com/dkimathi/invoicer-api/internal/application/service"
	"github.com/dkimathi/invoicer-api/internal/domain/entity"
	"github.com/dkimathi/invoicer-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ComposerHandler exposes the draft session over HTTP. Every route operates
// on the authenticated user's own session.
type ComposerHandler struct {
	composerService *service.ComposerService
}

// NewComposerHandler creates a new composer handler
func NewComposerHandler(composerService *service.ComposerService) *ComposerHandler {
	return &ComposerHandler{composerService: composerService}
}

// SetClientRequest represents the client name update body
type SetClientRequest struct {
	ClientName string `json:"client_name"`
}

// SetSenderRequest represents the sender profile update body
type SetSenderRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// UpdateItemRequest represents a line item field update body
type UpdateItemRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// GetDraft handles returning the current draft snapshot
func (h *ComposerHandler) GetDraft(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	draft := h.composerService.Session(*userID).Snapshot()
	response.OK(c, "Draft retrieved successfully", draft)
}

// SetClient handles updating the draft's client name
func (h *ComposerHandler) SetClient(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req SetClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.composerService.Session(*userID).SetClientName(req.ClientName); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client name updated", h.composerService.Session(*userID).Snapshot())
}

// SetSender handles updating the draft's sender profile
func (h *ComposerHandler) SetSender(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req SetSenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sender := entity.SenderProfile{Name: req.Name, Address: req.Address, City: req.City}
	if err := h.composerService.Session(*userID).SetSender(sender); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sender profile updated", h.composerService.Session(*userID).Snapshot())
}

// AddItem handles appending a blank line item to the draft
func (h *ComposerHandler) AddItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.composerService.Session(*userID).AddItem(); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added", h.composerService.Session(*userID).Snapshot())
}

// UpdateItem handles setting a field on one draft line item
func (h *ComposerHandler) UpdateItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	index, err := parseNonNegativeInt(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid item index")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if req.Field != composer.FieldDescription && req.Field != composer.FieldPrice {
		response.BadRequest(c, "Field must be description or price")
		return
	}

	if err := h.composerService.Session(*userID).UpdateItem(index, req.Field, req.Value); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated", h.composerService.Session(*userID).Snapshot())
}

// RemoveItem handles removing one draft line item. Removing the last
// remaining item is a no-op; the handler still returns the snapshot so the
// client can reconcile.
func (h *ComposerHandler) RemoveItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	index, err := parseNonNegativeInt(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid item index")
		return
	}

	if err := h.composerService.Session(*userID).RemoveItem(index); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed", h.composerService.Session(*userID).Snapshot())
}

// Submit handles packaging the draft into a persisted invoice
func (h *ComposerHandler) Submit(c *gin.Context) {
	userID := GetUserID(c)

	invoice, err := h.composerService.Submit(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}
