package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	service "invoice-management-backend/internal/services/invoices"
	"invoice-management-backend/internal/schemas"
)

type InvoiceHandler struct {
	service *service.Service
}

func NewInvoiceHandler(s *service.Service) *InvoiceHandler {
	return &InvoiceHandler{service: s}
}

// detail writes the uniform error body; every error response is a JSON object
// with a single detail message.
func detail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"detail": msg})
}

func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.service.List(c.Request.Context())
	if err != nil {
		detail(c, http.StatusInternalServerError, "Error fetching invoices: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// GetSingle looks an invoice up by the invoice_id query parameter.
func (h *InvoiceHandler) GetSingle(c *gin.Context) {
	id, ok := invoiceID(c, c.Query("invoice_id"))
	if !ok {
		return
	}

	invoice, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if notFound(c, err) {
			return
		}
		detail(c, http.StatusInternalServerError, "Error fetching invoice: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		detail(c, http.StatusInternalServerError, "Error computing invoice stats: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var payload schemas.InvoiceCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	invoice, err := h.service.Create(c.Request.Context(), &payload)
	if err != nil {
		detail(c, http.StatusInternalServerError, "Error creating invoice: "+err.Error())
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := invoiceID(c, c.Param("invoice_id"))
	if !ok {
		return
	}

	var payload schemas.InvoiceUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	invoice, err := h.service.Update(c.Request.Context(), id, &payload)
	if err != nil {
		switch {
		case notFound(c, err):
		case errors.Is(err, service.ErrNoFields):
			detail(c, http.StatusBadRequest, "No fields to update")
		default:
			detail(c, http.StatusInternalServerError, "Error updating invoice: "+err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := invoiceID(c, c.Param("invoice_id"))
	if !ok {
		return
	}

	invoice, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		if notFound(c, err) {
			return
		}
		detail(c, http.StatusInternalServerError, "Error deleting invoice: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         fmt.Sprintf("Invoice with ID %d deleted successfully", id),
		"deleted_invoice": invoice,
	})
}

func invoiceID(c *gin.Context, raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		detail(c, http.StatusUnprocessableEntity, "invoice_id must be an integer")
		return 0, false
	}
	return id, true
}

func notFound(c *gin.Context, err error) bool {
	var nf *service.NotFoundError
	if errors.As(err, &nf) {
		detail(c, http.StatusNotFound, nf.Error())
		return true
	}
	return false
}
