package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"siteworks/internal/errors"
	"siteworks/internal/service"
)

// InvoiceHandler handles client invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// ListInvoices godoc
// @Summary List the caller's invoices
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Router /invoices [get]
func (h *InvoiceHandler) ListInvoices(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, errors.Fail(httpErr.Message))
	}

	return c.JSON(http.StatusOK, errors.OK(echo.Map{"invoices": invoices}))
}

// GetInvoice godoc
// @Summary Get one of the caller's invoices
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invoice ID"
// @Success 200 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid invoice id"))
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request().Context(), claims.UserID, uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, errors.Fail(httpErr.Message))
	}

	return c.JSON(http.StatusOK, errors.OK(echo.Map{"invoice": invoice}))
}
