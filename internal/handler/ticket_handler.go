package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"siteworks/internal/errors"
	"siteworks/internal/model"
	"siteworks/internal/service"
)

// TicketHandler handles support ticket endpoints.
type TicketHandler struct {
	ticketService service.TicketService
}

// NewTicketHandler creates a new ticket handler.
func NewTicketHandler(ticketService service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// CreateTicketRequest represents a new support ticket.
type CreateTicketRequest struct {
	Subject  string `json:"subject" validate:"required"`
	Message  string `json:"message" validate:"required"`
	Priority string `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
}

// CreateTicket godoc
// @Summary Open a support ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTicketRequest true "Ticket data"
// @Success 201 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreateTicketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail(validationMessage(err)))
	}

	ticket, err := h.ticketService.CreateTicket(c.Request().Context(), claims.UserID,
		req.Subject, req.Message, model.TicketPriority(req.Priority))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, errors.Fail(httpErr.Message))
	}

	return c.JSON(http.StatusCreated, errors.OK(echo.Map{"ticket": ticket}))
}

// ListTickets godoc
// @Summary List the caller's tickets
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	tickets, err := h.ticketService.ListTickets(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, errors.Fail(httpErr.Message))
	}

	return c.JSON(http.StatusOK, errors.OK(echo.Map{"tickets": tickets}))
}

// GetTicket godoc
// @Summary Get one of the caller's tickets
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Success 200 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("invalid ticket id"))
	}

	ticket, err := h.ticketService.GetTicket(c.Request().Context(), claims.UserID, uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, errors.Fail(httpErr.Message))
	}

	return c.JSON(http.StatusOK, errors.OK(echo.Map{"ticket": ticket}))
}
