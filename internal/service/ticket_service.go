package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"siteworks/internal/errors"
	"siteworks/internal/model"
	"siteworks/internal/repository"
)

// TicketService exposes a client's support tickets.
type TicketService interface {
	CreateTicket(ctx context.Context, userID uint, subject, message string, priority model.TicketPriority) (*model.Ticket, error)
	ListTickets(ctx context.Context, userID uint) ([]model.Ticket, error)
	GetTicket(ctx context.Context, userID, ticketID uint) (*model.Ticket, error)
}

type ticketService struct {
	repo repository.TicketRepository
}

// NewTicketService creates a new ticket service.
func NewTicketService(repo repository.TicketRepository) TicketService {
	return &ticketService{repo: repo}
}

// CreateTicket opens a new support ticket for the caller.
func (s *ticketService) CreateTicket(ctx context.Context, userID uint, subject, message string, priority model.TicketPriority) (*model.Ticket, error) {
	if priority == "" {
		priority = model.TicketPriorityNormal
	}

	ticket := &model.Ticket{
		UserID:   userID,
		Subject:  subject,
		Message:  message,
		Priority: priority,
		Status:   model.TicketStatusOpen,
	}

	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	return ticket, nil
}

// ListTickets returns the caller's tickets, newest first.
func (s *ticketService) ListTickets(ctx context.Context, userID uint) ([]model.Ticket, error) {
	tickets, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

// GetTicket returns one ticket. A ticket owned by another user reads as not
// found.
func (s *ticketService) GetTicket(ctx context.Context, userID, ticketID uint) (*model.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, ticketID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTicketNotFound
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	if ticket.UserID != userID {
		return nil, errors.ErrTicketNotFound
	}
	return ticket, nil
}
