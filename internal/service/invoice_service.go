package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"siteworks/internal/cache"
	"siteworks/internal/errors"
	"siteworks/internal/model"
	"siteworks/internal/repository"
)

const invoiceCacheTTL = 5 * time.Minute

// InvoiceService exposes a client's invoices.
type InvoiceService interface {
	ListInvoices(ctx context.Context, userID uint) ([]model.Invoice, error)
	GetInvoice(ctx context.Context, userID, invoiceID uint) (*model.Invoice, error)
}

type invoiceService struct {
	repo  repository.InvoiceRepository
	cache *cache.Client
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(repo repository.InvoiceRepository, cacheClient *cache.Client) InvoiceService {
	return &invoiceService{
		repo:  repo,
		cache: cacheClient,
	}
}

func (s *invoiceService) listCacheKey(userID uint) string {
	return fmt.Sprintf("invoices:user:%d", userID)
}

// ListInvoices returns the caller's invoices with caching.
func (s *invoiceService) ListInvoices(ctx context.Context, userID uint) ([]model.Invoice, error) {
	var cached []model.Invoice
	if s.cache.GetJSON(ctx, s.listCacheKey(userID), &cached) {
		return cached, nil
	}

	invoices, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	s.cache.SetJSON(ctx, s.listCacheKey(userID), invoices, invoiceCacheTTL)
	return invoices, nil
}

// GetInvoice returns one invoice. An invoice owned by another user reads as
// not found.
func (s *invoiceService) GetInvoice(ctx context.Context, userID, invoiceID uint) (*model.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, invoiceID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	if invoice.UserID != userID {
		return nil, errors.ErrInvoiceNotFound
	}
	return invoice, nil
}
