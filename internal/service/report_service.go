package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anish435/Hotel-Inventory-management-system/internal/config"
	"github.com/anish435/Hotel-Inventory-management-system/internal/dto"
	"github.com/anish435/Hotel-Inventory-management-system/internal/repository"
	"github.com/anish435/Hotel-Inventory-management-system/internal/worker"
)

type ReportService interface {
	// DailyLedger aggregates the sales of one local calendar day.
	// Empty date = today.
	DailyLedger(ctx context.Context, date string) (*dto.DailyLedgerResponse, error)

	// EmailDailyLedger enqueues the summary email for the given day.
	EmailDailyLedger(ctx context.Context, req dto.EmailLedgerRequest) error
}

type reportService struct {
	saleRepo   repository.SaleRepository
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewReportService(saleRepo repository.SaleRepository, dispatcher *worker.Dispatcher, cfg *config.Config) ReportService {
	return &reportService{saleRepo: saleRepo, dispatcher: dispatcher, cfg: cfg}
}

func (s *reportService) DailyLedger(ctx context.Context, date string) (*dto.DailyLedgerResponse, error) {
	day, err := resolveDay(date)
	if err != nil {
		return nil, err
	}

	cash, upi, count, err := s.saleRepo.AggregateRange(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	return &dto.DailyLedgerResponse{
		Date:       day.Format("2006-01-02"),
		CashTotal:  cash,
		UpiTotal:   upi,
		GrandTotal: cash.Add(upi),
		SalesCount: count,
	}, nil
}

func (s *reportService) EmailDailyLedger(ctx context.Context, req dto.EmailLedgerRequest) error {
	ledger, err := s.DailyLedger(ctx, req.Date)
	if err != nil {
		return err
	}

	to := req.To
	if to == "" {
		to = s.cfg.LedgerEmail
	}
	if to == "" {
		return fmt.Errorf("no recipient configured for ledger email")
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Daily ledger for %s\n\n", ledger.Date)
	fmt.Fprintf(&body, "Cash:   %s\n", ledger.CashTotal.StringFixed(2))
	fmt.Fprintf(&body, "UPI:    %s\n", ledger.UpiTotal.StringFixed(2))
	fmt.Fprintf(&body, "Total:  %s\n", ledger.GrandTotal.StringFixed(2))
	fmt.Fprintf(&body, "Sales:  %d\n", ledger.SalesCount)

	return s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
		To:      to,
		Subject: fmt.Sprintf("%s daily ledger %s", s.cfg.PropertyName, ledger.Date),
		Body:    body.String(),
	})
}

// resolveDay parses a YYYY-MM-DD date in the server's local zone,
// defaulting to today. The calendar day boundary is local on purpose:
// the front desk reconciles cash against the local day, not UTC.
func resolveDay(date string) (time.Time, error) {
	if date == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return day, nil
}
