package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/anish435/Hotel-Inventory-management-system/internal/config"
	"github.com/anish435/Hotel-Inventory-management-system/internal/model"
	"github.com/anish435/Hotel-Inventory-management-system/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSale(sales *stubSaleRepo, amount float64, mode string, at time.Time) {
	_ = sales.CreateTx(nil, &model.SaleRecord{
		Kind:        model.SaleKindWalkIn,
		TotalAmount: decimal.NewFromFloat(amount),
		PaymentMode: mode,
		CreatedAt:   at,
	})
}

func TestDailyLedger_SplitsByPaymentMode(t *testing.T) {
	sales := newStubSaleRepo()
	svc := service.NewReportService(sales, nil, &config.Config{})

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)
	seedSale(sales, 100, model.PaymentCash, day.Add(9*time.Hour))
	seedSale(sales, 50, model.PaymentUPI, day.Add(13*time.Hour))
	seedSale(sales, 25, model.PaymentCash, day.Add(23*time.Hour+30*time.Minute))
	// Previous day: excluded.
	seedSale(sales, 999, model.PaymentCash, day.Add(-2*time.Hour))

	ledger, err := svc.DailyLedger(context.Background(), "2026-03-14")
	require.NoError(t, err)

	assert.Equal(t, "2026-03-14", ledger.Date)
	assert.Equal(t, "125", ledger.CashTotal.String())
	assert.Equal(t, "50", ledger.UpiTotal.String())
	assert.Equal(t, "175", ledger.GrandTotal.String())
	assert.EqualValues(t, 3, ledger.SalesCount)
}

func TestDailyLedger_EmptyDay(t *testing.T) {
	sales := newStubSaleRepo()
	svc := service.NewReportService(sales, nil, &config.Config{})

	ledger, err := svc.DailyLedger(context.Background(), "2026-01-01")
	require.NoError(t, err)
	assert.True(t, ledger.CashTotal.IsZero())
	assert.True(t, ledger.UpiTotal.IsZero())
	assert.True(t, ledger.GrandTotal.IsZero())
	assert.Zero(t, ledger.SalesCount)
}

func TestDailyLedger_InvalidDate(t *testing.T) {
	svc := service.NewReportService(newStubSaleRepo(), nil, &config.Config{})

	_, err := svc.DailyLedger(context.Background(), "14-03-2026")
	assert.ErrorContains(t, err, "invalid date")
}
