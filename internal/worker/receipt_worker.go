package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipt: fetches the finalized sale and
// renders its PDF receipt to disk. Jobs are enqueued fire-and-forget after
// the sale transaction commits, so a render failure never affects the sale.

import (
	"context"
	"encoding/json"

	"github.com/anish435/Hotel-Inventory-management-system/internal/infra"
	"github.com/anish435/Hotel-Inventory-management-system/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReceiptJobPayload is the job envelope sent to QueueReceipt.
type ReceiptJobPayload struct {
	SaleID string `json:"sale_id"`
}

type ReceiptWorker struct {
	saleRepo     repository.SaleRepository
	propertyName string
	storagePath  string
}

func NewReceiptWorker(saleRepo repository.SaleRepository, propertyName, storagePath string) *ReceiptWorker {
	return &ReceiptWorker{
		saleRepo:     saleRepo,
		propertyName: propertyName,
		storagePath:  storagePath,
	}
}

// Process renders the PDF receipt for one sale.
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}

	saleID, err := uuid.Parse(payload.SaleID)
	if err != nil {
		log.Error().Str("sale_id", payload.SaleID).Msg("receipt_worker: invalid sale_id")
		return
	}

	sale, err := w.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		// The admin may have purged the record before the job ran.
		log.Warn().Err(err).Str("sale_id", payload.SaleID).Msg("receipt_worker: sale not found")
		return
	}

	path, err := infra.GenerateReceiptPDF(sale, w.propertyName, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("sale_id", payload.SaleID).Msg("receipt_worker: PDF generation failed")
		return
	}
	log.Info().Str("sale_id", payload.SaleID).Str("pdf", path).Msg("receipt_worker: receipt generated")
}
