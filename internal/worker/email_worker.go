package worker

// email_worker.go
// Processes email jobs from QueueEmail: daily ledger summaries for the
// innkeeper, with optional PDF attachment. SMTP is flaky enough on small
// deployments that sends are retried with exponential backoff.

import (
	"context"
	"encoding/json"

	"github.com/anish435/Hotel-Inventory-management-system/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	To             string `json:"to"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	AttachmentPath string `json:"attachment_path,omitempty"`
}

type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends one email, retrying up to 3 times.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.To == "" {
		log.Warn().Msg("email_worker: empty recipient — skipping")
		return
	}

	err := withRetry(ctx, 3, func(attempt int) error {
		sendErr := w.mailer.Send(payload.To, payload.Subject, payload.Body, payload.AttachmentPath)
		if sendErr != nil {
			log.Warn().Err(sendErr).Int("attempt", attempt+1).Str("to", payload.To).
				Msg("email_worker: send attempt failed")
		}
		return sendErr
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.To).Msg("email_worker: giving up after retries")
		return
	}
	log.Info().Str("to", payload.To).Str("subject", payload.Subject).Msg("email_worker: sent")
}
