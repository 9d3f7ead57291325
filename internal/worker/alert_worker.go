package worker

// alert_worker.go
// Processes low-stock alert jobs from QueueAlerts: when a sale leaves an item
// at or below its alert threshold, the ledger enqueues one of these and the
// shop owner gets a mail.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// LowStockAlertPayload is the job envelope sent to QueueAlerts.
type LowStockAlertPayload struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	Barcode   string `json:"barcode"`
	Quantity  int    `json:"quantity"`
	Threshold int    `json:"threshold"`
}

// AlertMailer is the sending side the worker depends on; infra.Mailer
// implements it over SMTP.
type AlertMailer interface {
	Send(to, subject, body string) error
}

// AlertWorker turns low-stock jobs into notification mails.
type AlertWorker struct {
	mailer AlertMailer
	to     string
}

func NewAlertWorker(mailer AlertMailer, to string) *AlertWorker {
	return &AlertWorker{mailer: mailer, to: to}
}

// Process sends the notification. A returned error sends the job to the DLQ.
func (w *AlertWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload LowStockAlertPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("alert_worker: invalid payload: %w", err)
	}
	if w.to == "" {
		log.Warn().Msg("alert_worker: no ALERT_EMAIL configured, skipping")
		return nil
	}

	subject := fmt.Sprintf("Low stock: %s", payload.Name)
	body := fmt.Sprintf(
		"Item %s (barcode %s) is down to %d units (alert threshold %d).\nRestock soon.",
		payload.Name, payload.Barcode, payload.Quantity, payload.Threshold,
	)
	if err := w.mailer.Send(w.to, subject, body); err != nil {
		return fmt.Errorf("alert_worker: send failed: %w", err)
	}

	log.Info().
		Str("item_id", payload.ItemID).
		Int("quantity", payload.Quantity).
		Msg("alert_worker: low-stock mail sent")
	return nil
}
