package worker

// recibo_worker.go
// Procesa jobs de QueueRecibos: genera el PDF del recibo de un pedido
// entregado y, si el cliente tiene email, encola el envío. El cambio de
// estado del pedido NUNCA espera por esto — un PDF roto se reintenta por
// el cron sin tocar el pedido.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"australprints/internal/infra"
	"australprints/internal/model"
	"australprints/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReciboJobPayload is the job envelope sent to QueueRecibos.
type ReciboJobPayload struct {
	PedidoID     string  `json:"pedido_id"`
	ClienteEmail *string `json:"cliente_email,omitempty"`
}

// ReciboWorker generates PDF receipts for delivered pedidos.
type ReciboWorker struct {
	reciboRepo     repository.ReciboRepository
	pedidoRepo     repository.PedidoRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewReciboWorker(
	reciboRepo repository.ReciboRepository,
	pedidoRepo repository.PedidoRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
) *ReciboWorker {
	return &ReciboWorker{
		reciboRepo:     reciboRepo,
		pedidoRepo:     pedidoRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single recibo job:
//  1. Parse ReciboJobPayload from the envelope
//  2. Fetch the Pedido with its líneas
//  3. Create (or reuse) the Recibo record with estado="pendiente"
//  4. Generate the PDF with short in-process retries
//  5. On success mark emitido and enqueue the email job
//  6. On failure schedule the cron retry (retry_count / next_retry_at)
func (w *ReciboWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReciboJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recibo_worker: invalid payload")
		return
	}

	pedidoID, err := uuid.Parse(payload.PedidoID)
	if err != nil {
		log.Error().Str("pedido_id", payload.PedidoID).Msg("recibo_worker: invalid pedido_id")
		return
	}

	pedido, err := w.pedidoRepo.FindByID(ctx, pedidoID)
	if err != nil {
		log.Error().Err(err).Str("pedido_id", payload.PedidoID).Msg("recibo_worker: pedido not found")
		return
	}

	// Un recibo por pedido: si el job se re-encoló, reutilizar el existente.
	recibo, err := w.reciboRepo.FindByPedidoID(ctx, pedidoID)
	if err != nil {
		recibo = &model.Recibo{
			PedidoID:   pedidoID,
			MontoTotal: pedido.TotalVenta(),
			Estado:     "pendiente",
		}
		if err := w.reciboRepo.Create(ctx, recibo); err != nil {
			log.Error().Err(err).Str("pedido_id", payload.PedidoID).Msg("recibo_worker: failed to create recibo")
			return
		}
	} else if recibo.Estado == "emitido" {
		log.Debug().Str("pedido_id", payload.PedidoID).Msg("recibo_worker: recibo already emitido, skipping")
		return
	}

	// Short in-process retries: attempt 1 = immediate, then 1s, 2s.
	var pdfPath string
	pdfErr := withRetry(ctx, 3, func(attempt int) error {
		path, err := infra.GenerateReciboPDF(recibo, pedido, w.pdfStoragePath)
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("pedido_id", payload.PedidoID).
				Msg("recibo_worker: PDF attempt failed, retrying")
			return err
		}
		pdfPath = path
		return nil
	})

	if pdfErr != nil {
		recibo.RetryCount++
		errMsg := pdfErr.Error()
		recibo.LastError = &errMsg
		nextRetry := time.Now().Add(computeRetryBackoff(recibo.RetryCount))
		recibo.NextRetryAt = &nextRetry
		_ = w.reciboRepo.Update(ctx, recibo)
		log.Error().
			Err(pdfErr).
			Str("pedido_id", payload.PedidoID).
			Time("next_retry_at", nextRetry).
			Msg("recibo_worker: PDF generation failed, scheduled cron retry")
		return
	}

	recibo.Estado = "emitido"
	recibo.PDFPath = &pdfPath
	recibo.NextRetryAt = nil
	recibo.LastError = nil
	if err := w.reciboRepo.Update(ctx, recibo); err != nil {
		log.Error().Err(err).Str("pedido_id", payload.PedidoID).Msg("recibo_worker: failed to update recibo")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("pedido_id", payload.PedidoID).Msg("recibo_worker: recibo emitido")

	if payload.ClienteEmail != nil && *payload.ClienteEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: *payload.ClienteEmail,
			Subject: fmt.Sprintf("Tu pedido está listo — Recibo %s", recibo.ID.String()[:8]),
			Body:    fmt.Sprintf("Adjuntamos el recibo de tu pedido.\nTotal: $%s", recibo.MontoTotal.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.ClienteEmail).Msg("recibo_worker: failed to enqueue email")
		} else {
			log.Info().Str("email", *payload.ClienteEmail).Msg("recibo_worker: email job enqueued")
		}
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
