package worker

// retry_cron.go
// Goroutine de fondo que reintenta periódicamente los recibos trabados en
// estado='pendiente' con next_retry_at vencido. Al agotar el presupuesto de
// reintentos el recibo pasa a estado='error' y el job va a la DLQ.

import (
	"context"
	"fmt"
	"time"

	"australprints/internal/infra"
	"australprints/internal/model"
	"australprints/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	ReciboRepo     repository.ReciboRepository
	PedidoRepo     repository.PedidoRepository
	Dispatcher     *Dispatcher
	RDB            *redis.Client
	PDFStoragePath string
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries pending recibos, and re-attempts PDF generation.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	now := time.Now()
	recibos, err := cfg.ReciboRepo.ListPendientesParaRetry(ctx, now, MaxReciboRetries)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}

	if len(recibos) == 0 {
		return
	}

	log.Info().Int("count", len(recibos)).Msg("retry_cron: processing pending recibos")

	for i := range recibos {
		recibo := &recibos[i]

		pedido, err := cfg.PedidoRepo.FindByID(ctx, recibo.PedidoID)
		if err != nil {
			log.Error().
				Err(err).
				Str("recibo_id", recibo.ID.String()).
				Msg("retry_cron: pedido for recibo not found")
			continue
		}

		pdfPath, pdfErr := infra.GenerateReciboPDF(recibo, pedido, cfg.PDFStoragePath)
		if pdfErr != nil {
			recibo.RetryCount++
			errMsg := pdfErr.Error()
			recibo.LastError = &errMsg

			if recibo.RetryCount >= MaxReciboRetries {
				recibo.Estado = "error"
				recibo.NextRetryAt = nil
				log.Error().
					Str("recibo_id", recibo.ID.String()).
					Str("pedido_id", recibo.PedidoID.String()).
					Int("retries", recibo.RetryCount).
					Msg("retry_cron: max retries exceeded, moving to error/DLQ")

				payload := fmt.Sprintf(`{"pedido_id":"%s","recibo_id":"%s"}`, recibo.PedidoID, recibo.ID)
				SendToDLQ(ctx, cfg.RDB, QueueRecibos, "recibo", []byte(payload),
					fmt.Sprintf("max retries (%d) exceeded: %s", MaxReciboRetries, errMsg),
					recibo.RetryCount)
			} else {
				nextRetry := time.Now().Add(computeRetryBackoff(recibo.RetryCount))
				recibo.NextRetryAt = &nextRetry
				log.Warn().
					Str("recibo_id", recibo.ID.String()).
					Int("retry_count", recibo.RetryCount).
					Time("next_retry_at", nextRetry).
					Msg("retry_cron: PDF retry failed, scheduled next attempt")
			}

			_ = cfg.ReciboRepo.Update(ctx, recibo)
			continue
		}

		// Success path
		recibo.Estado = "emitido"
		recibo.PDFPath = &pdfPath
		recibo.NextRetryAt = nil
		recibo.LastError = nil
		_ = cfg.ReciboRepo.Update(ctx, recibo)

		log.Info().
			Str("recibo_id", recibo.ID.String()).
			Int("total_retries", recibo.RetryCount).
			Msg("retry_cron: recibo emitido after retry")

		if email := clienteEmailDe(pedido); email != "" {
			emailJob := EmailJobPayload{
				ToEmail: email,
				Subject: fmt.Sprintf("Tu pedido está listo — Recibo %s", recibo.ID.String()[:8]),
				Body:    fmt.Sprintf("Adjuntamos el recibo de tu pedido.\nTotal: $%s", recibo.MontoTotal.StringFixed(2)),
				PDFPath: pdfPath,
			}
			if err := cfg.Dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
				log.Warn().Err(err).Str("email", email).Msg("retry_cron: failed to enqueue email")
			}
		}
	}
}

func clienteEmailDe(p *model.Pedido) string {
	if p.Cliente != nil && p.Cliente.Email != nil {
		return *p.Cliente.Email
	}
	return ""
}
