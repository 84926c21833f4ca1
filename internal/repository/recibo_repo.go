package repository

import (
	"context"
	"time"

	"australprints/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReciboRepository interface {
	Create(ctx context.Context, rec *model.Recibo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Recibo, error)
	FindByPedidoID(ctx context.Context, pedidoID uuid.UUID) (*model.Recibo, error)
	Update(ctx context.Context, rec *model.Recibo) error
	// ListPendientesParaRetry feeds the retry cron: pending receipts whose
	// next_retry_at has passed.
	ListPendientesParaRetry(ctx context.Context, ahora time.Time, maxRetries int) ([]model.Recibo, error)
}

type reciboRepo struct{ db *gorm.DB }

func NewReciboRepository(db *gorm.DB) ReciboRepository { return &reciboRepo{db: db} }

func (r *reciboRepo) Create(ctx context.Context, rec *model.Recibo) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *reciboRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Recibo, error) {
	var rec model.Recibo
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	return &rec, err
}

func (r *reciboRepo) FindByPedidoID(ctx context.Context, pedidoID uuid.UUID) (*model.Recibo, error) {
	var rec model.Recibo
	err := r.db.WithContext(ctx).Where("pedido_id = ?", pedidoID).First(&rec).Error
	return &rec, err
}

func (r *reciboRepo) Update(ctx context.Context, rec *model.Recibo) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *reciboRepo) ListPendientesParaRetry(ctx context.Context, ahora time.Time, maxRetries int) ([]model.Recibo, error) {
	var recibos []model.Recibo
	err := r.db.WithContext(ctx).
		Where("estado = ? AND next_retry_at IS NOT NULL AND next_retry_at <= ? AND retry_count < ?",
			"pendiente", ahora, maxRetries).
		Find(&recibos).Error
	return recibos, err
}
