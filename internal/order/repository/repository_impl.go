package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	orderdomain "github.com/lebokota/storefront/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() orderdomain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, order *orderdomain.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*orderdomain.Order, error) {
	var o orderdomain.Order
	err := db.WithContext(ctx).First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repo) FindByReference(ctx context.Context, db *gorm.DB, reference string) (*orderdomain.Order, error) {
	var o orderdomain.Order
	err := db.WithContext(ctx).First(&o, "reference_number = ?", reference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, prev, next orderdomain.Status, updatedAt time.Time) (int64, error) {
	result := db.WithContext(ctx).
		Model(&orderdomain.Order{}).
		Where("id = ? AND status = ?", id, prev).
		Updates(map[string]any{
			"status":     next,
			"updated_at": updatedAt,
		})
	return result.RowsAffected, result.Error
}

func (r *repo) UpdatePaymentStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, prev, next orderdomain.PaymentStatus, prevStatus, status orderdomain.Status, updatedAt time.Time) (int64, error) {
	result := db.WithContext(ctx).
		Model(&orderdomain.Order{}).
		Where("id = ? AND payment_status = ? AND status = ?", id, prev, prevStatus).
		Updates(map[string]any{
			"payment_status": next,
			"status":         status,
			"updated_at":     updatedAt,
		})
	return result.RowsAffected, result.Error
}
