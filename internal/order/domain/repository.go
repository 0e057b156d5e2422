package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository is dumb storage for orders. All transition guarding happens
// in the entity; the conditional updates exist only to keep concurrent
// transitions on the same order serializable (zero rows affected means a
// concurrent writer got there first).
type Repository interface {
	Create(ctx context.Context, db *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)
	FindByReference(ctx context.Context, db *gorm.DB, reference string) (*Order, error)
	// UpdateStatus persists a status transition, conditional on the
	// previous status. Returns the number of rows updated.
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, prev, next Status, updatedAt time.Time) (int64, error)
	// UpdatePaymentStatus persists a payment transition together with the
	// (possibly auto-confirmed) order status, conditional on both the
	// previous payment status and the previous order status — the write
	// touches the status column, so a status transition committed in
	// between must not be overwritten. Returns the number of rows updated.
	UpdatePaymentStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, prev, next PaymentStatus, prevStatus, status Status, updatedAt time.Time) (int64, error)
}
