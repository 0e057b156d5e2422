package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Filter narrows FindAll results.
type Filter struct {
	Category *Category
	Active   *bool
}

// Repository is dumb storage for catalog rows. A lookup miss is (nil, nil),
// never an error.
type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	FindByCategory(ctx context.Context, db *gorm.DB, category Category) ([]Product, error)
	FindAll(ctx context.Context, db *gorm.DB, filter Filter) ([]Product, error)
}
