package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/lebokota/storefront/internal/catalog/domain"
	"gorm.io/gorm"
)

type seedProduct struct {
	name        string
	description string
	price       int64
	category    catalogdomain.Category
	emoji       string
	badge       string
	items       []string
}

var defaultCatalog = []seedProduct{
	{
		name:        "Classic Kota",
		description: "The one that started it all: quarter loaf, chips, polony, cheese and atchar.",
		price:       10000,
		category:    catalogdomain.CategoryStarter,
		emoji:       "🍞",
		badge:       "Best Seller",
		items:       []string{"Quarter loaf", "Chips", "Polony", "Cheese slice", "Atchar"},
	},
	{
		name:        "Starter Combo",
		description: "Classic kota plus a cold drink for one.",
		price:       12500,
		category:    catalogdomain.CategoryStarter,
		emoji:       "🥤",
		badge:       "",
		items:       []string{"Classic kota", "330ml cold drink"},
	},
	{
		name:        "Family Feast",
		description: "Four loaded kotas with double chips, feeds the whole table.",
		price:       45000,
		category:    catalogdomain.CategoryFamily,
		emoji:       "👨‍👩‍👧‍👦",
		badge:       "Popular",
		items:       []string{"4x loaded kota", "Double chips", "4x cold drink", "Atchar tub"},
	},
	{
		name:        "Premium Braai Box",
		description: "Kotas with boerewors, wings and russians, plus sides.",
		price:       65000,
		category:    catalogdomain.CategoryPremium,
		emoji:       "🔥",
		badge:       "Chef's Choice",
		items:       []string{"2x premium kota", "Boerewors", "6x wings", "2x russians", "Chips", "Chakalaka"},
	},
}

// EnsureCatalog seeds the default packages on a fresh database. It is
// idempotent: a non-empty products table is left untouched. The id
// generator is the process-wide node; seeding must not mint ids from a
// second node sharing the same node id.
func EnsureCatalog(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if node == nil {
		return errors.New("seed id generator is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&catalogdomain.Product{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		for _, sp := range defaultCatalog {
			product, err := catalogdomain.NewProduct(catalogdomain.NewProductInput{
				ID:          node.Generate(),
				Name:        sp.name,
				Description: sp.description,
				Price:       sp.price,
				Category:    sp.category,
				Emoji:       sp.emoji,
				Badge:       sp.badge,
				Items:       sp.items,
				Active:      true,
				Now:         now,
			})
			if err != nil {
				return err
			}
			if err := tx.Create(product).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
