package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lebokota/storefront/internal/money"
	"github.com/lebokota/storefront/internal/validation"
	"gorm.io/datatypes"
)

// Category groups catalog packages by size.
type Category string

const (
	CategoryStarter Category = "starter"
	CategoryFamily  Category = "family"
	CategoryPremium Category = "premium"
)

// ValidCategory reports whether the value is one of the known categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryStarter, CategoryFamily, CategoryPremium:
		return true
	default:
		return false
	}
}

// Product is a purchasable catalog package. Price is the authoritative
// amount in rand cents; order pricing always resolves against it and never
// against anything a client submits.
type Product struct {
	ID          snowflake.ID                `json:"id" gorm:"primaryKey"`
	Name        string                      `json:"name" gorm:"type:text;not null"`
	Description string                      `json:"description" gorm:"type:text"`
	Price       int64                       `json:"price" gorm:"not null"`
	Category    Category                    `json:"category" gorm:"type:text;not null;index"`
	Emoji       string                      `json:"emoji" gorm:"type:text"`
	Badge       string                      `json:"badge" gorm:"type:text"`
	Items       datatypes.JSONSlice[string] `json:"items" gorm:"not null"`
	Active      bool                        `json:"is_active" gorm:"column:is_active;not null"`
	CreatedAt   time.Time                   `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time                   `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Product) TableName() string { return "products" }

// NewProductInput is the property bag for constructing a Product.
type NewProductInput struct {
	ID          snowflake.ID
	Name        string
	Description string
	Price       int64
	Category    Category
	Emoji       string
	Badge       string
	Items       []string
	Active      bool
	Now         time.Time
}

// NewProduct constructs a validated Product. It fails fast with an
// aggregated *validation.Error listing every violated rule; a Product that
// fails validation is never constructed.
func NewProduct(in NewProductInput) (*Product, error) {
	var vc validation.Collector

	name := strings.TrimSpace(in.Name)
	if len(name) < 2 {
		vc.Add("name", "invalid_name", "name must be at least 2 characters")
	}
	if in.Price <= 0 {
		vc.Add("price", "invalid_price", "price must be greater than zero")
	}
	if !ValidCategory(in.Category) {
		vc.Add("category", "invalid_category", "category must be one of starter, family, premium")
	}
	if len(in.Items) == 0 {
		vc.Add("items", "invalid_items", "package items must not be empty")
	}
	if err := vc.Err(); err != nil {
		return nil, err
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	return &Product{
		ID:          in.ID,
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Emoji:       in.Emoji,
		Badge:       in.Badge,
		Items:       datatypes.NewJSONSlice(in.Items),
		Active:      in.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Available reports whether the product can be purchased.
func (p *Product) Available() bool {
	return p.Active
}

// DisplayPrice renders the price in rand, e.g. "R250.00".
func (p *Product) DisplayPrice() string {
	return money.Format(p.Price)
}
