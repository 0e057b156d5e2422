package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	GetByCategory(ctx context.Context, category string) ([]Response, error)
}

type CreateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Category    string   `json:"category"`
	Emoji       string   `json:"emoji"`
	Badge       string   `json:"badge"`
	Items       []string `json:"items"`
	Active      *bool    `json:"is_active"`
}

type ListRequest struct {
	Category string
	Active   *bool
}

// Response includes both the raw minor-unit price and its display string.
type Response struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Price        int64     `json:"price"`
	PriceDisplay string    `json:"price_display"`
	Category     Category  `json:"category"`
	Emoji        string    `json:"emoji,omitempty"`
	Badge        string    `json:"badge,omitempty"`
	Items        []string  `json:"items"`
	Active       bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var (
	ErrNotFound        = errors.New("product_not_found")
	ErrInvalidID       = errors.New("invalid_product_id")
	ErrInvalidCategory = errors.New("invalid_category")
)
