package domain

import (
	"context"
	"encoding/json"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	GetByReference(ctx context.Context, reference string) (*Response, error)
	UpdateStatus(ctx context.Context, id string, next Status) (*Response, error)
	UpdatePaymentStatus(ctx context.Context, id string, next PaymentStatus) (*Response, error)
}

// ItemInput is one client-submitted order line. Quantity stays a
// json.Number until the pricing policy validates it, so a fractional or
// out-of-range value fails with InvalidQuantityError instead of being
// silently truncated. Any client-submitted price is ignored outright.
type ItemInput struct {
	ProductID string      `json:"product_id"`
	Quantity  json.Number `json:"quantity"`
}

type CreateRequest struct {
	Customer      CustomerDetails `json:"customer_details"`
	Address       DeliveryAddress `json:"delivery_address"`
	Items         []ItemInput     `json:"items"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
}

// ItemResponse mirrors Item with a display price.
type ItemResponse struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	PriceDisplay string `json:"price_display"`
	Quantity     int    `json:"quantity"`
	Total        int64  `json:"total"`
	TotalDisplay string `json:"total_display"`
}

// Response is the outbound order representation: every persisted field
// plus display strings for the money amounts.
type Response struct {
	ID                 string          `json:"id"`
	ReferenceNumber    string          `json:"reference_number"`
	Customer           CustomerDetails `json:"customer_details"`
	Address            DeliveryAddress `json:"delivery_address"`
	Items              []ItemResponse  `json:"items"`
	Subtotal           int64           `json:"subtotal"`
	SubtotalDisplay    string          `json:"subtotal_display"`
	DeliveryFee        int64           `json:"delivery_fee"`
	DeliveryFeeDisplay string          `json:"delivery_fee_display"`
	Total              int64           `json:"total"`
	TotalDisplay       string          `json:"total_display"`
	PaymentMethod      PaymentMethod   `json:"payment_method"`
	PaymentStatus      PaymentStatus   `json:"payment_status"`
	Status             Status          `json:"status"`
	Notes              string          `json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
