package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lebokota/storefront/internal/validation"
	"gorm.io/datatypes"
)

// DeliveryFee is the flat fee applied to every order, in rand cents.
const DeliveryFee int64 = 5000

// Quantity bounds per order line.
const (
	MinQuantity = 1
	MaxQuantity = 50
)

// PaymentMethod is how the customer intends to settle the order.
type PaymentMethod string

const (
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentMobileMoney  PaymentMethod = "mobile_money"
	PaymentCard         PaymentMethod = "card"
	PaymentPayfast      PaymentMethod = "payfast"
)

// ValidPaymentMethod reports whether the value is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentBankTransfer, PaymentMobileMoney, PaymentCard, PaymentPayfast:
		return true
	default:
		return false
	}
}

// CustomerDetails identifies who placed the order.
type CustomerDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// DeliveryAddress is where the order ships.
type DeliveryAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
}

// Item is one order line. Name and Price are copied from the catalog row
// at creation time, never from client input, and are immutable thereafter.
type Item struct {
	ProductID snowflake.ID `json:"product_id"`
	Name      string       `json:"name"`
	Price     int64        `json:"price"`
	Quantity  int          `json:"quantity"`
	Total     int64        `json:"total"`
}

// Order is the order aggregate. After creation its item list and totals
// never change; the only permitted mutations are the status and payment
// status transitions, which makes the row an append-only audit trail keyed
// by updated_at.
type Order struct {
	ID              snowflake.ID                           `json:"id" gorm:"primaryKey"`
	ReferenceNumber string                                 `json:"reference_number" gorm:"type:text;not null;uniqueIndex:ux_orders_reference"`
	Customer        datatypes.JSONType[CustomerDetails]    `json:"customer_details" gorm:"column:customer_details;not null"`
	Address         datatypes.JSONType[DeliveryAddress]    `json:"delivery_address" gorm:"column:delivery_address;not null"`
	Items           datatypes.JSONSlice[Item]              `json:"items" gorm:"not null"`
	Subtotal        int64                                  `json:"subtotal" gorm:"not null"`
	DeliveryFee     int64                                  `json:"delivery_fee" gorm:"not null"`
	Total           int64                                  `json:"total" gorm:"not null"`
	PaymentMethod   PaymentMethod                          `json:"payment_method" gorm:"type:text;not null"`
	PaymentStatus   PaymentStatus                          `json:"payment_status" gorm:"type:text;not null;default:'pending'"`
	Status          Status                                 `json:"status" gorm:"type:text;not null;default:'pending'"`
	Notes           string                                 `json:"notes" gorm:"type:text"`
	CreatedAt       time.Time                              `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time                              `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Order) TableName() string { return "orders" }

// CalculateTotals sums the given items and applies the delivery fee. It is
// pure: no lookups, integer arithmetic only. It trusts the Price on each
// item, so callers must only pass items whose prices were resolved from
// the catalog.
func CalculateTotals(items []Item, deliveryFee int64) (subtotal, total int64) {
	for _, item := range items {
		subtotal += item.Price * int64(item.Quantity)
	}
	return subtotal, subtotal + deliveryFee
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// NewOrderInput is the property bag for constructing an Order.
type NewOrderInput struct {
	ID              snowflake.ID
	ReferenceNumber string
	Customer        CustomerDetails
	Address         DeliveryAddress
	Items           []Item
	DeliveryFee     int64
	PaymentMethod   PaymentMethod
	Notes           string
	Now             time.Time
}

// NewOrder constructs a validated Order with both state machines in their
// initial pending state. Validation is independent of the pricing policy:
// even server-priced items pass through these checks again. Failures are
// aggregated into a single *validation.Error and the Order is never
// constructed.
func NewOrder(in NewOrderInput) (*Order, error) {
	var vc validation.Collector

	if len(strings.TrimSpace(in.Customer.FirstName)) < 2 {
		vc.Add("customer_details.first_name", "invalid_first_name", "first name must be at least 2 characters")
	}
	if len(strings.TrimSpace(in.Customer.LastName)) < 2 {
		vc.Add("customer_details.last_name", "invalid_last_name", "last name must be at least 2 characters")
	}
	if !emailRe.MatchString(strings.TrimSpace(in.Customer.Email)) {
		vc.Add("customer_details.email", "invalid_email", "email address is not valid")
	}
	if len(strings.TrimSpace(in.Customer.Phone)) < 10 {
		vc.Add("customer_details.phone", "invalid_phone", "phone number must be at least 10 characters")
	}

	if strings.TrimSpace(in.Address.Street) == "" {
		vc.Add("delivery_address.street", "invalid_street", "street is required")
	}
	if strings.TrimSpace(in.Address.City) == "" {
		vc.Add("delivery_address.city", "invalid_city", "city is required")
	}
	if strings.TrimSpace(in.Address.Province) == "" {
		vc.Add("delivery_address.province", "invalid_province", "province is required")
	}
	if strings.TrimSpace(in.Address.PostalCode) == "" {
		vc.Add("delivery_address.postal_code", "invalid_postal_code", "postal code is required")
	}

	if len(in.Items) == 0 {
		vc.Add("items", "invalid_items", "order must contain at least one item")
	}
	if !ValidPaymentMethod(in.PaymentMethod) {
		vc.Add("payment_method", "invalid_payment_method", "payment method must be one of bank_transfer, mobile_money, card, payfast")
	}

	subtotal, total := CalculateTotals(in.Items, in.DeliveryFee)
	if total <= 0 {
		vc.Add("total", "invalid_total", "order total must be greater than zero")
	}

	if err := vc.Err(); err != nil {
		return nil, err
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	reference := in.ReferenceNumber
	if reference == "" {
		reference = NewReferenceNumber(now)
	}

	return &Order{
		ID:              in.ID,
		ReferenceNumber: reference,
		Customer:        datatypes.NewJSONType(in.Customer),
		Address:         datatypes.NewJSONType(in.Address),
		Items:           datatypes.NewJSONSlice(in.Items),
		Subtotal:        subtotal,
		DeliveryFee:     in.DeliveryFee,
		Total:           total,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   PaymentPending,
		Status:          StatusPending,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}
