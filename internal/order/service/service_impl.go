package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/lebokota/storefront/internal/catalog/domain"
	"github.com/lebokota/storefront/internal/money"
	orderdomain "github.com/lebokota/storefront/internal/order/domain"
	"github.com/lebokota/storefront/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        orderdomain.Repository
	CatalogRepo catalogdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        orderdomain.Repository
	catalogRepo catalogdomain.Repository
}

func New(p Params) orderdomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("order.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		catalogRepo: p.CatalogRepo,
	}
}

// Create runs the pricing policy over the submitted items, constructs the
// order and persists it. Any per-item failure aborts the whole call before
// anything touches storage.
func (s *Service) Create(ctx context.Context, req orderdomain.CreateRequest) (*orderdomain.Response, error) {
	items, err := s.priceItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	entity, err := orderdomain.NewOrder(orderdomain.NewOrderInput{
		ID:            s.genID.Generate(),
		Customer:      req.Customer,
		Address:       req.Address,
		Items:         items,
		DeliveryFee:   orderdomain.DeliveryFee,
		PaymentMethod: orderdomain.PaymentMethod(strings.ToLower(strings.TrimSpace(req.PaymentMethod))),
		Notes:         req.Notes,
		Now:           time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, s.db, entity); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, orderdomain.ErrReferenceConflict
		}
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_id", entity.ID.String()),
		zap.String("reference_number", entity.ReferenceNumber),
		zap.Int64("total", entity.Total),
	)

	return toResponse(entity), nil
}

// priceItems is the pricing policy: every emitted line takes its name and
// price from the catalog row it resolves to, in submission order. Client
// submitted prices never enter this path.
func (s *Service) priceItems(ctx context.Context, inputs []orderdomain.ItemInput) ([]orderdomain.Item, error) {
	items := make([]orderdomain.Item, 0, len(inputs))
	for _, input := range inputs {
		rawID := strings.TrimSpace(input.ProductID)
		productID, err := snowflake.ParseString(rawID)
		if err != nil {
			return nil, &orderdomain.ProductNotFoundError{ProductID: rawID}
		}

		product, err := s.catalogRepo.FindByID(ctx, s.db, productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, &orderdomain.ProductNotFoundError{ProductID: rawID}
		}
		if !product.Available() {
			return nil, &orderdomain.ProductUnavailableError{ProductID: rawID, Name: product.Name}
		}

		quantity, err := parseQuantity(input.Quantity.String())
		if err != nil {
			return nil, &orderdomain.InvalidQuantityError{ProductID: rawID, Quantity: input.Quantity.String()}
		}

		items = append(items, orderdomain.Item{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  quantity,
			Total:     product.Price * int64(quantity),
		})
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (*orderdomain.Response, error) {
	entity, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(entity), nil
}

func (s *Service) GetByReference(ctx context.Context, reference string) (*orderdomain.Response, error) {
	entity, err := s.repo.FindByReference(ctx, s.db, strings.TrimSpace(reference))
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, orderdomain.ErrNotFound
	}
	return toResponse(entity), nil
}

// UpdateStatus loads the order, runs the entity's transition guard, then
// persists the new status conditionally on the status it read. Zero rows
// updated means a concurrent transition won; the caller gets a conflict
// instead of a lost update.
func (s *Service) UpdateStatus(ctx context.Context, id string, next orderdomain.Status) (*orderdomain.Response, error) {
	entity, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	prev := entity.Status
	if err := entity.TransitionStatus(next); err != nil {
		return nil, err
	}

	rows, err := s.repo.UpdateStatus(ctx, s.db, entity.ID, prev, entity.Status, entity.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, orderdomain.ErrUpdateConflict
	}

	s.log.Info("order status updated",
		zap.String("order_id", entity.ID.String()),
		zap.String("from", string(prev)),
		zap.String("to", string(entity.Status)),
	)

	return toResponse(entity), nil
}

// UpdatePaymentStatus is the same shape as UpdateStatus but persists the
// order status alongside the payment status, because a payment landing on
// paid auto-confirms a pending order in the same update.
func (s *Service) UpdatePaymentStatus(ctx context.Context, id string, next orderdomain.PaymentStatus) (*orderdomain.Response, error) {
	entity, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	prevPayment := entity.PaymentStatus
	prevStatus := entity.Status
	if err := entity.TransitionPayment(next); err != nil {
		return nil, err
	}

	rows, err := s.repo.UpdatePaymentStatus(ctx, s.db, entity.ID, prevPayment, entity.PaymentStatus, prevStatus, entity.Status, entity.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, orderdomain.ErrUpdateConflict
	}

	s.log.Info("order payment status updated",
		zap.String("order_id", entity.ID.String()),
		zap.String("from", string(prevPayment)),
		zap.String("to", string(entity.PaymentStatus)),
		zap.String("status", string(entity.Status)),
		zap.String("previous_status", string(prevStatus)),
	)

	return toResponse(entity), nil
}

func (s *Service) load(ctx context.Context, id string) (*orderdomain.Order, error) {
	orderID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, orderdomain.ErrInvalidID
	}

	entity, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, orderdomain.ErrNotFound
	}
	return entity, nil
}

var errQuantityRange = errors.New("quantity out of range")

// parseQuantity accepts only whole numbers within the order line bounds.
func parseQuantity(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if n < orderdomain.MinQuantity || n > orderdomain.MaxQuantity {
		return 0, errQuantityRange
	}
	return n, nil
}

func toResponse(o *orderdomain.Order) *orderdomain.Response {
	customer := o.Customer.Data()
	address := o.Address.Data()

	items := make([]orderdomain.ItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderdomain.ItemResponse{
			ProductID:    item.ProductID.String(),
			Name:         item.Name,
			Price:        item.Price,
			PriceDisplay: money.Format(item.Price),
			Quantity:     item.Quantity,
			Total:        item.Total,
			TotalDisplay: money.Format(item.Total),
		})
	}

	return &orderdomain.Response{
		ID:                 o.ID.String(),
		ReferenceNumber:    o.ReferenceNumber,
		Customer:           customer,
		Address:            address,
		Items:              items,
		Subtotal:           o.Subtotal,
		SubtotalDisplay:    money.Format(o.Subtotal),
		DeliveryFee:        o.DeliveryFee,
		DeliveryFeeDisplay: money.Format(o.DeliveryFee),
		Total:              o.Total,
		TotalDisplay:       money.Format(o.Total),
		PaymentMethod:      o.PaymentMethod,
		PaymentStatus:      o.PaymentStatus,
		Status:             o.Status,
		Notes:              o.Notes,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}
