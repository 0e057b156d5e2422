package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/lebokota/storefront/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  catalogdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  catalogdomain.Repository
}

func New(p Params) catalogdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req catalogdomain.CreateRequest) (*catalogdomain.Response, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	entity, err := catalogdomain.NewProduct(catalogdomain.NewProductInput{
		ID:          s.genID.Generate(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    catalogdomain.Category(strings.ToLower(strings.TrimSpace(req.Category))),
		Emoji:       req.Emoji,
		Badge:       req.Badge,
		Items:       req.Items,
		Active:      active,
		Now:         time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, s.db, entity); err != nil {
		return nil, err
	}

	s.log.Info("product created",
		zap.String("product_id", entity.ID.String()),
		zap.String("category", string(entity.Category)),
	)

	return toResponse(entity), nil
}

func (s *Service) List(ctx context.Context, req catalogdomain.ListRequest) ([]catalogdomain.Response, error) {
	filter := catalogdomain.Filter{Active: req.Active}
	if category := strings.ToLower(strings.TrimSpace(req.Category)); category != "" {
		parsed := catalogdomain.Category(category)
		if !catalogdomain.ValidCategory(parsed) {
			return nil, catalogdomain.ErrInvalidCategory
		}
		filter.Category = &parsed
	}

	items, err := s.repo.FindAll(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]catalogdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*catalogdomain.Response, error) {
	productID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, catalogdomain.ErrInvalidID
	}

	entity, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, catalogdomain.ErrNotFound
	}
	return toResponse(entity), nil
}

func (s *Service) GetByCategory(ctx context.Context, category string) ([]catalogdomain.Response, error) {
	parsed := catalogdomain.Category(strings.ToLower(strings.TrimSpace(category)))
	if !catalogdomain.ValidCategory(parsed) {
		return nil, catalogdomain.ErrInvalidCategory
	}

	items, err := s.repo.FindByCategory(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}

	resp := make([]catalogdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

func toResponse(p *catalogdomain.Product) *catalogdomain.Response {
	return &catalogdomain.Response{
		ID:           p.ID.String(),
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		PriceDisplay: p.DisplayPrice(),
		Category:     p.Category,
		Emoji:        p.Emoji,
		Badge:        p.Badge,
		Items:        p.Items,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
