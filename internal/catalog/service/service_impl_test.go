package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	catalogdomain "github.com/lebokota/storefront/internal/catalog/domain"
	catalogrepo "github.com/lebokota/storefront/internal/catalog/repository"
	catalogservice "github.com/lebokota/storefront/internal/catalog/service"
	"github.com/lebokota/storefront/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setup(t *testing.T) (catalogdomain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalogdomain.Product{}))

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)

	svc := catalogservice.New(catalogservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  catalogrepo.Provide(),
	})
	return svc, db
}

func createReq(name, category string, price int64) catalogdomain.CreateRequest {
	return catalogdomain.CreateRequest{
		Name:     name,
		Price:    price,
		Category: category,
		Items:    []string{"Quarter loaf", "Chips"},
	}
}

func TestCreateAndGetProduct(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createReq("Classic Kota", "starter", 10000))
	require.NoError(t, err)
	assert.Equal(t, "R100.00", created.PriceDisplay)
	assert.True(t, created.Active)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, int64(10000), got.Price)
}

func TestCreateProductValidationFails(t *testing.T) {
	svc, db := setup(t)

	_, err := svc.Create(context.Background(), createReq("K", "mega", 0))

	var vErr *validation.Error
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Violations, 3)

	var count int64
	require.NoError(t, db.Model(&catalogdomain.Product{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateInactiveProductStaysInactive(t *testing.T) {
	svc, db := setup(t)
	ctx := context.Background()

	off := false
	req := createReq("Old Special", "starter", 8000)
	req.Active = &off

	created, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.False(t, created.Active)

	// the false must survive the INSERT, not be swallowed as a zero value
	var row catalogdomain.Product
	require.NoError(t, db.First(&row, "name = ?", "Old Special").Error)
	assert.False(t, row.Active)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestListProductsFilters(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createReq("Classic Kota", "starter", 10000))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createReq("Family Feast", "family", 45000))
	require.NoError(t, err)

	inactive := createReq("Old Special", "starter", 8000)
	off := false
	inactive.Active = &off
	_, err = svc.Create(ctx, inactive)
	require.NoError(t, err)

	all, err := svc.List(ctx, catalogdomain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	on := true
	active, err := svc.List(ctx, catalogdomain.ListRequest{Active: &on})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	starters, err := svc.List(ctx, catalogdomain.ListRequest{Category: "starter"})
	require.NoError(t, err)
	assert.Len(t, starters, 2)

	byCategory, err := svc.GetByCategory(ctx, "family")
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Family Feast", byCategory[0].Name)
}

func TestListProductsRejectsUnknownCategory(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.List(context.Background(), catalogdomain.ListRequest{Category: "mega"})
	assert.ErrorIs(t, err, catalogdomain.ErrInvalidCategory)

	_, err = svc.GetByCategory(context.Background(), "mega")
	assert.ErrorIs(t, err, catalogdomain.ErrInvalidCategory)
}

func TestGetProductMisses(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, "not-an-id")
	assert.ErrorIs(t, err, catalogdomain.ErrInvalidID)

	node, err := snowflake.NewNode(4)
	require.NoError(t, err)
	_, err = svc.Get(ctx, node.Generate().String())
	assert.ErrorIs(t, err, catalogdomain.ErrNotFound)
}
