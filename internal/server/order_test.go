package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/lebokota/storefront/internal/catalog/domain"
	"github.com/lebokota/storefront/internal/config"
	"github.com/lebokota/storefront/internal/observability"
	obsmetrics "github.com/lebokota/storefront/internal/observability/metrics"
	orderdomain "github.com/lebokota/storefront/internal/order/domain"
	"github.com/lebokota/storefront/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOrderService struct {
	createErr error
	updateErr error
	resp      *orderdomain.Response
	lastNext  orderdomain.Status
}

func (f *fakeOrderService) Create(ctx context.Context, req orderdomain.CreateRequest) (*orderdomain.Response, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.resp, nil
}

func (f *fakeOrderService) Get(ctx context.Context, id string) (*orderdomain.Response, error) {
	if f.resp == nil {
		return nil, orderdomain.ErrNotFound
	}
	return f.resp, nil
}

func (f *fakeOrderService) GetByReference(ctx context.Context, reference string) (*orderdomain.Response, error) {
	if f.resp == nil {
		return nil, orderdomain.ErrNotFound
	}
	return f.resp, nil
}

func (f *fakeOrderService) UpdateStatus(ctx context.Context, id string, next orderdomain.Status) (*orderdomain.Response, error) {
	f.lastNext = next
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.resp, nil
}

func (f *fakeOrderService) UpdatePaymentStatus(ctx context.Context, id string, next orderdomain.PaymentStatus) (*orderdomain.Response, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.resp, nil
}

type fakeCatalogService struct{}

func (fakeCatalogService) Create(ctx context.Context, req catalogdomain.CreateRequest) (*catalogdomain.Response, error) {
	return &catalogdomain.Response{}, nil
}

func (fakeCatalogService) List(ctx context.Context, req catalogdomain.ListRequest) ([]catalogdomain.Response, error) {
	return nil, nil
}

func (fakeCatalogService) Get(ctx context.Context, id string) (*catalogdomain.Response, error) {
	return nil, catalogdomain.ErrNotFound
}

func (fakeCatalogService) GetByCategory(ctx context.Context, category string) ([]catalogdomain.Response, error) {
	return nil, nil
}

var testMetricsOnce = obsmetrics.NewHTTPMetrics()

func newTestServer(t *testing.T, orderSvc orderdomain.Service) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := NewEngine(observability.Config{LogLevel: "error"}, testMetricsOnce)
	s := NewServer(ServerParams{
		Engine:     engine,
		Cfg:        config.Config{},
		Log:        zap.NewNop(),
		CatalogSvc: fakeCatalogService{},
		OrderSvc:   orderSvc,
	})
	registerRoutes(s)
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrderReturns201(t *testing.T) {
	svc := &fakeOrderService{resp: &orderdomain.Response{ReferenceNumber: "LEBO-TEST1-ABCDE"}}
	s := newTestServer(t, svc)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/orders", map[string]any{
		"items": []map[string]any{{"product_id": "1", "quantity": 2}},
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "LEBO-TEST1-ABCDE")
}

func TestCreateOrderMapsValidationError(t *testing.T) {
	svc := &fakeOrderService{createErr: &validation.Error{Violations: []validation.Violation{
		{Field: "customer_details.email", Code: "invalid_email", Message: "email address is not valid"},
	}}}
	s := newTestServer(t, svc)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/orders", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
	assert.Contains(t, rec.Body.String(), "invalid_email")
}

func TestCreateOrderMapsProductNotFound(t *testing.T) {
	svc := &fakeOrderService{createErr: &orderdomain.ProductNotFoundError{ProductID: "99"}}
	s := newTestServer(t, svc)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/orders", map[string]any{})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "product_not_found")
}

func TestUpdateStatusMapsInvalidTransition(t *testing.T) {
	svc := &fakeOrderService{updateErr: &orderdomain.InvalidTransitionError{
		Kind: orderdomain.TransitionKindStatus, From: "pending", To: "delivered",
	}}
	s := newTestServer(t, svc)

	rec := doJSON(t, s, http.MethodPatch, "/api/v1/orders/1/status", map[string]any{
		"status": "delivered",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_transition")
	assert.Equal(t, orderdomain.StatusDelivered, svc.lastNext)
}

func TestUpdateStatusRejectsUnknownState(t *testing.T) {
	svc := &fakeOrderService{resp: &orderdomain.Response{}}
	s := newTestServer(t, svc)

	rec := doJSON(t, s, http.MethodPatch, "/api/v1/orders/1/status", map[string]any{
		"status": "teleported",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderNotFound(t *testing.T) {
	svc := &fakeOrderService{}
	s := newTestServer(t, svc)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/orders/123", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}
