package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/lebokota/storefront/internal/order/domain"
)

// createOrderRequest is the inbound checkout shape. A client may submit a
// price on an item; it is never read — pricing always resolves from the
// catalog.
type createOrderRequest struct {
	Customer orderdomain.CustomerDetails `json:"customer_details"`
	Address  orderdomain.DeliveryAddress `json:"delivery_address"`
	Items    []struct {
		ProductID string      `json:"product_id"`
		Quantity  json.Number `json:"quantity"`
		Price     json.Number `json:"price"` // ignored
	} `json:"items"`
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

func (s *Server) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	items := make([]orderdomain.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orderdomain.ItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	resp, err := s.orderSvc.Create(c.Request.Context(), orderdomain.CreateRequest{
		Customer:      req.Customer,
		Address:       req.Address,
		Items:         items,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetOrderByID(c *gin.Context) {
	resp, err := s.orderSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOrderByReference(c *gin.Context) {
	resp, err := s.orderSvc.GetByReference(c.Request.Context(), strings.TrimSpace(c.Param("reference")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) UpdateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	next := orderdomain.Status(strings.ToLower(strings.TrimSpace(req.Status)))
	if !orderdomain.ValidStatus(next) {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.orderSvc.UpdateStatus(c.Request.Context(), strings.TrimSpace(c.Param("id")), next)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
}

func (s *Server) UpdateOrderPaymentStatus(c *gin.Context) {
	var req updatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	next := orderdomain.PaymentStatus(strings.ToLower(strings.TrimSpace(req.PaymentStatus)))
	if !orderdomain.ValidPaymentStatus(next) {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.orderSvc.UpdatePaymentStatus(c.Request.Context(), strings.TrimSpace(c.Param("id")), next)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
