package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wasel-app/wasel-api/internal/dto"
	"github.com/wasel-app/wasel-api/internal/models"
	appErrors "github.com/wasel-app/wasel-api/pkg/errors"
	"github.com/wasel-app/wasel-api/pkg/response"
)

type orderService interface {
	Place(ctx context.Context, customerID string, req dto.PlaceOrderRequest) (*models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateOrderStatusRequest, actor *models.JWTClaims) (*models.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID string, page, pageSize int) ([]models.Order, *models.Pagination, error)
}

// OrderHandler exposes order placement and lifecycle endpoints.
type OrderHandler struct {
	service orderService
}

// NewOrderHandler builds a new handler.
func NewOrderHandler(service orderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Place godoc
// @Summary Place an order
// @Tags Orders
// @Accept json
// @Produce json
// @Param payload body dto.PlaceOrderRequest true "Order payload"
// @Success 201 {object} response.Envelope
// @Router /orders [post]
func (h *OrderHandler) Place(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid order payload"))
		return
	}
	order, err := h.service.Place(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, order)
}

// Get godoc
// @Summary Fetch an order
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.Envelope
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	order, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if claims != nil && claims.Role == models.RoleCustomer && order.CustomerID != claims.UserID {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "order belongs to another customer"))
		return
	}
	response.JSON(c, http.StatusOK, order, nil)
}

// UpdateStatus godoc
// @Summary Advance an order along its lifecycle
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param payload body dto.UpdateOrderStatusRequest true "Target status"
// @Success 200 {object} response.Envelope
// @Router /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}
	order, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, order, nil)
}

// ListByRestaurant godoc
// @Summary List a restaurant's orders
// @Tags Orders
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /restaurants/{id}/orders [get]
func (h *OrderHandler) ListByRestaurant(c *gin.Context) {
	page, pageSize := pageFromQuery(c)
	orders, pagination, err := h.service.ListByRestaurant(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, orders, pagination)
}
