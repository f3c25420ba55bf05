package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasel-app/wasel-api/internal/dto"
	"github.com/wasel-app/wasel-api/internal/models"
	appErrors "github.com/wasel-app/wasel-api/pkg/errors"
)

type orderRepoStub struct {
	orders        map[string]*models.Order
	err           error
	updateErr     error
	statusUpdates int
}

func (s *orderRepoStub) Create(ctx context.Context, order *models.Order) error {
	if s.err != nil {
		return s.err
	}
	if s.orders == nil {
		s.orders = make(map[string]*models.Order)
	}
	copy := *order
	s.orders[order.ID] = &copy
	return nil
}

func (s *orderRepoStub) FindByID(ctx context.Context, id string) (*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	if order, ok := s.orders[id]; ok {
		copy := *order
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (s *orderRepoStub) UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	order, ok := s.orders[id]
	if !ok || order.Status != from {
		return sql.ErrNoRows
	}
	order.Status = to
	s.statusUpdates++
	return nil
}

func (s *orderRepoStub) ListByRestaurant(ctx context.Context, restaurantID string, page, pageSize int) ([]models.Order, int, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	result := []models.Order{}
	for _, order := range s.orders {
		if order.RestaurantID == restaurantID {
			result = append(result, *order)
		}
	}
	return result, len(result), nil
}

type gateStub struct {
	canOrder   bool
	message    string
	restaurant *models.Restaurant
	err        error
}

func (g *gateStub) Eligibility(ctx context.Context, restaurantID string, at *time.Time) (*dto.OrderEligibilityResponse, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &dto.OrderEligibilityResponse{
		RestaurantID: restaurantID,
		CanOrder:     g.canOrder,
		Message:      g.message,
	}, nil
}

func (g *gateStub) Get(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	if g.restaurant == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "restaurant not found")
	}
	return g.restaurant, nil
}

func TestOrderServicePlaceApproved(t *testing.T) {
	repo := &orderRepoStub{}
	gate := &gateStub{canOrder: true}
	service := NewOrderService(repo, gate, nil, validator.New(), nil)

	order, err := service.Place(context.Background(), "cust-1", dto.PlaceOrderRequest{
		RestaurantID: uuid.NewString(),
		Total:        42.50,
		Note:         "no onions",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, "cust-1", order.CustomerID)
	require.NotNil(t, order.Note)
	assert.Equal(t, "no onions", *order.Note)
	assert.Len(t, repo.orders, 1)
}

func TestOrderServicePlaceRejectedWhenClosed(t *testing.T) {
	repo := &orderRepoStub{}
	gate := &gateStub{canOrder: false, message: "عذراً، لا يمكنك الطلب الآن. المطعم مغلق حالياً"}
	service := NewOrderService(repo, gate, nil, validator.New(), nil)

	_, err := service.Place(context.Background(), "cust-1", dto.PlaceOrderRequest{
		RestaurantID: uuid.NewString(),
		Total:        15,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrRestaurantClosed.Code, appErr.Code)
	assert.Equal(t, gate.message, appErr.Message)
	assert.Empty(t, repo.orders)
}

func TestOrderServicePlaceValidatesPayload(t *testing.T) {
	service := NewOrderService(&orderRepoStub{}, &gateStub{canOrder: true}, nil, validator.New(), nil)

	_, err := service.Place(context.Background(), "cust-1", dto.PlaceOrderRequest{
		RestaurantID: "not-a-uuid",
		Total:        10,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestOrderServiceUpdateStatusHappyPath(t *testing.T) {
	repo := &orderRepoStub{orders: map[string]*models.Order{
		"order-1": {ID: "order-1", RestaurantID: "rest-1", Status: models.OrderPending},
	}}
	service := NewOrderService(repo, &gateStub{}, nil, validator.New(), nil)

	order, err := service.UpdateStatus(context.Background(), "order-1", dto.UpdateOrderStatusRequest{Status: "ACCEPTED"}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.OrderAccepted, order.Status)
	assert.Equal(t, 1, repo.statusUpdates)
}

func TestOrderServiceUpdateStatusInvalidTransition(t *testing.T) {
	repo := &orderRepoStub{orders: map[string]*models.Order{
		"order-1": {ID: "order-1", Status: models.OrderDelivered},
	}}
	service := NewOrderService(repo, &gateStub{}, nil, validator.New(), nil)

	_, err := service.UpdateStatus(context.Background(), "order-1", dto.UpdateOrderStatusRequest{Status: "CANCELLED"}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidTransition.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, repo.statusUpdates)
}

func TestOrderServiceUpdateStatusUnknownStatus(t *testing.T) {
	repo := &orderRepoStub{orders: map[string]*models.Order{
		"order-1": {ID: "order-1", Status: models.OrderPending},
	}}
	service := NewOrderService(repo, &gateStub{}, nil, validator.New(), nil)

	_, err := service.UpdateStatus(context.Background(), "order-1", dto.UpdateOrderStatusRequest{Status: "SHIPPED"}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestOrderServiceUpdateStatusVendorOwnership(t *testing.T) {
	repo := &orderRepoStub{orders: map[string]*models.Order{
		"order-1": {ID: "order-1", RestaurantID: "rest-1", Status: models.OrderPending},
	}}
	gate := &gateStub{restaurant: &models.Restaurant{ID: "rest-1", VendorID: "vendor-1"}}
	service := NewOrderService(repo, gate, nil, validator.New(), nil)

	actor := &models.JWTClaims{UserID: "vendor-2", Role: models.RoleVendor}
	_, err := service.UpdateStatus(context.Background(), "order-1", dto.UpdateOrderStatusRequest{Status: "ACCEPTED"}, actor)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	owner := &models.JWTClaims{UserID: "vendor-1", Role: models.RoleVendor}
	order, err := service.UpdateStatus(context.Background(), "order-1", dto.UpdateOrderStatusRequest{Status: "ACCEPTED"}, owner)
	require.NoError(t, err)
	assert.Equal(t, models.OrderAccepted, order.Status)
}

func TestOrderServiceUpdateStatusConcurrentChange(t *testing.T) {
	repo := &orderRepoStub{
		orders: map[string]*models.Order{
			"order-1": {ID: "order-1", Status: models.OrderPending},
		},
		updateErr: sql.ErrNoRows,
	}
	service := NewOrderService(repo, &gateStub{}, nil, validator.New(), nil)

	_, err := service.UpdateStatus(context.Background(), "order-1", dto.UpdateOrderStatusRequest{Status: "ACCEPTED"}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}
