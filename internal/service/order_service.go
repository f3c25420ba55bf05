package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wasel-app/wasel-api/internal/dto"
	"github.com/wasel-app/wasel-api/internal/models"
	appErrors "github.com/wasel-app/wasel-api/pkg/errors"
)

type orderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus) error
	ListByRestaurant(ctx context.Context, restaurantID string, page, pageSize int) ([]models.Order, int, error)
}

// availabilityGate answers whether a restaurant accepts orders right now.
type availabilityGate interface {
	Eligibility(ctx context.Context, restaurantID string, at *time.Time) (*dto.OrderEligibilityResponse, error)
	Get(ctx context.Context, restaurantID string) (*models.Restaurant, error)
}

// OrderService places orders behind the availability gate and moves them
// through their lifecycle.
type OrderService struct {
	repo        orderRepository
	restaurants availabilityGate
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewOrderService constructs an OrderService.
func NewOrderService(repo orderRepository, restaurants availabilityGate, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *OrderService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{repo: repo, restaurants: restaurants, metrics: metrics, validator: validate, logger: logger}
}

// Place creates a new order after the availability gate approves. A closed
// restaurant yields a RESTAURANT_CLOSED error carrying the localized refusal.
func (s *OrderService) Place(ctx context.Context, customerID string, req dto.PlaceOrderRequest) (*models.Order, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid order payload")
	}

	eligibility, err := s.restaurants.Eligibility(ctx, req.RestaurantID, nil)
	if err != nil {
		return nil, err
	}
	if !eligibility.CanOrder {
		if s.metrics != nil {
			s.metrics.RecordOrderRejected()
		}
		return nil, appErrors.Clone(appErrors.ErrRestaurantClosed, eligibility.Message)
	}

	order := &models.Order{
		ID:           uuid.NewString(),
		RestaurantID: req.RestaurantID,
		CustomerID:   customerID,
		Status:       models.OrderPending,
		Total:        req.Total,
	}
	if req.Note != "" {
		note := req.Note
		order.Note = &note
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create order")
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("restaurant_id", order.RestaurantID))
	return order, nil
}

// Get fetches a single order.
func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "order not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch order")
	}
	return order, nil
}

// UpdateStatus advances an order along the lifecycle. Vendors may only touch
// orders belonging to their own restaurant.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, req dto.UpdateOrderStatusRequest, actor *models.JWTClaims) (*models.Order, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	target := models.OrderStatus(req.Status)
	if !models.ValidOrderStatus(target) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown order status")
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor != nil && actor.Role == models.RoleVendor {
		restaurant, err := s.restaurants.Get(ctx, order.RestaurantID)
		if err != nil {
			return nil, err
		}
		if restaurant.VendorID != actor.UserID {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "order belongs to another restaurant")
		}
	}

	if !models.CanTransition(order.Status, target) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition,
			"cannot move order from "+string(order.Status)+" to "+string(target))
	}

	if err := s.repo.UpdateStatus(ctx, id, order.Status, target); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Lost the race: someone else already moved the order.
			return nil, appErrors.Clone(appErrors.ErrConflict, "order status changed concurrently")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update order status")
	}
	order.Status = target
	return order, nil
}

// ListByRestaurant returns a restaurant's orders, newest first.
func (s *OrderService) ListByRestaurant(ctx context.Context, restaurantID string, page, pageSize int) ([]models.Order, *models.Pagination, error) {
	orders, total, err := s.repo.ListByRestaurant(ctx, restaurantID, page, pageSize)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list orders")
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return orders, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}
