package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/wasel-app/wasel-api/internal/models"
)

// OrderRepository persists orders.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository constructs the repository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, restaurant_id, customer_id, status, total, note, created_at, updated_at`

// Create inserts an order row.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	const query = `INSERT INTO orders
(id, restaurant_id, customer_id, status, total, note, created_at, updated_at)
VALUES (:id, :restaurant_id, :customer_id, :status, :total, :note, :created_at, :updated_at)`
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now
	if _, err := r.db.NamedExecContext(ctx, query, order); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// FindByID fetches a single order.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)
	var order models.Order
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus moves an order from one status to another. The current status
// is part of the predicate so concurrent updates cannot skip a transition.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus) error {
	const query = `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`
	result, err := r.db.ExecContext(ctx, query, to, time.Now().UTC(), id, from)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return requireRowAffected(result, "order")
}

// ListByRestaurant returns the restaurant's orders, newest first.
func (r *OrderRepository) ListByRestaurant(ctx context.Context, restaurantID string, page, pageSize int) ([]models.Order, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM orders WHERE restaurant_id = $1`, restaurantID); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	query := fmt.Sprintf(`SELECT %s FROM orders WHERE restaurant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, orderColumns)
	var orders []models.Order
	if err := r.db.SelectContext(ctx, &orders, query, restaurantID, pageSize, (page-1)*pageSize); err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}
