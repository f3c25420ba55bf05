package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/wasel-app/wasel-api/internal/models"
)

// RestaurantRepository persists restaurant records.
type RestaurantRepository struct {
	db *sqlx.DB
}

// NewRestaurantRepository constructs the repository.
func NewRestaurantRepository(db *sqlx.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

const restaurantColumns = `id, vendor_id, name, name_ar, phone, address,
is_open, is_temporarily_closed, temporary_close_reason,
opening_time, closing_time, working_days, created_at, updated_at`

// FindByID fetches a single restaurant.
func (r *RestaurantRepository) FindByID(ctx context.Context, id string) (*models.Restaurant, error) {
	query := fmt.Sprintf(`SELECT %s FROM restaurants WHERE id = $1`, restaurantColumns)
	var restaurant models.Restaurant
	if err := r.db.GetContext(ctx, &restaurant, query, id); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// List returns restaurants matching the filter plus the total count.
func (r *RestaurantRepository) List(ctx context.Context, filter models.RestaurantFilter) ([]models.Restaurant, int, error) {
	where := `WHERE 1=1`
	args := []interface{}{}
	idx := 1
	if filter.Search != "" {
		where += fmt.Sprintf(` AND (name ILIKE $%d OR name_ar ILIKE $%d)`, idx, idx)
		args = append(args, "%"+filter.Search+"%")
		idx++
	}
	if filter.VendorID != nil {
		where += fmt.Sprintf(` AND vendor_id = $%d`, idx)
		args = append(args, *filter.VendorID)
		idx++
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM restaurants %s`, where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count restaurants: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	query := fmt.Sprintf(`SELECT %s FROM restaurants %s ORDER BY name ASC LIMIT $%d OFFSET $%d`,
		restaurantColumns, where, idx, idx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	var restaurants []models.Restaurant
	if err := r.db.SelectContext(ctx, &restaurants, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list restaurants: %w", err)
	}
	return restaurants, total, nil
}

// Create inserts a restaurant row.
func (r *RestaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	const query = `INSERT INTO restaurants
(id, vendor_id, name, name_ar, phone, address, is_open, is_temporarily_closed,
 temporary_close_reason, opening_time, closing_time, working_days, created_at, updated_at)
VALUES (:id, :vendor_id, :name, :name_ar, :phone, :address, :is_open, :is_temporarily_closed,
 :temporary_close_reason, :opening_time, :closing_time, :working_days, :created_at, :updated_at)`
	now := time.Now().UTC()
	restaurant.CreatedAt = now
	restaurant.UpdatedAt = now
	if _, err := r.db.NamedExecContext(ctx, query, restaurant); err != nil {
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

// UpdateSchedule persists the availability fields of the record.
func (r *RestaurantRepository) UpdateSchedule(ctx context.Context, restaurant *models.Restaurant) error {
	const query = `UPDATE restaurants
SET is_open = :is_open, opening_time = :opening_time, closing_time = :closing_time,
    working_days = :working_days, updated_at = :updated_at
WHERE id = :id`
	restaurant.UpdatedAt = time.Now().UTC()
	result, err := r.db.NamedExecContext(ctx, query, restaurant)
	if err != nil {
		return fmt.Errorf("update restaurant schedule: %w", err)
	}
	return requireRowAffected(result, "restaurant")
}

// SetTemporaryClosure flips the temporary-closure override.
func (r *RestaurantRepository) SetTemporaryClosure(ctx context.Context, id string, closed bool, reason *string) error {
	const query = `UPDATE restaurants
SET is_temporarily_closed = $1, temporary_close_reason = $2, updated_at = $3
WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, closed, reason, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("set temporary closure: %w", err)
	}
	return requireRowAffected(result, "restaurant")
}

// Delete removes a restaurant row.
func (r *RestaurantRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	return requireRowAffected(result, "restaurant")
}
