package dto

import "time"

// CreateRestaurantRequest registers a new schedule-bearing restaurant record.
type CreateRestaurantRequest struct {
	Name        string `json:"name" validate:"required"`
	NameAr      string `json:"name_ar"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	VendorID    string `json:"vendor_id"`
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
	WorkingDays string `json:"working_days"`
}

// UpdateScheduleRequest mutates the availability fields of a restaurant.
// Nil fields are left untouched.
type UpdateScheduleRequest struct {
	IsOpen      *bool   `json:"is_open"`
	OpeningTime *string `json:"opening_time"`
	ClosingTime *string `json:"closing_time"`
	WorkingDays *string `json:"working_days"`
}

// TemporaryCloseRequest flips the temporary-closure override on.
type TemporaryCloseRequest struct {
	Reason string `json:"reason"`
}

// RestaurantStatusResponse is the derived availability status. It is computed
// per request and never stored.
type RestaurantStatusResponse struct {
	RestaurantID string    `json:"restaurant_id"`
	IsOpen       bool      `json:"is_open"`
	NextOpenTime string    `json:"next_open_time,omitempty"`
	CloseTime    string    `json:"close_time,omitempty"`
	Message      string    `json:"message"`
	StatusColor  string    `json:"status_color"`
	CheckedAt    time.Time `json:"checked_at"`
}

// OrderEligibilityResponse is the order-gate decision for a restaurant.
type OrderEligibilityResponse struct {
	RestaurantID string    `json:"restaurant_id"`
	CanOrder     bool      `json:"can_order"`
	Message      string    `json:"message,omitempty"`
	CheckedAt    time.Time `json:"checked_at"`
}
