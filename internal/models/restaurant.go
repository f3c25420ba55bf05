package models

import (
	"time"

	"github.com/wasel-app/wasel-api/internal/availability"
)

// Restaurant is the schedule-bearing restaurant record.
type Restaurant struct {
	ID       string `db:"id" json:"id"`
	VendorID string `db:"vendor_id" json:"vendor_id"`
	Name     string `db:"name" json:"name"`
	NameAr   string `db:"name_ar" json:"name_ar"`
	Phone    string `db:"phone" json:"phone"`
	Address  string `db:"address" json:"address"`

	// Availability fields. IsOpen is the staff toggle; IsTemporarilyClosed is
	// an independent override (e.g. out of ingredients). Opening and closing
	// times are "HH:MM"; working days is a comma-separated weekday list
	// (0 = Sunday). Empty values fall back to the resolver defaults.
	IsOpen               bool    `db:"is_open" json:"is_open"`
	IsTemporarilyClosed  bool    `db:"is_temporarily_closed" json:"is_temporarily_closed"`
	TemporaryCloseReason *string `db:"temporary_close_reason" json:"temporary_close_reason,omitempty"`
	OpeningTime          string  `db:"opening_time" json:"opening_time"`
	ClosingTime          string  `db:"closing_time" json:"closing_time"`
	WorkingDays          string  `db:"working_days" json:"working_days"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Schedule projects the record onto the availability resolver's input.
func (r *Restaurant) Schedule() availability.Schedule {
	reason := ""
	if r.TemporaryCloseReason != nil {
		reason = *r.TemporaryCloseReason
	}
	return availability.Schedule{
		ManualOpen:           r.IsOpen,
		TemporarilyClosed:    r.IsTemporarilyClosed,
		TemporaryCloseReason: reason,
		OpeningTime:          r.OpeningTime,
		ClosingTime:          r.ClosingTime,
		WorkingDays:          r.WorkingDays,
	}
}

// RestaurantFilter captures listing criteria.
type RestaurantFilter struct {
	Search   string
	VendorID *string
	Page     int
	PageSize int
}
