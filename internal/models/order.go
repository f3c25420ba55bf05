package models

import "time"

// OrderStatus is the explicit order lifecycle state. Transitions are guarded
// by the table below rather than free-form field updates.
type OrderStatus string

const (
	OrderPending        OrderStatus = "PENDING"
	OrderAccepted       OrderStatus = "ACCEPTED"
	OrderPreparing      OrderStatus = "PREPARING"
	OrderOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderDelivered      OrderStatus = "DELIVERED"
	OrderCancelled      OrderStatus = "CANCELLED"
)

var orderTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderPending:        {OrderAccepted: true, OrderCancelled: true},
	OrderAccepted:       {OrderPreparing: true, OrderCancelled: true},
	OrderPreparing:      {OrderOutForDelivery: true, OrderCancelled: true},
	OrderOutForDelivery: {OrderDelivered: true},
	OrderDelivered:      {},
	OrderCancelled:      {},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to OrderStatus) bool {
	return orderTransitions[from][to]
}

// ValidOrderStatus reports whether the value is a known status.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

// Order is a placed order. Rows are only created after the availability gate
// has approved the restaurant.
type Order struct {
	ID           string      `db:"id" json:"id"`
	RestaurantID string      `db:"restaurant_id" json:"restaurant_id"`
	CustomerID   string      `db:"customer_id" json:"customer_id"`
	Status       OrderStatus `db:"status" json:"status"`
	Total        float64     `db:"total" json:"total"`
	Note         *string     `db:"note" json:"note,omitempty"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}
