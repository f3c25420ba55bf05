package dto

// PlaceOrderRequest creates an order after the availability gate approves.
type PlaceOrderRequest struct {
	RestaurantID string  `json:"restaurant_id" validate:"required,uuid4"`
	Total        float64 `json:"total" validate:"required,gt=0"`
	Note         string  `json:"note"`
}

// UpdateOrderStatusRequest moves an order along its lifecycle.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
