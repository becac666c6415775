package dto

import "time"

// OrderResponse represents one order row of the dashboard.
type OrderResponse struct {
	ID              string     `json:"id"`
	OrderNumber     string     `json:"order_number"`
	CustomerName    string     `json:"customer_name"`
	CustomerPhone   string     `json:"customer_phone"`
	OrderItem       string     `json:"order_item"`
	DeliveryAddress string     `json:"delivery_address"`
	PickupAddress   string     `json:"pickup_address"`
	Notes           string     `json:"notes,omitempty"`
	Amount          float64    `json:"amount"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	ReceivedAt      *time.Time `json:"received_at"`
	DeliveredAt     *time.Time `json:"delivered_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	MapsURL         string     `json:"maps_url"`
}

// CreateOrderRequest carries operator-entered fields for a new order.
type CreateOrderRequest struct {
	CustomerName    string  `json:"customer_name"`
	CustomerPhone   string  `json:"customer_phone"`
	DeliveryAddress string  `json:"delivery_address"`
	OrderItem       string  `json:"order_item"`
	Notes           string  `json:"notes"`
	Amount          float64 `json:"amount"`
}

// UpdateStatusRequest asks for a status transition on one order.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// TransitionResponse reports a transition outcome. Applied is false for a
// no-op (status already current).
type TransitionResponse struct {
	Applied bool          `json:"applied"`
	Order   OrderResponse `json:"order"`
	Entry   *HistoryEntry `json:"history_entry,omitempty"`
}

// StatusOptionResponse is one row of the static status lookup table.
type StatusOptionResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// FeedStatusResponse exposes the store's connectivity state.
type FeedStatusResponse struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}
