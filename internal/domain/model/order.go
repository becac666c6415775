package model

import "time"

// Status is the internal two-valued order status domain. Every upstream
// provider status collapses onto it.
type Status string

const (
	// StatusOrders marks an order that is still active (pending delivery).
	StatusOrders Status = "orders"
	// StatusDelivered is the terminal status, covering both delivered and
	// cancelled upstream orders.
	StatusDelivered Status = "delivered"
)

// Valid reports whether s belongs to the closed status set.
func (s Status) Valid() bool {
	return s == StatusOrders || s == StatusDelivered
}

// GeoPoint carries raw delivery coordinates from the upstream record.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Order describes one delivery request as exposed to presentation.
// Instances are owned by the order store; everything else reads copies.
type Order struct {
	ID              string
	OrderNumber     string
	CustomerName    string
	CustomerPhone   string
	OrderItem       string
	DeliveryAddress string
	PickupAddress   string
	Notes           string
	Amount          float64
	Status          Status
	CreatedAt       time.Time
	ReceivedAt      *time.Time
	DeliveredAt     *time.Time
	UpdatedAt       time.Time

	// Location keeps the upstream coordinates, when present, so
	// presentation can build map links without re-reading the raw record.
	Location *GeoPoint
}
