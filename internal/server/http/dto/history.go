package dto

import "time"

// HistoryEntry describes one recorded status transition.
type HistoryEntry struct {
	ID             int64     `json:"id"`
	OrderID        string    `json:"order_id"`
	OrderNumber    string    `json:"order_number"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	ChangedBy      string    `json:"changed_by"`
	ChangeReason   string    `json:"change_reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
