package model

import "time"

// HistoryEntry is an immutable audit record of one status transition.
// Entries are created once by the order store and never mutated.
type HistoryEntry struct {
	ID             int64
	OrderID        string
	OrderNumber    string
	PreviousStatus Status
	NewStatus      Status
	ChangedBy      string
	ChangeReason   string
	CreatedAt      time.Time
}
