package store

import (
	"time"

	"github.com/waytodrive/orderadmin/internal/domain/model"
)

// ChangedBy is the attribution stamped on every history entry. The dashboard
// runs with a single operator identity.
const ChangedBy = "Admin"

// PlanTransition decides how a status change applies to an order. It is a
// pure function: given the order as it currently stands, it returns the
// updated order and the history entry to record, or ok=false when the change
// is a no-op (status unchanged).
//
// Timestamps follow first-transition-wins: receivedAt and deliveredAt are
// stamped only while still unset, never overwritten. The returned history
// entry carries no id; the store assigns one at append time.
func PlanTransition(order model.Order, newStatus model.Status, reason string, now time.Time) (model.Order, model.HistoryEntry, bool) {
	if newStatus == order.Status {
		return order, model.HistoryEntry{}, false
	}

	now = now.UTC()
	previous := order.Status

	order.Status = newStatus
	order.UpdatedAt = now
	if newStatus == model.StatusOrders && order.ReceivedAt == nil {
		received := now
		order.ReceivedAt = &received
	}
	if newStatus == model.StatusDelivered && order.DeliveredAt == nil {
		delivered := now
		order.DeliveredAt = &delivered
	}

	entry := model.HistoryEntry{
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		PreviousStatus: previous,
		NewStatus:      newStatus,
		ChangedBy:      ChangedBy,
		ChangeReason:   reason,
		CreatedAt:      now,
	}
	return order, entry, true
}
