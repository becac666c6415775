package feed

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/waytodrive/orderadmin/internal/domain/model"
)

// DefaultTable collects every normalization fallback in one place so tests
// have a single source of truth for missing-field behaviour.
type DefaultTable struct {
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	OrderItem       string
	PickupAddress   string
	Notes           string
	Amount          float64
}

// Defaults is applied by Normalize whenever an upstream field is absent.
var Defaults = DefaultTable{
	CustomerName:    "Unknown",
	CustomerPhone:   "",
	DeliveryAddress: "Address not provided",
	OrderItem:       "Order items",
	PickupAddress:   "WayToForm Store",
	Notes:           "",
	Amount:          0,
}

// statusTable collapses the provider status vocabulary onto the internal
// binary domain. Lookup is case-insensitive; anything unknown stays active.
var statusTable = map[string]model.Status{
	"pending":          model.StatusOrders,
	"confirmed":        model.StatusOrders,
	"processing":       model.StatusOrders,
	"shipped":          model.StatusOrders,
	"out_for_delivery": model.StatusOrders,
	"delivered":        model.StatusDelivered,
	"cancelled":        model.StatusDelivered,
}

// MapStatus maps an external provider status onto the internal domain.
// Total: unrecognized or empty input fails open to StatusOrders.
func MapStatus(raw string) model.Status {
	if s, ok := statusTable[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return model.StatusOrders
}

// EncodeStatus projects an internal status back onto the provider
// vocabulary. The projection is deliberately narrow: everything that is not
// delivered becomes "pending".
func EncodeStatus(status model.Status) string {
	if status == model.StatusDelivered {
		return "delivered"
	}
	return "pending"
}

// OrderNumber derives the short human-readable label from a record id.
func OrderNumber(recordID string) string {
	if len(recordID) > 8 {
		recordID = recordID[:8]
	}
	return strings.ToUpper(recordID)
}

// Normalize transforms one raw upstream record into the internal order
// shape. It never fails: missing or malformed fields take their documented
// defaults, and an entirely absent timestamp coerces to now.
func Normalize(recordID string, rec RawRecord, now time.Time) model.Order {
	now = now.UTC()
	status := MapStatus(rec.Status)
	createdAt := rec.CreatedAt.Or(now)

	order := model.Order{
		ID:              recordID,
		OrderNumber:     OrderNumber(recordID),
		CustomerName:    stringOr(rec.Name, Defaults.CustomerName),
		CustomerPhone:   stringOr(rec.Phone, Defaults.CustomerPhone),
		OrderItem:       formatOrderItems(rec),
		DeliveryAddress: formatAddress(rec.UserLocation, rec.Address),
		PickupAddress:   stringOr(rec.PickupAddress, Defaults.PickupAddress),
		Notes:           stringOr(rec.Notes, Defaults.Notes),
		Amount:          amountOf(rec),
		Status:          status,
		CreatedAt:       createdAt,
		UpdatedAt:       rec.UpdatedAt.Or(createdAt),
		Location:        rec.UserLocation,
	}

	if rec.Status != "" && !strings.EqualFold(strings.TrimSpace(rec.Status), "pending") {
		received := rec.ReceivedAt.Or(createdAt)
		order.ReceivedAt = &received
	}
	if status == model.StatusDelivered {
		delivered := rec.DeliveredAt.Or(now)
		order.DeliveredAt = &delivered
	}

	return order
}

// SortOrders sorts a snapshot descending by creation time. The sort is
// stable so upstream order decides ties.
func SortOrders(orders []model.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

func formatOrderItems(rec RawRecord) string {
	if len(rec.Items) > 0 {
		parts := make([]string, 0, len(rec.Items))
		for _, item := range rec.Items {
			name := item.Name
			if name == "" {
				name = item.ProductName
			}
			if name == "" {
				name = "Item"
			}
			parts = append(parts, formatItem(name, item.Quantity, item.Size))
		}
		return strings.Join(parts, ", ")
	}
	if rec.Name != "" && rec.Quantity > 0 {
		return formatItem(rec.Name, rec.Quantity, rec.Size)
	}
	if rec.OrderItem != "" {
		return rec.OrderItem
	}
	if rec.ProductName != "" {
		return rec.ProductName
	}
	return Defaults.OrderItem
}

func formatItem(name string, quantity int, size string) string {
	var b strings.Builder
	b.WriteString(name)
	if quantity > 1 {
		fmt.Fprintf(&b, " x%d", quantity)
	}
	if size != "" {
		fmt.Fprintf(&b, " (%s)", size)
	}
	return b.String()
}

func formatAddress(location *model.GeoPoint, address string) string {
	if address != "" {
		return address
	}
	if location != nil && location.Latitude != 0 && location.Longitude != 0 {
		return fmt.Sprintf("%.6f, %.6f", location.Latitude, location.Longitude)
	}
	return Defaults.DeliveryAddress
}

func amountOf(rec RawRecord) float64 {
	if rec.Total != nil {
		return *rec.Total
	}
	if rec.Price != nil {
		return *rec.Price
	}
	return Defaults.Amount
}

func stringOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
