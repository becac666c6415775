package handlers

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/waytodrive/orderadmin/internal/domain/model"
	"github.com/waytodrive/orderadmin/internal/server/http/dto"
	"github.com/waytodrive/orderadmin/internal/server/http/middleware"
)

// CurrentOperator extracts the authenticated operator login from context.
func CurrentOperator(c *gin.Context) string {
	val, ok := c.Get(middleware.OperatorContextKey)
	if !ok {
		return ""
	}
	operator, _ := val.(string)
	return operator
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		OrderItem:       order.OrderItem,
		DeliveryAddress: order.DeliveryAddress,
		PickupAddress:   order.PickupAddress,
		Notes:           order.Notes,
		Amount:          order.Amount,
		Status:          string(order.Status),
		CreatedAt:       order.CreatedAt,
		ReceivedAt:      order.ReceivedAt,
		DeliveredAt:     order.DeliveredAt,
		UpdatedAt:       order.UpdatedAt,
		MapsURL:         mapsURL(order),
	}
}

func toHistoryEntry(entry model.HistoryEntry) dto.HistoryEntry {
	return dto.HistoryEntry{
		ID:             entry.ID,
		OrderID:        entry.OrderID,
		OrderNumber:    entry.OrderNumber,
		PreviousStatus: string(entry.PreviousStatus),
		NewStatus:      string(entry.NewStatus),
		ChangedBy:      entry.ChangedBy,
		ChangeReason:   entry.ChangeReason,
		CreatedAt:      entry.CreatedAt,
	}
}

// mapsURL prefers the raw upstream coordinates over the formatted address so
// the link stays precise even when the address is a fallback.
func mapsURL(order model.Order) string {
	if order.Location != nil && order.Location.Latitude != 0 && order.Location.Longitude != 0 {
		return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%s,%s",
			strconv.FormatFloat(order.Location.Latitude, 'f', -1, 64),
			strconv.FormatFloat(order.Location.Longitude, 'f', -1, 64),
		)
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(order.DeliveryAddress)
}
