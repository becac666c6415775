package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/waytodrive/orderadmin/internal/domain/errors"
	"github.com/waytodrive/orderadmin/internal/domain/model"
	"github.com/waytodrive/orderadmin/internal/server/http/dto"
	"github.com/waytodrive/orderadmin/internal/store"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/admin/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders := h.facade.Orders()
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// Create handles POST /api/admin/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), store.Draft{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		OrderItem:       req.OrderItem,
		Notes:           req.Notes,
		Amount:          req.Amount,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrUnsupported) {
			c.Status(http.StatusNotImplemented)
			return
		}
		c.Status(http.StatusBadGateway)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// UpdateStatus handles POST /api/admin/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	status := model.Status(strings.ToLower(strings.TrimSpace(req.Status)))
	result, err := h.facade.UpdateOrderStatus(c.Request.Context(), c.Param("id"), status, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrStoreClosed):
			c.Status(http.StatusServiceUnavailable)
		default:
			// The remote write was rejected; nothing was applied locally.
			c.Status(http.StatusBadGateway)
		}
		return
	}

	response := dto.TransitionResponse{
		Applied: result.Applied,
		Order:   toOrderResponse(result.Order),
	}
	if result.Applied {
		entry := toHistoryEntry(result.Entry)
		response.Entry = &entry
	}
	c.JSON(http.StatusOK, response)
}

// Refresh handles POST /api/admin/refresh.
func (h *OrderHandler) Refresh(c *gin.Context) {
	if err := h.facade.RefreshOrders(c.Request.Context()); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusAccepted)
}

// FeedStatus handles GET /api/admin/feed.
func (h *OrderHandler) FeedStatus(c *gin.Context) {
	loading, err := h.facade.FeedState()
	response := dto.FeedStatusResponse{Loading: loading}
	if err != nil {
		response.Error = err.Error()
	}
	c.JSON(http.StatusOK, response)
}

// StatusOptions handles GET /api/admin/statuses.
func (h *OrderHandler) StatusOptions(c *gin.Context) {
	options := model.StatusOptions()
	response := make([]dto.StatusOptionResponse, 0, len(options))
	for _, opt := range options {
		response = append(response, dto.StatusOptionResponse{
			Value: string(opt.Value),
			Label: opt.Label,
			Color: opt.Color,
		})
	}
	c.JSON(http.StatusOK, response)
}
