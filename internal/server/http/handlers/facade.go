package handlers

import (
	"context"

	"github.com/waytodrive/orderadmin/internal/domain/model"
	"github.com/waytodrive/orderadmin/internal/store"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (string, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Orders() []model.Order
	UpdateOrderStatus(ctx context.Context, orderID string, status model.Status, reason string) (store.TransitionResult, error)
	CreateOrder(ctx context.Context, draft store.Draft) (model.Order, error)
	RefreshOrders(ctx context.Context) error
	FeedState() (loading bool, err error)
}

// HistoryFacade provides access to the status-transition log.
type HistoryFacade interface {
	History() []model.HistoryEntry
	HistoryFor(orderID string) []model.HistoryEntry
}

// AdminFacade aggregates the full set of operations used across handlers.
type AdminFacade interface {
	AuthFacade
	OrderFacade
	HistoryFacade
}
