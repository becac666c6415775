package test

import (
	"context"
	"time"

	"github.com/waytodrive/orderadmin/internal/domain/model"
	"github.com/waytodrive/orderadmin/internal/store"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (string, error)
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken returns the operator bound to the token.
func (s AuthFacadeStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return "admin", nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	OrdersFn    func() []model.Order
	UpdateFn    func(context.Context, string, model.Status, string) (store.TransitionResult, error)
	CreateFn    func(context.Context, store.Draft) (model.Order, error)
	RefreshFn   func(context.Context) error
	FeedStateFn func() (bool, error)
}

// Orders returns predefined orders.
func (s OrderFacadeStub) Orders() []model.Order {
	if s.OrdersFn != nil {
		return s.OrdersFn()
	}
	return []model.Order{{ID: "ord-001", OrderNumber: "ORD-001", Status: model.StatusOrders, CreatedAt: time.Unix(0, 0).UTC()}}
}

// UpdateOrderStatus delegates to the override or reports an applied change.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, orderID string, status model.Status, reason string) (store.TransitionResult, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, orderID, status, reason)
	}
	return store.TransitionResult{
		Applied: true,
		Order:   model.Order{ID: orderID, Status: status},
		Entry:   model.HistoryEntry{ID: 1, OrderID: orderID, NewStatus: status, ChangedBy: store.ChangedBy},
	}, nil
}

// CreateOrder returns the configured order or a default draft echo.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, draft store.Draft) (model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, draft)
	}
	return model.Order{ID: "ord-001", OrderNumber: "ORD-001", CustomerName: draft.CustomerName, Status: model.StatusOrders}, nil
}

// RefreshOrders triggers the configured refresh handler.
func (s OrderFacadeStub) RefreshOrders(ctx context.Context) error {
	if s.RefreshFn != nil {
		return s.RefreshFn(ctx)
	}
	return nil
}

// FeedState reports the configured feed readiness.
func (s OrderFacadeStub) FeedState() (bool, error) {
	if s.FeedStateFn != nil {
		return s.FeedStateFn()
	}
	return false, nil
}

// HistoryFacadeStub serves preconfigured transition history.
type HistoryFacadeStub struct {
	HistoryFn    func() []model.HistoryEntry
	HistoryForFn func(string) []model.HistoryEntry
}

// History returns the full configured log.
func (s HistoryFacadeStub) History() []model.HistoryEntry {
	if s.HistoryFn != nil {
		return s.HistoryFn()
	}
	return []model.HistoryEntry{{ID: 1, OrderID: "ord-001", OrderNumber: "ORD-001", NewStatus: model.StatusDelivered, ChangedBy: store.ChangedBy}}
}

// HistoryFor returns entries for a single order.
func (s HistoryFacadeStub) HistoryFor(orderID string) []model.HistoryEntry {
	if s.HistoryForFn != nil {
		return s.HistoryForFn(orderID)
	}
	return []model.HistoryEntry{{ID: 1, OrderID: orderID, NewStatus: model.StatusDelivered, ChangedBy: store.ChangedBy}}
}

// AdminFacadeStub aggregates facade dependencies for HTTP layer tests.
type AdminFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	HistoryFacadeStub
}
