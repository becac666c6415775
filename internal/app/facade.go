package app

import (
	"context"

	"github.com/waytodrive/orderadmin/internal/domain/model"
	"github.com/waytodrive/orderadmin/internal/store"
	"github.com/waytodrive/orderadmin/internal/usecase"
)

// AdminFacade aggregates the operations the HTTP layer needs: operator
// authentication plus the order store's public surface.
type AdminFacade struct {
	auth   *usecase.AuthUseCase
	orders *store.Store
}

// NewAdminFacade constructs AdminFacade.
func NewAdminFacade(auth *usecase.AuthUseCase, orders *store.Store) *AdminFacade {
	return &AdminFacade{auth: auth, orders: orders}
}

func (f *AdminFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	return f.auth.Authenticate(ctx, login, password)
}

func (f *AdminFacade) ParseToken(token string) (string, error) {
	return f.auth.ParseToken(token)
}

func (f *AdminFacade) Orders() []model.Order {
	return f.orders.Orders()
}

func (f *AdminFacade) UpdateOrderStatus(ctx context.Context, orderID string, status model.Status, reason string) (store.TransitionResult, error) {
	return f.orders.AttemptTransition(ctx, orderID, status, reason)
}

func (f *AdminFacade) CreateOrder(ctx context.Context, draft store.Draft) (model.Order, error) {
	return f.orders.CreateOrder(ctx, draft)
}

func (f *AdminFacade) RefreshOrders(ctx context.Context) error {
	return f.orders.Refresh(ctx)
}

func (f *AdminFacade) FeedState() (bool, error) {
	return f.orders.Loading(), f.orders.FeedErr()
}

func (f *AdminFacade) History() []model.HistoryEntry {
	return f.orders.History()
}

func (f *AdminFacade) HistoryFor(orderID string) []model.HistoryEntry {
	return f.orders.HistoryFor(orderID)
}
