package test

import (
	"context"
	"sync"

	"github.com/waytodrive/orderadmin/internal/domain/model"
	"github.com/waytodrive/orderadmin/internal/feed"
)

// ProviderStub is a controllable feed source. Tests drive it by calling Emit
// and Fail after Subscribe has attached the callbacks.
type ProviderStub struct {
	SubscribeFn   func(context.Context, func([]model.Order), func(error)) (feed.Unsubscribe, error)
	SubscribeErr  error
	Unsubscribed  int
	mu            sync.Mutex
	onSnapshot    func([]model.Order)
	onError       func(error)
	initial       []model.Order
	InitialLoaded bool
}

// NewProviderStub creates a stub that delivers the given snapshot on
// subscription.
func NewProviderStub(initial []model.Order) *ProviderStub {
	return &ProviderStub{initial: initial, InitialLoaded: true}
}

// Subscribe registers callbacks and, when configured, delivers the initial
// snapshot synchronously.
func (p *ProviderStub) Subscribe(ctx context.Context, onSnapshot func([]model.Order), onError func(error)) (feed.Unsubscribe, error) {
	if p.SubscribeFn != nil {
		return p.SubscribeFn(ctx, onSnapshot, onError)
	}
	if p.SubscribeErr != nil {
		return nil, p.SubscribeErr
	}

	p.mu.Lock()
	p.onSnapshot = onSnapshot
	p.onError = onError
	deliver := p.InitialLoaded
	initial := p.initial
	p.mu.Unlock()

	if deliver {
		onSnapshot(initial)
	}
	return func() {
		p.mu.Lock()
		p.onSnapshot = nil
		p.onError = nil
		p.Unsubscribed++
		p.mu.Unlock()
	}, nil
}

// Emit pushes a snapshot to the current subscriber, if any.
func (p *ProviderStub) Emit(orders []model.Order) {
	p.mu.Lock()
	onSnapshot := p.onSnapshot
	p.mu.Unlock()
	if onSnapshot != nil {
		onSnapshot(orders)
	}
}

// Fail reports an error to the current subscriber, if any.
func (p *ProviderStub) Fail(err error) {
	p.mu.Lock()
	onError := p.onError
	p.mu.Unlock()
	if onError != nil {
		onError(err)
	}
}

// WritableProviderStub extends ProviderStub with write-back, insert, and
// refresh capabilities.
type WritableProviderStub struct {
	*ProviderStub
	UpdateFn  func(context.Context, string, model.Status) error
	InsertFn  func(context.Context, feed.RawRecord) (string, error)
	RefreshFn func(context.Context) error
	Updates   []StatusUpdateCall
	Refreshed int
}

// StatusUpdateCall records one UpdateStatus invocation.
type StatusUpdateCall struct {
	OrderID string
	Status  model.Status
}

// NewWritableProviderStub wraps a ProviderStub with recording write methods.
func NewWritableProviderStub(initial []model.Order) *WritableProviderStub {
	return &WritableProviderStub{ProviderStub: NewProviderStub(initial)}
}

// UpdateStatus records the call or delegates to the override.
func (p *WritableProviderStub) UpdateStatus(ctx context.Context, orderID string, status model.Status) error {
	if p.UpdateFn != nil {
		return p.UpdateFn(ctx, orderID, status)
	}
	p.mu.Lock()
	p.Updates = append(p.Updates, StatusUpdateCall{OrderID: orderID, Status: status})
	p.mu.Unlock()
	return nil
}

// Insert returns a fixed id or delegates to the override.
func (p *WritableProviderStub) Insert(ctx context.Context, rec feed.RawRecord) (string, error) {
	if p.InsertFn != nil {
		return p.InsertFn(ctx, rec)
	}
	return "ord-new", nil
}

// Refresh counts invocations or delegates to the override.
func (p *WritableProviderStub) Refresh(ctx context.Context) error {
	if p.RefreshFn != nil {
		return p.RefreshFn(ctx)
	}
	p.mu.Lock()
	p.Refreshed++
	p.mu.Unlock()
	return nil
}

var _ feed.Provider = (*ProviderStub)(nil)
var _ feed.Provider = (*WritableProviderStub)(nil)
var _ feed.Writer = (*WritableProviderStub)(nil)
var _ feed.Inserter = (*WritableProviderStub)(nil)
var _ feed.Refresher = (*WritableProviderStub)(nil)
