// Package store owns the local view of the order feed: the current snapshot,
// the derived status-transition history, and the transition command that
// writes changes back upstream.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/waytodrive/orderadmin/internal/domain/errors"
	"github.com/waytodrive/orderadmin/internal/domain/model"
	"github.com/waytodrive/orderadmin/internal/feed"
)

// TransitionResult reports the outcome of an attempted status change.
// Applied is false for a no-op (requested status already current).
type TransitionResult struct {
	Applied bool
	Order   model.Order
	Entry   model.HistoryEntry
}

// Draft carries the operator-entered fields for a locally created order.
type Draft struct {
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	OrderItem       string
	Notes           string
	Amount          float64
}

// Store is the single owner of order snapshot and history state. All
// mutation goes through feed snapshots or AttemptTransition; readers get
// copies.
type Store struct {
	provider feed.Provider
	logger   *slog.Logger
	now      func() time.Time

	mu            sync.RWMutex
	orders        []model.Order
	index         map[string]int
	history       []model.HistoryEntry
	nextHistoryID int64
	loading       bool
	feedErr       error
	closed        bool

	// transitionMu serializes AttemptTransition calls, remote write
	// included, so two transitions never race on the same order.
	transitionMu sync.Mutex

	unsubscribe feed.Unsubscribe
	closeOnce   sync.Once
}

// New creates a store in its loading state. Call Start to attach the feed.
func New(provider feed.Provider, logger *slog.Logger) *Store {
	return &Store{
		provider:      provider,
		logger:        logger,
		now:           time.Now,
		index:         make(map[string]int),
		nextHistoryID: 1,
		loading:       true,
	}
}

// Start subscribes to the feed. The first delivered snapshot moves the store
// out of its loading state.
func (s *Store) Start(ctx context.Context) error {
	unsubscribe, err := s.provider.Subscribe(ctx, s.applySnapshot, s.applyFeedError)
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.feedErr = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()
	return nil
}

// Close detaches the feed subscription exactly once. After Close returns no
// further snapshots are applied.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		unsubscribe := s.unsubscribe
		s.mu.Unlock()

		if unsubscribe != nil {
			unsubscribe()
		}
	})
}

// Orders returns the current snapshot in feed order (newest created first).
func (s *Store) Orders() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// History returns the full transition log, newest first.
func (s *Store) History() []model.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// HistoryFor filters the log by the denormalized order id, newest first. The
// entries survive even when the order itself has vanished upstream.
func (s *Store) HistoryFor(orderID string) []model.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.HistoryEntry
	for _, entry := range s.history {
		if entry.OrderID == orderID {
			out = append(out, entry)
		}
	}
	return out
}

// Loading reports whether the first snapshot (or error) is still pending.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// FeedErr returns the most recent feed error, cleared by the next
// successful snapshot.
func (s *Store) FeedErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.feedErr
}

// AttemptTransition applies a status change to one order. Same-status calls
// are silent no-ops. When the provider supports write-back the remote update
// must succeed first; on failure local state is left untouched and the error
// is returned. The accepted transition updates the snapshot and appends one
// history entry.
func (s *Store) AttemptTransition(ctx context.Context, orderID string, newStatus model.Status, reason string) (TransitionResult, error) {
	if !newStatus.Valid() {
		return TransitionResult{}, domainErrors.ErrInvalidStatus
	}

	s.transitionMu.Lock()
	defer s.transitionMu.Unlock()

	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return TransitionResult{}, domainErrors.ErrStoreClosed
	}
	idx, ok := s.index[orderID]
	var current model.Order
	if ok {
		current = s.orders[idx]
	}
	s.mu.RUnlock()

	if !ok {
		return TransitionResult{}, domainErrors.ErrNotFound
	}

	updated, entry, apply := PlanTransition(current, newStatus, reason, s.now())
	if !apply {
		return TransitionResult{Applied: false, Order: current}, nil
	}

	if writer, ok := s.provider.(feed.Writer); ok {
		if err := writer.UpdateStatus(ctx, orderID, newStatus); err != nil {
			return TransitionResult{}, err
		}
	}

	s.mu.Lock()
	// The snapshot may have been replaced while the remote write was in
	// flight; re-resolve the order before committing.
	if idx, ok := s.index[orderID]; ok {
		s.orders[idx] = updated
	}
	entry.ID = s.nextHistoryID
	s.nextHistoryID++
	s.history = append([]model.HistoryEntry{entry}, s.history...)
	s.mu.Unlock()

	s.logger.Info("order status changed",
		slog.String("order", entry.OrderNumber),
		slog.String("from", string(entry.PreviousStatus)),
		slog.String("to", string(entry.NewStatus)),
	)
	return TransitionResult{Applied: true, Order: updated, Entry: entry}, nil
}

// CreateOrder inserts a new order through the feed provider. Providers
// without insert support reject the call.
func (s *Store) CreateOrder(ctx context.Context, draft Draft) (model.Order, error) {
	inserter, ok := s.provider.(feed.Inserter)
	if !ok {
		return model.Order{}, domainErrors.ErrUnsupported
	}

	now := s.now()
	amount := draft.Amount
	rec := feed.RawRecord{
		Name:      draft.CustomerName,
		Phone:     draft.CustomerPhone,
		Address:   draft.DeliveryAddress,
		OrderItem: draft.OrderItem,
		Notes:     draft.Notes,
		Total:     &amount,
		Status:    "pending",
		CreatedAt: feed.At(now),
		UpdatedAt: feed.At(now),
	}

	id, err := inserter.Insert(ctx, rec)
	if err != nil {
		return model.Order{}, err
	}
	return feed.Normalize(id, rec, now), nil
}

// Refresh forces the provider to re-deliver the current snapshot. With a
// live feed already attached it degrades to a cheap re-assertion.
func (s *Store) Refresh(ctx context.Context) error {
	if refresher, ok := s.provider.(feed.Refresher); ok {
		return refresher.Refresh(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	feed.SortOrders(s.orders)
	s.rebuildIndex()
	return nil
}

func (s *Store) applySnapshot(orders []model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.orders = orders
	s.rebuildIndex()
	s.loading = false
	s.feedErr = nil
}

func (s *Store) applyFeedError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.loading = false
	s.feedErr = err
	s.logger.Error("order feed error", slog.String("error", err.Error()))
}

func (s *Store) rebuildIndex() {
	clear(s.index)
	for i := range s.orders {
		s.index[s.orders[i].ID] = i
	}
}
