// Package memory implements the feed contracts against local state. It backs
// the offline demo mode, where no external order store is configured, and
// gives tests a deterministic feed.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	domainErrors "github.com/waytodrive/orderadmin/internal/domain/errors"
	"github.com/waytodrive/orderadmin/internal/domain/model"
	"github.com/waytodrive/orderadmin/internal/feed"
)

type record struct {
	id  string
	raw feed.RawRecord
}

type subscriber struct {
	fn       func([]model.Order)
	inflight sync.WaitGroup
}

// Provider keeps raw order records in memory and fans a full normalized
// snapshot out to subscribers on every mutation. Record ids are assigned
// sequentially so derived order numbers come out as ORD-001, ORD-002, …
type Provider struct {
	mu          sync.Mutex
	records     []record
	seq         int
	nextSub     int
	subscribers map[int]*subscriber
	now         func() time.Time
}

// New creates an empty provider.
func New() *Provider {
	return &Provider{
		subscribers: make(map[int]*subscriber),
		now:         time.Now,
	}
}

var _ feed.Provider = (*Provider)(nil)
var _ feed.Writer = (*Provider)(nil)
var _ feed.Inserter = (*Provider)(nil)
var _ feed.Refresher = (*Provider)(nil)

// Subscribe registers a snapshot callback and immediately delivers the
// current state. The returned handle removes the registration and waits for
// any delivery already running; no callback fires after it returns. Calling
// the handle from inside the callback itself would deadlock.
func (p *Provider) Subscribe(_ context.Context, onSnapshot func([]model.Order), _ func(error)) (feed.Unsubscribe, error) {
	sub := &subscriber{fn: onSnapshot}
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subscribers[id] = sub
	snapshot := p.snapshotLocked()
	p.mu.Unlock()

	onSnapshot(snapshot)

	return func() {
		p.mu.Lock()
		delete(p.subscribers, id)
		p.mu.Unlock()
		sub.inflight.Wait()
	}, nil
}

// UpdateStatus applies the status write locally, stamping the same fields a
// remote store would: provider-vocabulary status, updatedAt, and deliveredAt
// on a transition into delivered.
func (p *Provider) UpdateStatus(_ context.Context, orderID string, status model.Status) error {
	p.mu.Lock()
	idx := -1
	for i := range p.records {
		if p.records[i].id == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		p.mu.Unlock()
		return domainErrors.ErrNotFound
	}

	now := p.now().UTC()
	rec := &p.records[idx].raw
	rec.Status = feed.EncodeStatus(status)
	rec.UpdatedAt = feed.At(now)
	if status == model.StatusDelivered {
		rec.DeliveredAt = feed.At(now)
	}
	p.notifyLocked()
	return nil
}

// Insert stores a new record under the next sequential id.
func (p *Provider) Insert(_ context.Context, rec feed.RawRecord) (string, error) {
	p.mu.Lock()
	p.seq++
	id := fmt.Sprintf("ord-%03d", p.seq)
	if !rec.CreatedAt.Valid {
		rec.CreatedAt = feed.At(p.now())
	}
	p.records = append(p.records, record{id: id, raw: rec})
	p.notifyLocked()
	return id, nil
}

// Refresh re-delivers the current snapshot to all subscribers.
func (p *Provider) Refresh(_ context.Context) error {
	p.mu.Lock()
	p.notifyLocked()
	return nil
}

// Seed loads raw records under their given ids, replacing existing state.
// Intended for tests and demo fixtures.
func (p *Provider) Seed(records map[string]feed.RawRecord) {
	p.mu.Lock()
	p.records = p.records[:0]
	for id, raw := range records {
		p.records = append(p.records, record{id: id, raw: raw})
	}
	p.notifyLocked()
}

// notifyLocked snapshots state, releases the lock, and invokes callbacks.
// Callbacks run outside the lock so a subscriber may call back into the
// provider. Each delivery is marked in flight while still registered, which
// lets an unsubscribe wait for it instead of returning mid-callback.
func (p *Provider) notifyLocked() {
	snapshot := p.snapshotLocked()
	subs := make([]*subscriber, 0, len(p.subscribers))
	for _, sub := range p.subscribers {
		sub.inflight.Add(1)
		subs = append(subs, sub)
	}
	p.mu.Unlock()

	for _, sub := range subs {
		sub.fn(snapshot)
		sub.inflight.Done()
	}
}

func (p *Provider) snapshotLocked() []model.Order {
	now := p.now()
	orders := make([]model.Order, 0, len(p.records))
	for _, rec := range p.records {
		orders = append(orders, feed.Normalize(rec.id, rec.raw, now))
	}
	feed.SortOrders(orders)
	return orders
}
