package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domainErrors "github.com/waytodrive/orderadmin/internal/domain/errors"
	"github.com/waytodrive/orderadmin/internal/domain/model"
	"github.com/waytodrive/orderadmin/internal/feed"
)

func newClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func TestSubscribeDeliversCurrentState(t *testing.T) {
	p := New()
	p.now = newClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	if _, err := p.Insert(context.Background(), feed.RawRecord{Name: "Ada"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	var snapshots [][]model.Order
	unsubscribe, err := p.Subscribe(context.Background(), func(orders []model.Order) {
		snapshots = append(snapshots, orders)
	}, nil)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer unsubscribe()

	if len(snapshots) != 1 {
		t.Fatalf("expected immediate snapshot, got %d", len(snapshots))
	}
	if len(snapshots[0]) != 1 || snapshots[0][0].CustomerName != "Ada" {
		t.Fatalf("unexpected snapshot %+v", snapshots[0])
	}
}

func TestInsertAssignsSequentialIDs(t *testing.T) {
	p := New()
	p.now = newClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	id1, err := p.Insert(ctx, feed.RawRecord{})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	id2, err := p.Insert(ctx, feed.RawRecord{})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if id1 != "ord-001" || id2 != "ord-002" {
		t.Fatalf("unexpected ids %q, %q", id1, id2)
	}

	var latest []model.Order
	unsubscribe, err := p.Subscribe(ctx, func(orders []model.Order) { latest = orders }, nil)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer unsubscribe()

	if len(latest) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(latest))
	}
	// Newest first: the second insert got the later createdAt.
	if latest[0].OrderNumber != "ORD-002" || latest[1].OrderNumber != "ORD-001" {
		t.Fatalf("unexpected order numbers %q, %q", latest[0].OrderNumber, latest[1].OrderNumber)
	}
}

func TestUpdateStatusNotifiesSubscribers(t *testing.T) {
	p := New()
	p.now = newClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	id, err := p.Insert(ctx, feed.RawRecord{Name: "Ada"})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	var latest []model.Order
	unsubscribe, err := p.Subscribe(ctx, func(orders []model.Order) { latest = orders }, nil)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer unsubscribe()

	if err := p.UpdateStatus(ctx, id, model.StatusDelivered); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(latest) != 1 || latest[0].Status != model.StatusDelivered {
		t.Fatalf("expected delivered order in snapshot, got %+v", latest)
	}
	if latest[0].DeliveredAt == nil {
		t.Fatal("expected deliveredAt stamped on the record")
	}

	if err := p.UpdateStatus(ctx, "missing", model.StatusDelivered); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateStatusRoundTripsThroughEncoding(t *testing.T) {
	p := New()
	p.now = newClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	id, err := p.Insert(ctx, feed.RawRecord{Status: "confirmed"})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := p.UpdateStatus(ctx, id, model.StatusOrders); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	var latest []model.Order
	unsubscribe, _ := p.Subscribe(ctx, func(orders []model.Order) { latest = orders }, nil)
	defer unsubscribe()

	// The narrow write-back projection stores "pending", which still maps
	// onto the active bucket.
	if latest[0].Status != model.StatusOrders {
		t.Fatalf("unexpected status %q", latest[0].Status)
	}
}

func TestUnsubscribeStopsCallbacks(t *testing.T) {
	p := New()
	ctx := context.Background()

	calls := 0
	unsubscribe, err := p.Subscribe(ctx, func([]model.Order) { calls++ }, nil)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected initial delivery, got %d", calls)
	}

	unsubscribe()
	if _, err := p.Insert(ctx, feed.RawRecord{}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("callbacks after unsubscribe: %d", calls)
	}
}

func TestUnsubscribeWaitsForInFlightDelivery(t *testing.T) {
	p := New()
	ctx := context.Background()

	var mu sync.Mutex
	deliveries := 0
	entered := make(chan struct{})
	release := make(chan struct{})
	unsubscribe, err := p.Subscribe(ctx, func([]model.Order) {
		mu.Lock()
		deliveries++
		n := deliveries
		mu.Unlock()
		if n == 2 {
			close(entered)
			<-release
		}
	}, nil)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	insertDone := make(chan struct{})
	go func() {
		defer close(insertDone)
		if _, err := p.Insert(ctx, feed.RawRecord{}); err != nil {
			t.Errorf("insert failed: %v", err)
		}
	}()
	<-entered

	unsubDone := make(chan struct{})
	go func() {
		unsubscribe()
		close(unsubDone)
	}()
	select {
	case <-unsubDone:
		t.Fatal("unsubscribe returned while a delivery was still running")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-unsubDone
	<-insertDone

	if _, err := p.Insert(ctx, feed.RawRecord{}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	mu.Lock()
	final := deliveries
	mu.Unlock()
	if final != 2 {
		t.Fatalf("callbacks after unsubscribe: %d", final)
	}
}

func TestRefreshRedelivers(t *testing.T) {
	p := New()
	ctx := context.Background()

	calls := 0
	unsubscribe, err := p.Subscribe(ctx, func([]model.Order) { calls++ }, nil)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer unsubscribe()

	if err := p.Refresh(ctx); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected redelivery, got %d calls", calls)
	}
}

func TestSeedReplacesState(t *testing.T) {
	p := New()
	ctx := context.Background()

	if _, err := p.Insert(ctx, feed.RawRecord{Name: "old"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	p.Seed(map[string]feed.RawRecord{
		"seed-1": {Name: "Ada", CreatedAt: feed.At(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))},
	})

	var latest []model.Order
	unsubscribe, _ := p.Subscribe(ctx, func(orders []model.Order) { latest = orders }, nil)
	defer unsubscribe()

	if len(latest) != 1 || latest[0].ID != "seed-1" {
		t.Fatalf("unexpected seeded snapshot %+v", latest)
	}
}
