package feed

import (
	"context"

	"github.com/waytodrive/orderadmin/internal/domain/model"
)

// Unsubscribe detaches a live subscription. It is safe to call exactly once;
// after it returns no further callbacks are invoked.
type Unsubscribe func()

// Provider is a live source of order snapshots. On every upstream change the
// provider delivers the full, normalized, sorted set of orders, never a
// delta. On a connection or query error it delivers an empty snapshot and
// then invokes onError, so consumers are not left waiting but still observe
// the failure.
type Provider interface {
	Subscribe(ctx context.Context, onSnapshot func([]model.Order), onError func(error)) (Unsubscribe, error)
}

// Writer pushes a status change back to the external store. Implementations
// stamp the provider-vocabulary status, updatedAt, and deliveredAt (when the
// transition is into delivered) on the upstream record.
type Writer interface {
	UpdateStatus(ctx context.Context, orderID string, status model.Status) error
}

// Inserter creates a new upstream record from a raw document and returns the
// assigned record id.
type Inserter interface {
	Insert(ctx context.Context, rec RawRecord) (string, error)
}

// Refresher forces re-delivery of the current snapshot to subscribers.
type Refresher interface {
	Refresh(ctx context.Context) error
}
