// Package postgres implements the live feed against a PostgreSQL mirror of
// the hosted order store. Records live as JSONB documents in an `orders`
// table kept current by an external sync job; this provider re-reads the
// full set on an interval and delivers a fresh snapshot whenever the set
// changes.
package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/waytodrive/orderadmin/internal/domain/errors"
	"github.com/waytodrive/orderadmin/internal/domain/model"
	"github.com/waytodrive/orderadmin/internal/feed"
)

// PgxPool is the subset of pgxpool.Pool the provider uses, extracted so
// tests can substitute a mock pool.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

const (
	selectOrders = `SELECT id, doc, updated_at FROM orders ORDER BY id`
	updateOrder  = `UPDATE orders SET doc = doc || $2::jsonb, updated_at = NOW() WHERE id = $1`
	insertOrder  = `INSERT INTO orders (id, doc) VALUES ($1, $2)`
)

// Provider polls the order mirror and implements the full set of feed
// capabilities: live snapshots, status write-back, insert, and refresh.
type Provider struct {
	pool     PgxPool
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time
	newID    func() string
	kick     chan struct{}
}

var _ feed.Provider = (*Provider)(nil)
var _ feed.Writer = (*Provider)(nil)
var _ feed.Inserter = (*Provider)(nil)
var _ feed.Refresher = (*Provider)(nil)

// New connects to the mirror database and ensures the schema exists.
func New(ctx context.Context, dsn string, interval time.Duration, logger *slog.Logger) (*Provider, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	p := newWithPool(pool, interval, logger)
	if err := p.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func newWithPool(pool PgxPool, interval time.Duration, logger *slog.Logger) *Provider {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Provider{
		pool:     pool,
		logger:   logger,
		interval: interval,
		now:      time.Now,
		newID:    uuid.NewString,
		kick:     make(chan struct{}, 1),
	}
}

// Close releases database resources.
func (p *Provider) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// HealthCheck verifies database connectivity.
func (p *Provider) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.pool.Ping(ctx)
}

func (p *Provider) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            doc JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_updated ON orders(updated_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Subscribe starts the poll loop. The first poll always delivers a snapshot;
// afterwards one is delivered on every observed change of the record set.
// The returned handle cancels the loop and waits for it to drain, so no
// callback fires after it returns.
func (p *Provider) Subscribe(ctx context.Context, onSnapshot func([]model.Order), onError func(error)) (feed.Unsubscribe, error) {
	runCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go p.run(runCtx, &wg, onSnapshot, onError)

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			wg.Wait()
		})
	}, nil
}

func (p *Provider) run(ctx context.Context, wg *sync.WaitGroup, onSnapshot func([]model.Order), onError func(error)) {
	defer wg.Done()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	lastFingerprint := ""
	first := true
	poll := func() {
		fingerprint, orders, err := p.fetch(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			p.logger.Error("order feed poll failed", slog.String("error", err.Error()))
			// Empty snapshot first so consumers leave their loading state,
			// then the error; a later successful poll re-enters ready.
			onSnapshot([]model.Order{})
			onError(err)
			lastFingerprint, first = "", false
			return
		}
		if first || fingerprint != lastFingerprint {
			onSnapshot(orders)
		}
		lastFingerprint, first = fingerprint, false
	}

	poll()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			poll()
		case <-p.kick:
			poll()
		}
	}
}

func (p *Provider) fetch(ctx context.Context) (string, []model.Order, error) {
	rows, err := p.pool.Query(ctx, selectOrders)
	if err != nil {
		return "", nil, err
	}
	defer rows.Close()

	now := p.now()
	hash := sha256.New()
	var orders []model.Order
	for rows.Next() {
		var (
			id        string
			doc       []byte
			updatedAt time.Time
		)
		if err := rows.Scan(&id, &doc, &updatedAt); err != nil {
			return "", nil, err
		}

		hash.Write([]byte(id))
		hash.Write(doc)
		_ = binary.Write(hash, binary.BigEndian, updatedAt.UnixNano())

		var rec feed.RawRecord
		if err := json.Unmarshal(doc, &rec); err != nil {
			// A malformed document still yields an order built from
			// defaults; records are never dropped from a snapshot.
			p.logger.Warn("malformed order document", slog.String("id", id), slog.String("error", err.Error()))
			rec = feed.RawRecord{}
		}
		orders = append(orders, feed.Normalize(id, rec, now))
	}
	if err := rows.Err(); err != nil {
		return "", nil, err
	}

	feed.SortOrders(orders)
	if orders == nil {
		orders = []model.Order{}
	}
	return hex.EncodeToString(hash.Sum(nil)), orders, nil
}

// UpdateStatus merges the status change into the upstream document. Only the
// narrow provider vocabulary is written back: delivered, or pending for
// anything still active.
func (p *Provider) UpdateStatus(ctx context.Context, orderID string, status model.Status) error {
	now := p.now().UTC().Format(time.RFC3339Nano)
	patch := map[string]any{
		"status":    feed.EncodeStatus(status),
		"updatedAt": now,
	}
	if status == model.StatusDelivered {
		patch["deliveredAt"] = now
	}
	body, err := json.Marshal(patch)
	if err != nil {
		return err
	}

	tag, err := p.pool.Exec(ctx, updateOrder, orderID, body)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	p.wake()
	return nil
}

// Insert stores a new raw record under a generated id.
func (p *Provider) Insert(ctx context.Context, rec feed.RawRecord) (string, error) {
	if !rec.CreatedAt.Valid {
		rec.CreatedAt = feed.At(p.now())
	}
	doc, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}

	id := p.newID()
	if _, err := p.pool.Exec(ctx, insertOrder, id, doc); err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}

	p.wake()
	return id, nil
}

// Refresh schedules an immediate poll.
func (p *Provider) Refresh(context.Context) error {
	p.wake()
	return nil
}

func (p *Provider) wake() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}
