// Package db wires the two storage tiers into one facade.
package db

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/fintrack/fintrack-api/internal/api/metrics"
	"github.com/fintrack/fintrack-api/internal/core/domain"
	"github.com/fintrack/fintrack-api/internal/core/ports"
)

// Failover presents primary and fallback transaction repositories as a single
// repository. The first store-unavailable error from the primary latches the
// facade onto the fallback tier for the rest of the process lifetime; the
// tiers are never synced, so recovering the primary requires a restart.
type Failover struct {
	primary  ports.TransactionRepository
	fallback ports.TransactionRepository
	degraded atomic.Bool
	log      zerolog.Logger
}

func NewFailover(primary, fallback ports.TransactionRepository, log zerolog.Logger) *Failover {
	return &Failover{primary: primary, fallback: fallback, log: log}
}

// Tier reports which tier is currently serving.
func (f *Failover) Tier() string {
	if f.degraded.Load() {
		return ports.TierFallback
	}
	return ports.TierPrimary
}

func (f *Failover) active() ports.TransactionRepository {
	if f.degraded.Load() {
		return f.fallback
	}
	return f.primary
}

// degrade latches onto the fallback tier after a primary connectivity error.
func (f *Failover) degrade(err error) {
	if f.degraded.CompareAndSwap(false, true) {
		metrics.StoreFailoversTotal.Inc()
		f.log.Warn().Err(err).Msg("primary store unreachable, serving from in-memory fallback")
	}
}

func (f *Failover) Insert(ctx context.Context, tx *domain.Transaction) error {
	err := f.active().Insert(ctx, tx)
	if errors.Is(err, domain.ErrStoreUnavailable) && !f.degraded.Load() {
		f.degrade(err)
		return f.fallback.Insert(ctx, tx)
	}
	return err
}

func (f *Failover) FindAll(ctx context.Context, filter ports.TransactionFilter) ([]domain.Transaction, error) {
	txs, err := f.active().FindAll(ctx, filter)
	if errors.Is(err, domain.ErrStoreUnavailable) && !f.degraded.Load() {
		f.degrade(err)
		return f.fallback.FindAll(ctx, filter)
	}
	return txs, err
}

func (f *Failover) Count(ctx context.Context, filter ports.TransactionFilter) (int64, error) {
	n, err := f.active().Count(ctx, filter)
	if errors.Is(err, domain.ErrStoreUnavailable) && !f.degraded.Load() {
		f.degrade(err)
		return f.fallback.Count(ctx, filter)
	}
	return n, err
}

func (f *Failover) FindMaxID(ctx context.Context) (int64, error) {
	id, err := f.active().FindMaxID(ctx)
	if errors.Is(err, domain.ErrStoreUnavailable) && !f.degraded.Load() {
		f.degrade(err)
		return f.fallback.FindMaxID(ctx)
	}
	return id, err
}

func (f *Failover) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Transaction, error) {
	tx, err := f.active().FindByIdempotencyKey(ctx, key)
	if errors.Is(err, domain.ErrStoreUnavailable) && !f.degraded.Load() {
		f.degrade(err)
		return f.fallback.FindByIdempotencyKey(ctx, key)
	}
	return tx, err
}
