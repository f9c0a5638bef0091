package service

import (
	"sync"

	"github.com/fintrack/fintrack-api/internal/api/metrics"
	"github.com/fintrack/fintrack-api/internal/core/domain"
)

// WalletPool hands out unique wallet addresses from a fixed, deterministic
// pool. All mutation happens behind one mutex, so concurrent registrations can
// never draw the same address. Addresses are permanent identity: there is no
// release path for a live principal; Release exists only so a failed
// registration can undo a draw that was never persisted.
type WalletPool struct {
	mu        sync.Mutex
	addresses []string
	assigned  map[string]struct{}
}

// NewWalletPool derives a pool of size addresses from seed, in definition
// order.
func NewWalletPool(seed string, size int) *WalletPool {
	p := &WalletPool{
		addresses: domain.PoolAddresses(seed, size),
		assigned:  make(map[string]struct{}),
	}
	metrics.WalletPoolRemaining.Set(float64(size))
	return p
}

// Seed marks addresses already held by persisted principals as assigned.
// Called once at startup so a restart never hands out a held address.
// Addresses outside the pool are ignored.
func (p *WalletPool) Seed(held []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, addr := range held {
		if addr != "" {
			p.assigned[addr] = struct{}{}
		}
	}
	metrics.WalletPoolRemaining.Set(float64(p.remainingLocked()))
}

// Assign returns the first free address in pool order and records it as
// assigned. Fails with domain.ErrPoolExhausted when every address is held.
func (p *WalletPool) Assign() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, addr := range p.addresses {
		if _, held := p.assigned[addr]; !held {
			p.assigned[addr] = struct{}{}
			metrics.WalletAssignmentsTotal.Inc()
			metrics.WalletPoolRemaining.Set(float64(p.remainingLocked()))
			return addr, nil
		}
	}
	return "", domain.ErrPoolExhausted
}

// Release returns an address to the pool. Only valid for an address whose
// registration failed before the principal was persisted.
func (p *WalletPool) Release(addr string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.assigned, addr)
	metrics.WalletPoolRemaining.Set(float64(p.remainingLocked()))
}

// Remaining reports how many addresses are still free.
func (p *WalletPool) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.remainingLocked()
}

func (p *WalletPool) remainingLocked() int {
	n := 0
	for _, addr := range p.addresses {
		if _, held := p.assigned[addr]; !held {
			n++
		}
	}
	return n
}
