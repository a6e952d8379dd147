package tokenstore

import (
	"context"
	"sync"
	"time"

	"bodyshop/internal/pkg/clock"
)

// MemoryDenylist is used when no Redis address is configured. Revocations
// do not survive a restart and are not shared between replicas.
type MemoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	clock   clock.Clock
}

func NewMemoryDenylist(clk clock.Clock) *MemoryDenylist {
	return &MemoryDenylist{revoked: make(map[string]time.Time), clock: clk}
}

func (d *MemoryDenylist) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.clock.Now()
	d.purge(now)
	if expiresAt.After(now) {
		d.revoked[tokenID] = expiresAt
	}
	return nil
}

func (d *MemoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	exp, ok := d.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !exp.After(d.clock.Now()) {
		delete(d.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

func (d *MemoryDenylist) purge(now time.Time) {
	for id, exp := range d.revoked {
		if !exp.After(now) {
			delete(d.revoked, id)
		}
	}
}
