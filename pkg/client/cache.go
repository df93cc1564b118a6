package client

import (
	"context"
	"sync"

	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
)

// MetadataCache stores per-token market metadata that rarely changes. The
// client follows get-or-fetch-and-populate semantics: a miss triggers one
// upstream lookup and the result is written back.
type MetadataCache interface {
	GetTickSize(ctx context.Context, tokenID string) (clobtypes.TickSize, bool)
	SetTickSize(ctx context.Context, tokenID string, tick clobtypes.TickSize)

	GetNegRisk(ctx context.Context, tokenID string) (bool, bool)
	SetNegRisk(ctx context.Context, tokenID string, negRisk bool)

	GetFeeRateBps(ctx context.Context, tokenID string) (int64, bool)
	SetFeeRateBps(ctx context.Context, tokenID string, bps int64)
}

// MemoryCache is the default in-process cache, guarded by a reader/writer
// lock since signing calls run concurrently against the same token data.
type MemoryCache struct {
	mu        sync.RWMutex
	tickSizes map[string]clobtypes.TickSize
	negRisk   map[string]bool
	feeRates  map[string]int64
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		tickSizes: make(map[string]clobtypes.TickSize),
		negRisk:   make(map[string]bool),
		feeRates:  make(map[string]int64),
	}
}

func (m *MemoryCache) GetTickSize(_ context.Context, tokenID string) (clobtypes.TickSize, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tickSizes[tokenID]
	return t, ok
}

func (m *MemoryCache) SetTickSize(_ context.Context, tokenID string, tick clobtypes.TickSize) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickSizes[tokenID] = tick
}

func (m *MemoryCache) GetNegRisk(_ context.Context, tokenID string) (bool, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.negRisk[tokenID]
	return v, ok
}

func (m *MemoryCache) SetNegRisk(_ context.Context, tokenID string, negRisk bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.negRisk[tokenID] = negRisk
}

func (m *MemoryCache) GetFeeRateBps(_ context.Context, tokenID string) (int64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.feeRates[tokenID]
	return v, ok
}

func (m *MemoryCache) SetFeeRateBps(_ context.Context, tokenID string, bps int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feeRates[tokenID] = bps
}
