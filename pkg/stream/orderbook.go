package stream

import (
	"sort"
	"sync"
	"time"

	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/shopspring/decimal"
)

// Level is a single price level of a live book.
type Level struct {
	Price decimal.Decimal
	Size  decimal.Decimal
}

// Book is the in-memory live state of one token's order book, maintained
// from websocket snapshots and deltas. Bids are kept best first (high to
// low), asks best first (low to high).
type Book struct {
	TokenID     string
	bids        []Level
	asks        []Level
	lastUpdated time.Time
	mu          sync.RWMutex
}

func NewBook(tokenID string) *Book {
	return &Book{
		TokenID: tokenID,
		bids:    make([]Level, 0),
		asks:    make([]Level, 0),
	}
}

// Snapshot replaces the entire book state.
func (b *Book) Snapshot(bids, asks []Level) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.bids = bids
	b.asks = asks
	sortLevels(b.bids, true)
	sortLevels(b.asks, false)
	b.lastUpdated = time.Now()
}

// Update applies one price/size delta. A zero size removes the level.
func (b *Book) Update(side clobtypes.Side, priceStr, sizeStr string) error {
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return err
	}
	size, err := decimal.NewFromString(sizeStr)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if side == clobtypes.SideBuy {
		b.bids = updateLevel(b.bids, price, size, true)
	} else {
		b.asks = updateLevel(b.asks, price, size, false)
	}
	b.lastUpdated = time.Now()
	return nil
}

// Linear scan keeps the hot path allocation-free for the sparse books these
// markets actually have; a tree would only pay off at thousands of levels.
func updateLevel(levels []Level, price, size decimal.Decimal, descending bool) []Level {
	idx := -1
	for i, l := range levels {
		if l.Price.Equal(price) {
			idx = i
			break
		}
	}

	if size.IsZero() {
		if idx != -1 {
			levels = append(levels[:idx], levels[idx+1:]...)
		}
		return levels
	}

	if idx != -1 {
		levels[idx].Size = size
		return levels
	}

	levels = append(levels, Level{Price: price, Size: size})
	sortLevels(levels, descending)
	return levels
}

func sortLevels(levels []Level, descending bool) {
	sort.Slice(levels, func(i, j int) bool {
		if descending {
			return levels[i].Price.GreaterThan(levels[j].Price)
		}
		return levels[i].Price.LessThan(levels[j].Price)
	})
}

// Levels returns a copy of the current state, best prices first.
func (b *Book) Levels() (bids, asks []Level) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	bids = make([]Level, len(b.bids))
	copy(bids, b.bids)
	asks = make([]Level, len(b.asks))
	copy(asks, b.asks)
	return
}

// Summary renders the book in the REST snapshot shape: levels listed worst
// price first, best price last, so the result can feed the market order
// price resolvers directly.
func (b *Book) Summary() *clobtypes.OrderBookSummary {
	bids, asks := b.Levels()

	out := &clobtypes.OrderBookSummary{
		AssetID: b.TokenID,
		Bids:    make([]clobtypes.OrderSummary, 0, len(bids)),
		Asks:    make([]clobtypes.OrderSummary, 0, len(asks)),
	}
	for i := len(bids) - 1; i >= 0; i-- {
		out.Bids = append(out.Bids, clobtypes.OrderSummary{
			Price: bids[i].Price.String(),
			Size:  bids[i].Size.String(),
		})
	}
	for i := len(asks) - 1; i >= 0; i-- {
		out.Asks = append(out.Asks, clobtypes.OrderSummary{
			Price: asks[i].Price.String(),
			Size:  asks[i].Size.String(),
		})
	}
	return out
}

// LastUpdated reports when the book last changed.
func (b *Book) LastUpdated() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastUpdated
}
