package clobtypes

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
)

// OrderSummary is one price level of a book snapshot. Price and size stay as
// the decimal strings the exchange sent; consumers parse them on demand.
type OrderSummary struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

// OrderBookSummary is a full snapshot of one token's book. Levels are listed
// the way the exchange serves them: worst price first, best price last.
type OrderBookSummary struct {
	Market    string         `json:"market"`
	AssetID   string         `json:"asset_id"`
	Timestamp string         `json:"timestamp"`
	Bids      []OrderSummary `json:"bids"`
	Asks      []OrderSummary `json:"asks"`
	Hash      string         `json:"hash"`
}

// ComputeHash fills in and returns the snapshot's SHA-1 content hash. The
// hash field itself is blanked before hashing so the digest is stable.
func (b *OrderBookSummary) ComputeHash() string {
	b.Hash = ""
	raw, err := json.Marshal(b)
	if err != nil {
		return ""
	}
	sum := sha1.Sum(raw)
	b.Hash = hex.EncodeToString(sum[:])
	return b.Hash
}

// MidpointResponse is returned by the midpoint endpoint.
type MidpointResponse struct {
	Mid string `json:"mid"`
}

// PriceResponse is returned by the price endpoint.
type PriceResponse struct {
	Price string `json:"price"`
}

// SpreadResponse is returned by the spread endpoint.
type SpreadResponse struct {
	Spread string `json:"spread"`
}

// TickSizeResponse is returned by the tick-size endpoint.
type TickSizeResponse struct {
	MinimumTickSize string `json:"minimum_tick_size"`
}

// NegRiskResponse is returned by the neg-risk endpoint.
type NegRiskResponse struct {
	NegRisk bool `json:"neg_risk"`
}

// FeeRateResponse is returned by the fee-rate endpoint.
type FeeRateResponse struct {
	FeeRateBps int64 `json:"fee_rate_bps"`
}

// LastTradePriceResponse is returned by the last-trade-price endpoint.
type LastTradePriceResponse struct {
	Price string `json:"price"`
	Side  string `json:"side"`
}

// Notification is an account event surfaced by the notifications endpoint.
type Notification struct {
	ID      string         `json:"id"`
	Type    int            `json:"type"`
	Owner   string         `json:"owner"`
	Payload map[string]any `json:"payload"`
}
