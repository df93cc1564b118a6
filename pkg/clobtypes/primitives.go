package clobtypes

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Chain identifies the settlement network.
type Chain int64

const (
	// ChainPolygon is the Polygon mainnet.
	ChainPolygon Chain = 137
	// ChainAmoy is the Amoy testnet.
	ChainAmoy Chain = 80002
)

func (c Chain) ID() int64 {
	return int64(c)
}

// Side of an order.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Uint8 returns the on-chain side code used inside the EIP-712 order struct.
// The REST layer always transmits the string form; only the signing encoder
// uses the numeric code.
func (s Side) Uint8() uint8 {
	if s == SideSell {
		return 1
	}
	return 0
}

// OrderType controls the time-in-force semantics of an order.
type OrderType string

const (
	// OrderTypeGTC is Good-Til-Cancelled, the standard limit order.
	OrderTypeGTC OrderType = "GTC"
	// OrderTypeFOK is Fill-Or-Kill: execute completely or not at all.
	OrderTypeFOK OrderType = "FOK"
	// OrderTypeGTD is Good-Til-Date, a limit order with expiration.
	OrderTypeGTD OrderType = "GTD"
	// OrderTypeFAK is Fill-And-Kill: take what is available, cancel the rest.
	OrderTypeFAK OrderType = "FAK"
)

// SignatureType selects the on-chain signature verification path.
type SignatureType int

const (
	// SignatureEOA is a standard externally-owned-account ECDSA signature.
	SignatureEOA SignatureType = 0
	// SignaturePolyProxy verifies through a Polymarket proxy wallet.
	SignaturePolyProxy SignatureType = 1
	// SignaturePolyGnosisSafe verifies through a Gnosis Safe (EIP-1271).
	SignaturePolyGnosisSafe SignatureType = 2
)

// TickSize is the minimum price increment of a market. It also determines
// the precision profile orders must be rounded to.
type TickSize string

const (
	TickSize01    TickSize = "0.1"
	TickSize001   TickSize = "0.01"
	TickSize0001  TickSize = "0.001"
	TickSize00001 TickSize = "0.0001"
)

// ParseTickSize maps the exchange's string representation onto the enum.
func ParseTickSize(s string) (TickSize, error) {
	switch TickSize(s) {
	case TickSize01, TickSize001, TickSize0001, TickSize00001:
		return TickSize(s), nil
	}
	return "", fmt.Errorf("invalid tick size %q", s)
}

// Decimal returns the tick as a decimal value.
func (t TickSize) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(string(t))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// IsSmallerThan reports whether t is a finer granularity than other.
func (t TickSize) IsSmallerThan(other TickSize) bool {
	return t.Decimal().LessThan(other.Decimal())
}

// Pagination cursors used by list endpoints.
const (
	InitialCursor = "MA=="
	EndCursor     = "LTE="
)
