package clobtypes

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// UserOrder is the caller-supplied intent for a limit order. It stays in
// human units; the order builder converts it to integer-scaled amounts.
type UserOrder struct {
	// TokenID of the conditional token being traded (big-integer string).
	TokenID string `json:"tokenID"`

	// Price used to create the order.
	Price decimal.Decimal `json:"price"`

	// Size in conditional-token units.
	Size decimal.Decimal `json:"size"`

	Side Side `json:"side"`

	// FeeRateBps charged to the maker, in basis points.
	FeeRateBps *int64 `json:"feeRateBps,omitempty"`

	// Nonce used for on-chain cancellations.
	Nonce *int64 `json:"nonce,omitempty"`

	// Expiration as a unix timestamp; nil means no expiration.
	Expiration *int64 `json:"expiration,omitempty"`

	// Taker restricts who may fill the order; nil means public.
	Taker *common.Address `json:"taker,omitempty"`
}

// UserMarketOrder is the caller-supplied intent for a market order.
type UserMarketOrder struct {
	TokenID string `json:"tokenID"`

	// Price to sign at. When nil the execution price is resolved by walking
	// the order book.
	Price *decimal.Decimal `json:"price,omitempty"`

	// Amount is collateral to spend for BUY orders, shares to sell for SELL.
	Amount decimal.Decimal `json:"amount"`

	Side Side `json:"side"`

	FeeRateBps *int64          `json:"feeRateBps,omitempty"`
	Nonce      *int64          `json:"nonce,omitempty"`
	Taker      *common.Address `json:"taker,omitempty"`

	// OrderType is FOK or FAK; defaults to FOK.
	OrderType OrderType `json:"orderType,omitempty"`
}

// OrderData is the canonical on-chain order shape handed to the exchange
// signing primitive. Amounts are 6-decimal fixed-point integers rendered as
// decimal strings.
type OrderData struct {
	Maker         common.Address
	Taker         common.Address
	TokenID       string
	MakerAmount   string
	TakerAmount   string
	Side          Side
	FeeRateBps    string
	Nonce         string
	Signer        common.Address
	Expiration    string
	SignatureType SignatureType
}

// SignedOrder is OrderData plus salt and signature, ready for submission.
// Side is serialized as the literal "BUY"/"SELL" strings; the numeric side
// code exists only inside the EIP-712 encoding.
type SignedOrder struct {
	Salt          int64  `json:"salt"`
	Maker         string `json:"maker"`
	Signer        string `json:"signer"`
	Taker         string `json:"taker"`
	TokenID       string `json:"tokenId"`
	MakerAmount   string `json:"makerAmount"`
	TakerAmount   string `json:"takerAmount"`
	Expiration    string `json:"expiration"`
	Nonce         string `json:"nonce"`
	FeeRateBps    string `json:"feeRateBps"`
	Side          Side   `json:"side"`
	SignatureType int    `json:"signatureType"`
	Signature     string `json:"signature"`
}

// CreateOrderOptions carries the per-market parameters resolved before a
// build call: the tick size and whether the market routes through the
// neg-risk exchange.
type CreateOrderOptions struct {
	TickSize TickSize
	NegRisk  bool

	// MarketFeeRateBps is the fee rate the market mandates; a non-zero value
	// here must match any caller-supplied fee rate.
	MarketFeeRateBps int64
}

// PostOrderRequest is the payload for the order placement endpoint.
type PostOrderRequest struct {
	Order     SignedOrder `json:"order"`
	Owner     string      `json:"owner"`
	OrderType OrderType   `json:"orderType"`
}

// PostOrderResponse is returned by the order placement endpoint.
type PostOrderResponse struct {
	Success     bool     `json:"success"`
	ErrorMsg    string   `json:"errorMsg"`
	OrderID     string   `json:"orderId"`
	OrderHashes []string `json:"orderHashes"`
	Status      string   `json:"status"`
}

// OpenOrder describes a resting order returned by the data API.
type OpenOrder struct {
	ID              string   `json:"id"`
	Status          string   `json:"status"`
	Owner           string   `json:"owner"`
	MakerAddress    string   `json:"maker_address"`
	Market          string   `json:"market"`
	AssetID         string   `json:"asset_id"`
	Side            string   `json:"side"`
	OriginalSize    string   `json:"original_size"`
	SizeMatched     string   `json:"size_matched"`
	Price           string   `json:"price"`
	AssociateTrades []string `json:"associate_trades"`
	Outcome         string   `json:"outcome"`
	CreatedAt       int64    `json:"created_at"`
	Expiration      string   `json:"expiration"`
	OrderType       string   `json:"order_type"`
}

// OpenOrderParams filters the open orders listing.
type OpenOrderParams struct {
	ID      string
	Market  string
	AssetID string
}

// Trade is a fill reported by the data API.
type Trade struct {
	ID              string `json:"id"`
	TakerOrderID    string `json:"taker_order_id"`
	Market          string `json:"market"`
	AssetID         string `json:"asset_id"`
	Side            string `json:"side"`
	Size            string `json:"size"`
	Status          string `json:"status"`
	MatchTime       string `json:"match_time"`
	LastUpdate      string `json:"last_update"`
	Outcome         string `json:"outcome"`
	BucketIndex     int    `json:"bucket_index"`
	Owner           string `json:"owner"`
	TransactionHash string `json:"transaction_hash"`
	Price           string `json:"price"`
}

// TradeParams filters the trade listing.
type TradeParams struct {
	ID        string
	Market    string
	AssetID   string
	MakerAddr string
	Before    string
	After     string
}

// OrderCancelParams selects orders to cancel by market or asset.
type OrderCancelParams struct {
	Market  string `json:"market,omitempty"`
	AssetID string `json:"asset_id,omitempty"`
}

// CancelResponse lists the order ids that were (not) canceled.
type CancelResponse struct {
	Canceled    []string          `json:"canceled"`
	NotCanceled map[string]string `json:"not_canceled"`
}
