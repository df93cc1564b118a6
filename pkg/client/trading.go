package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/GoPolymarket/go-clob-client/pkg/orderbuilder"
	"github.com/shopspring/decimal"
)

// CreateOrder builds and signs a limit order. When opts is nil the market
// parameters (tick size, neg-risk flag, fee rate) are resolved through the
// metadata cache. A caller-supplied tick size coarser than the market
// minimum is accepted; a finer one is rejected before any signing work.
func (c *Client) CreateOrder(ctx context.Context, order *clobtypes.UserOrder, opts *clobtypes.CreateOrderOptions) (*clobtypes.SignedOrder, error) {
	if err := c.canL1Auth(); err != nil {
		return nil, err
	}

	resolved, err := c.resolveOrderOptions(ctx, order.TokenID, opts)
	if err != nil {
		return nil, err
	}
	return c.builder.BuildOrder(ctx, order, *resolved)
}

// CreateMarketOrder builds and signs a market order. When the caller leaves
// the price unset it is resolved by walking the live book: asks for a BUY,
// bids for a SELL. The order type defaults to FOK.
func (c *Client) CreateMarketOrder(ctx context.Context, order *clobtypes.UserMarketOrder, opts *clobtypes.CreateOrderOptions) (*clobtypes.SignedOrder, error) {
	if err := c.canL1Auth(); err != nil {
		return nil, err
	}

	if order.OrderType == "" {
		order.OrderType = clobtypes.OrderTypeFOK
	}

	if order.Price == nil || order.Price.IsZero() {
		book, err := c.GetOrderBook(ctx, order.TokenID)
		if err != nil {
			return nil, err
		}
		if book == nil {
			return nil, clobtypes.ErrNoOrderbook
		}

		price, err := c.resolveMarketPrice(book, order)
		if err != nil {
			return nil, err
		}
		order.Price = &price
	}

	resolved, err := c.resolveOrderOptions(ctx, order.TokenID, opts)
	if err != nil {
		return nil, err
	}
	return c.builder.BuildMarketOrder(ctx, order, *resolved)
}

func (c *Client) resolveMarketPrice(book *clobtypes.OrderBookSummary, order *clobtypes.UserMarketOrder) (price decimal.Decimal, err error) {
	if order.Side == clobtypes.SideBuy {
		return orderbuilder.CalculateBuyMarketPrice(book.Asks, order.Amount, order.OrderType)
	}
	return orderbuilder.CalculateSellMarketPrice(book.Bids, order.Amount, order.OrderType)
}

// resolveOrderOptions fills in market parameters missing from opts. A nil
// opts resolves everything from the exchange (cached per token).
func (c *Client) resolveOrderOptions(ctx context.Context, tokenID string, opts *clobtypes.CreateOrderOptions) (*clobtypes.CreateOrderOptions, error) {
	minTick, err := c.GetTickSize(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	resolved := clobtypes.CreateOrderOptions{TickSize: minTick}
	if opts != nil {
		resolved = *opts
		if resolved.TickSize == "" {
			resolved.TickSize = minTick
		} else if resolved.TickSize.IsSmallerThan(minTick) {
			return nil, &clobtypes.InvalidTickSizeError{TickSize: resolved.TickSize, MinTickSize: minTick}
		}
	}

	if opts == nil {
		negRisk, err := c.GetNegRisk(ctx, tokenID)
		if err != nil {
			return nil, err
		}
		resolved.NegRisk = negRisk
	}

	if resolved.MarketFeeRateBps == 0 {
		feeRate, err := c.GetFeeRateBps(ctx, tokenID)
		if err != nil {
			return nil, err
		}
		resolved.MarketFeeRateBps = feeRate
	}

	return &resolved, nil
}

// PostOrder submits a signed order. When builder credentials are configured
// the request carries the builder-augmented header set.
func (c *Client) PostOrder(ctx context.Context, order *clobtypes.SignedOrder, orderType clobtypes.OrderType) (*clobtypes.PostOrderResponse, error) {
	if orderType == "" {
		orderType = clobtypes.OrderTypeGTC
	}
	body := clobtypes.PostOrderRequest{
		Order:     *order,
		Owner:     c.ownerKey(),
		OrderType: orderType,
	}
	var resp clobtypes.PostOrderResponse
	if err := c.l2Request(ctx, http.MethodPost, endpointPostOrder, nil, body, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PostOrders submits a batch of signed orders in one call.
func (c *Client) PostOrders(ctx context.Context, orders []clobtypes.PostOrderRequest) ([]clobtypes.PostOrderResponse, error) {
	for i := range orders {
		if orders[i].Owner == "" {
			orders[i].Owner = c.ownerKey()
		}
		if orders[i].OrderType == "" {
			orders[i].OrderType = clobtypes.OrderTypeGTC
		}
	}
	var resp []clobtypes.PostOrderResponse
	if err := c.l2Request(ctx, http.MethodPost, endpointPostOrders, nil, orders, &resp, true); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) ownerKey() string {
	if c.creds == nil {
		return ""
	}
	return c.creds.Key
}

// CancelOrder cancels a single resting order by id.
func (c *Client) CancelOrder(ctx context.Context, orderID string) (*clobtypes.CancelResponse, error) {
	body := map[string]string{"orderID": orderID}
	var resp clobtypes.CancelResponse
	if err := c.l2Request(ctx, http.MethodDelete, endpointCancelOrder, nil, body, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelOrders cancels a batch of resting orders by id.
func (c *Client) CancelOrders(ctx context.Context, orderIDs []string) (*clobtypes.CancelResponse, error) {
	var resp clobtypes.CancelResponse
	if err := c.l2Request(ctx, http.MethodDelete, endpointCancelOrders, nil, orderIDs, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelAll cancels every resting order owned by the account.
func (c *Client) CancelAll(ctx context.Context) (*clobtypes.CancelResponse, error) {
	var resp clobtypes.CancelResponse
	if err := c.l2Request(ctx, http.MethodDelete, endpointCancelAll, nil, nil, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelMarketOrders cancels the account's resting orders in one market,
// selected by condition id or asset id.
func (c *Client) CancelMarketOrders(ctx context.Context, params clobtypes.OrderCancelParams) (*clobtypes.CancelResponse, error) {
	var resp clobtypes.CancelResponse
	if err := c.l2Request(ctx, http.MethodDelete, endpointCancelMarketOrders, nil, params, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetOrder fetches one order (resting or historical) by id.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*clobtypes.OpenOrder, error) {
	var resp clobtypes.OpenOrder
	if err := c.l2Request(ctx, http.MethodGet, endpointGetOrder+orderID, nil, nil, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetOpenOrders lists the account's resting orders, optionally filtered.
func (c *Client) GetOpenOrders(ctx context.Context, params *clobtypes.OpenOrderParams) ([]clobtypes.OpenOrder, error) {
	query := url.Values{}
	if params != nil {
		if params.ID != "" {
			query.Set("id", params.ID)
		}
		if params.Market != "" {
			query.Set("market", params.Market)
		}
		if params.AssetID != "" {
			query.Set("asset_id", params.AssetID)
		}
	}
	var resp []clobtypes.OpenOrder
	if err := c.l2Request(ctx, http.MethodGet, endpointOpenOrders, query, nil, &resp, false); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetTrades lists the account's fills, optionally filtered.
func (c *Client) GetTrades(ctx context.Context, params *clobtypes.TradeParams) ([]clobtypes.Trade, error) {
	query := url.Values{}
	if params != nil {
		if params.ID != "" {
			query.Set("id", params.ID)
		}
		if params.Market != "" {
			query.Set("market", params.Market)
		}
		if params.AssetID != "" {
			query.Set("asset_id", params.AssetID)
		}
		if params.MakerAddr != "" {
			query.Set("maker_address", params.MakerAddr)
		}
		if params.Before != "" {
			query.Set("before", params.Before)
		}
		if params.After != "" {
			query.Set("after", params.After)
		}
	}
	var resp []clobtypes.Trade
	if err := c.l2Request(ctx, http.MethodGet, endpointTrades, query, nil, &resp, false); err != nil {
		return nil, err
	}
	return resp, nil
}
