package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
)

// GetMarkets returns one page of the markets listing. Pass
// clobtypes.InitialCursor for the first page; iteration ends when the
// response's next cursor equals clobtypes.EndCursor.
func (c *Client) GetMarkets(ctx context.Context, cursor string) (*clobtypes.MarketsPage, error) {
	if cursor == "" {
		cursor = clobtypes.InitialCursor
	}
	query := url.Values{"next_cursor": {cursor}}
	var page clobtypes.MarketsPage
	if err := c.doRequest(ctx, http.MethodGet, endpointMarkets, query, nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetMarket fetches one market by condition id.
func (c *Client) GetMarket(ctx context.Context, conditionID string) (*clobtypes.Market, error) {
	var market clobtypes.Market
	if err := c.doRequest(ctx, http.MethodGet, endpointMarket+conditionID, nil, nil, nil, &market); err != nil {
		return nil, err
	}
	return &market, nil
}

// GetOrderBook fetches the book snapshot for a token. Levels come back the
// way the exchange lists them: worst price first, best price last.
func (c *Client) GetOrderBook(ctx context.Context, tokenID string) (*clobtypes.OrderBookSummary, error) {
	query := url.Values{"token_id": {tokenID}}
	var book clobtypes.OrderBookSummary
	if err := c.doRequest(ctx, http.MethodGet, endpointOrderBook, query, nil, nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// GetOrderBooks fetches several book snapshots in one call.
func (c *Client) GetOrderBooks(ctx context.Context, tokenIDs []string) ([]clobtypes.OrderBookSummary, error) {
	type bookParam struct {
		TokenID string `json:"token_id"`
	}
	params := make([]bookParam, 0, len(tokenIDs))
	for _, id := range tokenIDs {
		params = append(params, bookParam{TokenID: id})
	}
	raw, err := marshalBody(params)
	if err != nil {
		return nil, err
	}
	var books []clobtypes.OrderBookSummary
	if err := c.doRequest(ctx, http.MethodPost, endpointOrderBooks, nil, nil, raw, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetPrice returns the best price for a token on one side of the book.
func (c *Client) GetPrice(ctx context.Context, tokenID string, side clobtypes.Side) (string, error) {
	query := url.Values{"token_id": {tokenID}, "side": {string(side)}}
	var resp clobtypes.PriceResponse
	if err := c.doRequest(ctx, http.MethodGet, endpointPrice, query, nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.Price, nil
}

// GetMidpoint returns the book midpoint for a token.
func (c *Client) GetMidpoint(ctx context.Context, tokenID string) (string, error) {
	query := url.Values{"token_id": {tokenID}}
	var resp clobtypes.MidpointResponse
	if err := c.doRequest(ctx, http.MethodGet, endpointMidpoint, query, nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.Mid, nil
}

// GetSpread returns the bid/ask spread for a token.
func (c *Client) GetSpread(ctx context.Context, tokenID string) (string, error) {
	query := url.Values{"token_id": {tokenID}}
	var resp clobtypes.SpreadResponse
	if err := c.doRequest(ctx, http.MethodGet, endpointSpread, query, nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.Spread, nil
}

// GetLastTradePrice returns the price and side of the last fill for a token.
func (c *Client) GetLastTradePrice(ctx context.Context, tokenID string) (*clobtypes.LastTradePriceResponse, error) {
	query := url.Values{"token_id": {tokenID}}
	var resp clobtypes.LastTradePriceResponse
	if err := c.doRequest(ctx, http.MethodGet, endpointLastTradePrice, query, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetNotifications lists the account's pending notifications.
func (c *Client) GetNotifications(ctx context.Context) ([]clobtypes.Notification, error) {
	var resp []clobtypes.Notification
	if err := c.l2Request(ctx, http.MethodGet, endpointNotifications, nil, nil, &resp, false); err != nil {
		return nil, err
	}
	return resp, nil
}

// DropNotifications acknowledges notifications by id.
func (c *Client) DropNotifications(ctx context.Context, ids []string) error {
	query := url.Values{}
	if len(ids) > 0 {
		query.Set("ids", strings.Join(ids, ","))
	}
	return c.l2Request(ctx, http.MethodDelete, endpointNotifications, query, nil, nil, false)
}

// GetTickSize resolves a token's tick size, consulting the cache first.
func (c *Client) GetTickSize(ctx context.Context, tokenID string) (clobtypes.TickSize, error) {
	if tick, ok := c.cache.GetTickSize(ctx, tokenID); ok {
		return tick, nil
	}

	query := url.Values{"token_id": {tokenID}}
	var resp clobtypes.TickSizeResponse
	if err := c.doRequest(ctx, http.MethodGet, endpointTickSize, query, nil, nil, &resp); err != nil {
		return "", err
	}

	tick, err := clobtypes.ParseTickSize(strings.TrimSpace(resp.MinimumTickSize))
	if err != nil {
		return "", err
	}
	c.cache.SetTickSize(ctx, tokenID, tick)
	return tick, nil
}

// GetNegRisk resolves whether a token's market routes through the neg-risk
// exchange, consulting the cache first.
func (c *Client) GetNegRisk(ctx context.Context, tokenID string) (bool, error) {
	if v, ok := c.cache.GetNegRisk(ctx, tokenID); ok {
		return v, nil
	}

	query := url.Values{"token_id": {tokenID}}
	var resp clobtypes.NegRiskResponse
	if err := c.doRequest(ctx, http.MethodGet, endpointNegRisk, query, nil, nil, &resp); err != nil {
		return false, err
	}
	c.cache.SetNegRisk(ctx, tokenID, resp.NegRisk)
	return resp.NegRisk, nil
}

// GetFeeRateBps resolves the market-mandated fee rate for a token,
// consulting the cache first.
func (c *Client) GetFeeRateBps(ctx context.Context, tokenID string) (int64, error) {
	if v, ok := c.cache.GetFeeRateBps(ctx, tokenID); ok {
		return v, nil
	}

	query := url.Values{"token_id": {tokenID}}
	var resp clobtypes.FeeRateResponse
	if err := c.doRequest(ctx, http.MethodGet, endpointFeeRate, query, nil, nil, &resp); err != nil {
		return 0, err
	}
	c.cache.SetFeeRateBps(ctx, tokenID, resp.FeeRateBps)
	return resp.FeeRateBps, nil
}

// GetBalanceAllowance queries collateral or conditional balances for the
// authenticated account.
func (c *Client) GetBalanceAllowance(ctx context.Context, assetType clobtypes.AssetType, tokenID string) (*clobtypes.BalanceAllowance, error) {
	query := url.Values{"asset_type": {string(assetType)}}
	if tokenID != "" {
		query.Set("token_id", tokenID)
	}
	var resp clobtypes.BalanceAllowance
	if err := c.l2Request(ctx, http.MethodGet, endpointBalanceAllowance, query, nil, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateBalanceAllowance asks the exchange to refresh its cached view of the
// account's balances and allowances.
func (c *Client) UpdateBalanceAllowance(ctx context.Context, assetType clobtypes.AssetType, tokenID string) error {
	query := url.Values{"asset_type": {string(assetType)}}
	if tokenID != "" {
		query.Set("token_id", tokenID)
	}
	return c.l2Request(ctx, http.MethodGet, endpointBalanceAllowanceUpdate, query, nil, nil, false)
}
