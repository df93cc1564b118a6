// Package gateway exposes the CLOB client as a small HTTP service: order
// placement and cancellation, book lookups and a persisted audit trail.
package gateway

import (
	"context"
	"errors"

	"github.com/GoPolymarket/go-clob-client/internal/pkg/apperrors"
	"github.com/GoPolymarket/go-clob-client/internal/pkg/metrics"
	"github.com/GoPolymarket/go-clob-client/internal/store"
	"github.com/GoPolymarket/go-clob-client/pkg/client"
	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/shopspring/decimal"
)

type Service struct {
	clob   *client.Client
	orders *store.OrderStore
}

// NewService wires the upstream client and an optional order store. A nil
// store disables the audit trail but not trading.
func NewService(clob *client.Client, orders *store.OrderStore) *Service {
	return &Service{clob: clob, orders: orders}
}

type OrderRequest struct {
	TokenID    string          `json:"token_id" binding:"required"`
	Price      decimal.Decimal `json:"price" binding:"required"`
	Size       decimal.Decimal `json:"size" binding:"required"`
	Side       clobtypes.Side  `json:"side" binding:"required"`
	OrderType  string          `json:"order_type"`
	FeeRateBps *int64          `json:"fee_rate_bps"`
	Nonce      *int64          `json:"nonce"`
	Expiration *int64          `json:"expiration"`
}

type MarketOrderRequest struct {
	TokenID    string           `json:"token_id" binding:"required"`
	Amount     decimal.Decimal  `json:"amount" binding:"required"`
	Side       clobtypes.Side   `json:"side" binding:"required"`
	Price      *decimal.Decimal `json:"price"`
	OrderType  string           `json:"order_type"`
	FeeRateBps *int64           `json:"fee_rate_bps"`
}

// PlaceOrder builds, signs, submits and records a limit order.
func (s *Service) PlaceOrder(ctx context.Context, requestID string, req OrderRequest) (*clobtypes.PostOrderResponse, error) {
	orderType := clobtypes.OrderType(req.OrderType)
	if orderType == "" {
		orderType = clobtypes.OrderTypeGTC
	}

	user := &clobtypes.UserOrder{
		TokenID:    req.TokenID,
		Price:      req.Price,
		Size:       req.Size,
		Side:       req.Side,
		FeeRateBps: req.FeeRateBps,
		Nonce:      req.Nonce,
		Expiration: req.Expiration,
	}

	signed, err := s.clob.CreateOrder(ctx, user, nil)
	if err != nil {
		return nil, mapClientError(err)
	}
	metrics.OrdersSigned.WithLabelValues(string(req.Side), string(orderType)).Inc()

	return s.submit(ctx, requestID, signed, orderType)
}

// BuildOrder builds and signs a limit order without submitting it. Callers
// that submit through their own channel post the returned payload themselves.
func (s *Service) BuildOrder(ctx context.Context, req OrderRequest) (*clobtypes.SignedOrder, error) {
	orderType := clobtypes.OrderType(req.OrderType)
	if orderType == "" {
		orderType = clobtypes.OrderTypeGTC
	}

	user := &clobtypes.UserOrder{
		TokenID:    req.TokenID,
		Price:      req.Price,
		Size:       req.Size,
		Side:       req.Side,
		FeeRateBps: req.FeeRateBps,
		Nonce:      req.Nonce,
		Expiration: req.Expiration,
	}

	signed, err := s.clob.CreateOrder(ctx, user, nil)
	if err != nil {
		return nil, mapClientError(err)
	}
	metrics.OrdersSigned.WithLabelValues(string(req.Side), string(orderType)).Inc()
	return signed, nil
}

// PlaceMarketOrder builds, signs, submits and records a market order.
func (s *Service) PlaceMarketOrder(ctx context.Context, requestID string, req MarketOrderRequest) (*clobtypes.PostOrderResponse, error) {
	orderType := clobtypes.OrderType(req.OrderType)
	if orderType == "" {
		orderType = clobtypes.OrderTypeFOK
	}

	user := &clobtypes.UserMarketOrder{
		TokenID:    req.TokenID,
		Amount:     req.Amount,
		Side:       req.Side,
		Price:      req.Price,
		FeeRateBps: req.FeeRateBps,
		OrderType:  orderType,
	}

	signed, err := s.clob.CreateMarketOrder(ctx, user, nil)
	if err != nil {
		return nil, mapClientError(err)
	}
	metrics.OrdersSigned.WithLabelValues(string(req.Side), string(orderType)).Inc()

	return s.submit(ctx, requestID, signed, orderType)
}

func (s *Service) submit(ctx context.Context, requestID string, signed *clobtypes.SignedOrder, orderType clobtypes.OrderType) (*clobtypes.PostOrderResponse, error) {
	resp, err := s.clob.PostOrder(ctx, signed, orderType)

	if s.orders != nil {
		if recErr := s.orders.RecordSubmission(ctx, requestID, signed, orderType, resp, err); recErr != nil {
			// The audit trail must not block trading.
			metrics.OrdersPosted.WithLabelValues("record_failed").Inc()
		}
	}

	if err != nil {
		metrics.OrdersPosted.WithLabelValues("error").Inc()
		return nil, apperrors.New(apperrors.ErrUpstream, "order submission failed", err)
	}
	if resp.Success {
		metrics.OrdersPosted.WithLabelValues("success").Inc()
	} else {
		metrics.OrdersPosted.WithLabelValues("rejected").Inc()
	}
	return resp, nil
}

// CancelOrder cancels one resting order.
func (s *Service) CancelOrder(ctx context.Context, orderID string) (*clobtypes.CancelResponse, error) {
	resp, err := s.clob.CancelOrder(ctx, orderID)
	if err != nil {
		return nil, mapClientError(err)
	}
	return resp, nil
}

// CancelAll cancels every resting order.
func (s *Service) CancelAll(ctx context.Context) (*clobtypes.CancelResponse, error) {
	resp, err := s.clob.CancelAll(ctx)
	if err != nil {
		return nil, mapClientError(err)
	}
	return resp, nil
}

// GetOrderBook fetches the live book snapshot for a token.
func (s *Service) GetOrderBook(ctx context.Context, tokenID string) (*clobtypes.OrderBookSummary, error) {
	book, err := s.clob.GetOrderBook(ctx, tokenID)
	if err != nil {
		return nil, mapClientError(err)
	}
	return book, nil
}

// RecentOrders lists the newest audit records.
func (s *Service) RecentOrders(ctx context.Context, limit int) ([]store.OrderRecord, error) {
	if s.orders == nil {
		return nil, apperrors.New(apperrors.ErrNotFound, "order store not configured", nil)
	}
	return s.orders.ListRecent(ctx, limit)
}

func mapClientError(err error) error {
	var invalidPrice *clobtypes.InvalidPriceError
	var invalidTick *clobtypes.InvalidTickSizeError
	var invalidFee *clobtypes.InvalidFeeRateError
	var signingErr *clobtypes.SigningError

	switch {
	case errors.Is(err, clobtypes.ErrNoMatch), errors.Is(err, clobtypes.ErrNoOrderbook):
		return apperrors.New(apperrors.ErrNoMatch, err.Error(), err)
	case errors.Is(err, clobtypes.ErrL1AuthUnavailable), errors.Is(err, clobtypes.ErrL2AuthUnavailable):
		return apperrors.New(apperrors.ErrAuthFailed, err.Error(), err)
	case errors.As(err, &invalidPrice), errors.As(err, &invalidTick), errors.As(err, &invalidFee):
		return apperrors.New(apperrors.ErrInvalidRequest, err.Error(), err)
	case errors.As(err, &signingErr):
		return apperrors.New(apperrors.ErrSigning, err.Error(), err)
	}

	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		return apperrors.New(apperrors.ErrUpstream, err.Error(), err)
	}
	return apperrors.Wrap(err)
}
