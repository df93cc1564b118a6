package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/GoPolymarket/go-clob-client/pkg/headers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testSecret     = "aFRjtLLvvPwrGtYv6xNSam4avBBnvoOWPFc7SAtf1tY="
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func testCreds() clobtypes.ApiCreds {
	return clobtypes.ApiCreds{Key: "key-1", Secret: testSecret, Passphrase: "pass-1"}
}

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	base := []Option{WithPrivateKey(testPrivateKey)}
	base = append(base, opts...)
	return NewClient(srv.URL, clobtypes.ChainPolygon, base...), srv
}

func TestGetServerTime(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/time", r.URL.Path)
		w.Write([]byte("1700000000"))
	}))

	ts, err := c.GetServerTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), ts)
}

func TestCreateApiKey_SendsL1Headers(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/api-key", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get(headers.PolyAddress))
		assert.NotEmpty(t, r.Header.Get(headers.PolySignature))
		assert.NotEmpty(t, r.Header.Get(headers.PolyTimestamp))
		assert.Equal(t, "5", r.Header.Get(headers.PolyNonce))

		json.NewEncoder(w).Encode(clobtypes.ApiCreds{Key: "new-key"})
	}))

	nonce := int64(5)
	creds, err := c.CreateApiKey(context.Background(), &nonce)
	require.NoError(t, err)
	assert.Equal(t, "new-key", creds.Key)
}

func TestCreateApiKey_RequiresSigner(t *testing.T) {
	c := NewClient("http://unused", clobtypes.ChainPolygon)
	_, err := c.CreateApiKey(context.Background(), nil)
	assert.ErrorIs(t, err, clobtypes.ErrL1AuthUnavailable)
}

func TestCreateOrDeriveApiKey_PrefersDerive(t *testing.T) {
	var created atomic.Bool
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/derive-api-key":
			json.NewEncoder(w).Encode(clobtypes.ApiCreds{Key: "derived"})
		case "/auth/api-key":
			created.Store(true)
			json.NewEncoder(w).Encode(clobtypes.ApiCreds{Key: "created"})
		default:
			http.NotFound(w, r)
		}
	}))

	creds, err := c.CreateOrDeriveApiKey(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "derived", creds.Key)
	assert.False(t, created.Load())
}

func TestCreateOrDeriveApiKey_FallsBackToCreate(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/derive-api-key":
			http.Error(w, `{"error":"unknown wallet"}`, http.StatusBadRequest)
		case "/auth/api-key":
			json.NewEncoder(w).Encode(clobtypes.ApiCreds{Key: "created"})
		default:
			http.NotFound(w, r)
		}
	}))

	creds, err := c.CreateOrDeriveApiKey(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "created", creds.Key)
}

func TestGetTickSize_CachesResult(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/tick-size", r.URL.Path)
		assert.Equal(t, "token-1", r.URL.Query().Get("token_id"))
		json.NewEncoder(w).Encode(clobtypes.TickSizeResponse{MinimumTickSize: "0.01"})
	}))

	for i := 0; i < 3; i++ {
		tick, err := c.GetTickSize(context.Background(), "token-1")
		require.NoError(t, err)
		assert.Equal(t, clobtypes.TickSize001, tick)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetNegRisk_CachesResult(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(clobtypes.NegRiskResponse{NegRisk: true})
	}))

	for i := 0; i < 3; i++ {
		negRisk, err := c.GetNegRisk(context.Background(), "token-1")
		require.NoError(t, err)
		assert.True(t, negRisk)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestPostOrder_SignsSerializedBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order", r.URL.Path)
		assert.Equal(t, "key-1", r.Header.Get(headers.PolyApiKey))
		assert.Equal(t, "pass-1", r.Header.Get(headers.PolyPassphrase))
		assert.NotEmpty(t, r.Header.Get(headers.PolySignature))
		assert.Empty(t, r.Header.Get(headers.PolyBuilderApiKey))

		var req clobtypes.PostOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "key-1", req.Owner)
		assert.Equal(t, clobtypes.OrderTypeGTC, req.OrderType)
		assert.Equal(t, clobtypes.SideBuy, req.Order.Side)

		json.NewEncoder(w).Encode(clobtypes.PostOrderResponse{Success: true, OrderID: "o-1"})
	}), WithApiCreds(testCreds()))

	resp, err := c.PostOrder(context.Background(), &clobtypes.SignedOrder{Side: clobtypes.SideBuy}, "")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "o-1", resp.OrderID)
}

func TestPostOrder_BuilderHeaders(t *testing.T) {
	builderCreds := clobtypes.BuilderApiCreds{Key: "builder-key", Secret: testSecret, Passphrase: "builder-pass"}

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "builder-key", r.Header.Get(headers.PolyBuilderApiKey))
		assert.Equal(t, "builder-pass", r.Header.Get(headers.PolyBuilderPassphrase))
		assert.NotEmpty(t, r.Header.Get(headers.PolyBuilderSignature))
		assert.NotEmpty(t, r.Header.Get(headers.PolyBuilderTimestamp))
		json.NewEncoder(w).Encode(clobtypes.PostOrderResponse{Success: true})
	}), WithApiCreds(testCreds()), WithBuilderCreds(builderCreds))

	_, err := c.PostOrder(context.Background(), &clobtypes.SignedOrder{}, clobtypes.OrderTypeFOK)
	require.NoError(t, err)
}

func TestPostOrder_RequiresL2(t *testing.T) {
	c, _ := newTestClient(t, http.NotFoundHandler())
	_, err := c.PostOrder(context.Background(), &clobtypes.SignedOrder{}, clobtypes.OrderTypeGTC)
	assert.ErrorIs(t, err, clobtypes.ErrL2AuthUnavailable)
}

func TestCreateMarketOrder_ResolvesPriceFromBook(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/book":
			json.NewEncoder(w).Encode(clobtypes.OrderBookSummary{
				Asks: []clobtypes.OrderSummary{
					{Price: "0.6", Size: "100"},
					{Price: "0.5", Size: "100"},
				},
			})
		case "/tick-size":
			json.NewEncoder(w).Encode(clobtypes.TickSizeResponse{MinimumTickSize: "0.01"})
		case "/neg-risk":
			json.NewEncoder(w).Encode(clobtypes.NegRiskResponse{})
		case "/fee-rate":
			json.NewEncoder(w).Encode(clobtypes.FeeRateResponse{})
		default:
			http.NotFound(w, r)
		}
	}))

	order := &clobtypes.UserMarketOrder{
		TokenID: "token-1",
		Amount:  dec(t, "40"),
		Side:    clobtypes.SideBuy,
	}
	signed, err := c.CreateMarketOrder(context.Background(), order, nil)
	require.NoError(t, err)

	// 40 collateral is covered by the best ask at 0.5; maker leg is the
	// collateral spent, taker leg the shares received at that price.
	assert.Equal(t, "40000000", signed.MakerAmount)
	assert.Equal(t, "80000000", signed.TakerAmount)
}

func TestCreateMarketOrder_NoLiquidity(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/book" {
			json.NewEncoder(w).Encode(clobtypes.OrderBookSummary{})
			return
		}
		http.NotFound(w, r)
	}))

	order := &clobtypes.UserMarketOrder{
		TokenID: "token-1",
		Amount:  dec(t, "40"),
		Side:    clobtypes.SideBuy,
	}
	_, err := c.CreateMarketOrder(context.Background(), order, nil)
	assert.ErrorIs(t, err, clobtypes.ErrNoMatch)
}

func TestCreateOrder_RejectsFinerTickThanMarket(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tick-size" {
			json.NewEncoder(w).Encode(clobtypes.TickSizeResponse{MinimumTickSize: "0.01"})
			return
		}
		http.NotFound(w, r)
	}))

	order := &clobtypes.UserOrder{
		TokenID: "token-1",
		Price:   dec(t, "0.5"),
		Size:    dec(t, "10"),
		Side:    clobtypes.SideBuy,
	}
	_, err := c.CreateOrder(context.Background(), order, &clobtypes.CreateOrderOptions{
		TickSize: clobtypes.TickSize0001,
	})

	var tickErr *clobtypes.InvalidTickSizeError
	require.ErrorAs(t, err, &tickErr)
	assert.Equal(t, clobtypes.TickSize0001, tickErr.TickSize)
	assert.Equal(t, clobtypes.TickSize001, tickErr.MinTickSize)
}

func TestDoRequest_HTTPError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"nope"}`, http.StatusTeapot)
	}))

	_, err := c.GetServerTime(context.Background())
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTeapot, httpErr.Status)
	assert.Contains(t, httpErr.Body, "nope")
}
