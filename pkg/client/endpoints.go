package client

// REST endpoint paths. The HMAC signature covers the bare path, so these
// constants are shared between request building and header signing.
const (
	endpointTime = "/time"

	endpointCreateApiKey = "/auth/api-key"
	endpointGetApiKeys   = "/auth/api-keys"
	endpointDeleteApiKey = "/auth/api-key"
	endpointDeriveApiKey = "/auth/derive-api-key"
	endpointClosedOnly   = "/auth/ban-status/closed-only"

	endpointMarkets = "/markets"
	endpointMarket  = "/markets/"

	endpointOrderBook  = "/book"
	endpointOrderBooks = "/books"

	endpointPrice          = "/price"
	endpointMidpoint       = "/midpoint"
	endpointSpread         = "/spreads"
	endpointLastTradePrice = "/last-trade-price"

	endpointTickSize = "/tick-size"
	endpointNegRisk  = "/neg-risk"
	endpointFeeRate  = "/fee-rate"

	endpointPostOrder          = "/order"
	endpointPostOrders         = "/orders"
	endpointCancelOrder        = "/order"
	endpointCancelOrders       = "/orders"
	endpointCancelAll          = "/cancel-all"
	endpointCancelMarketOrders = "/cancel-market-orders"
	endpointGetOrder           = "/data/order/"
	endpointOpenOrders         = "/data/orders"
	endpointTrades             = "/data/trades"

	endpointBalanceAllowance       = "/balance-allowance"
	endpointBalanceAllowanceUpdate = "/balance-allowance/update"

	endpointNotifications = "/notifications"
)
