package orderbuilder

import (
	"fmt"

	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/shopspring/decimal"
)

// Book snapshots list levels worst price first, best price last, so both
// resolvers walk the slice back to front to consume the best liquidity
// first. The level at which the running sum first covers the requested
// amount is the worst price the order has to cross, and that price is what
// gets signed: conservative enough to guarantee the intended fill.

// CalculateBuyMarketPrice resolves the execution price for a market buy by
// walking the ask side. amountToMatch is notional collateral to spend.
//
// Under FOK a shortfall fails with ErrNoMatch; any partial-fill policy
// returns the deepest touched price instead. An empty book always fails.
func CalculateBuyMarketPrice(asks []clobtypes.OrderSummary, amountToMatch decimal.Decimal, orderType clobtypes.OrderType) (decimal.Decimal, error) {
	if len(asks) == 0 {
		return decimal.Zero, clobtypes.ErrNoMatch
	}

	sum := decimal.Zero
	for i := len(asks) - 1; i >= 0; i-- {
		price, size, err := parseLevel(asks[i])
		if err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(price.Mul(size))
		if sum.GreaterThanOrEqual(amountToMatch) {
			return price, nil
		}
	}

	if orderType == clobtypes.OrderTypeFOK {
		return decimal.Zero, clobtypes.ErrNoMatch
	}

	price, _, err := parseLevel(asks[0])
	return price, err
}

// CalculateSellMarketPrice resolves the execution price for a market sell by
// walking the bid side. amountToMatch is the number of shares to sell.
func CalculateSellMarketPrice(bids []clobtypes.OrderSummary, amountToMatch decimal.Decimal, orderType clobtypes.OrderType) (decimal.Decimal, error) {
	if len(bids) == 0 {
		return decimal.Zero, clobtypes.ErrNoMatch
	}

	sum := decimal.Zero
	for i := len(bids) - 1; i >= 0; i-- {
		price, size, err := parseLevel(bids[i])
		if err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(size)
		if sum.GreaterThanOrEqual(amountToMatch) {
			return price, nil
		}
	}

	if orderType == clobtypes.OrderTypeFOK {
		return decimal.Zero, clobtypes.ErrNoMatch
	}

	price, _, err := parseLevel(bids[0])
	return price, err
}

func parseLevel(level clobtypes.OrderSummary) (price, size decimal.Decimal, err error) {
	price, err = decimal.NewFromString(level.Price)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid price in orderbook: %w", err)
	}
	size, err = decimal.NewFromString(level.Size)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid size in orderbook: %w", err)
	}
	return price, size, nil
}
