package orderbuilder

import (
	"math/big"

	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/shopspring/decimal"
)

// RoundConfig is the precision profile derived from a market's tick size:
// decimal places allowed for the price, the size and the resulting amounts.
type RoundConfig struct {
	Price  int32
	Size   int32
	Amount int32
}

// RoundConfigFor maps a tick size onto its precision profile.
func RoundConfigFor(tick clobtypes.TickSize) (RoundConfig, error) {
	switch tick {
	case clobtypes.TickSize01:
		return RoundConfig{Price: 1, Size: 2, Amount: 3}, nil
	case clobtypes.TickSize001:
		return RoundConfig{Price: 2, Size: 2, Amount: 4}, nil
	case clobtypes.TickSize0001:
		return RoundConfig{Price: 3, Size: 2, Amount: 5}, nil
	case clobtypes.TickSize00001:
		return RoundConfig{Price: 4, Size: 2, Amount: 6}, nil
	}
	return RoundConfig{}, &clobtypes.InvalidTickSizeError{TickSize: tick, MinTickSize: clobtypes.TickSize01}
}

// RoundNormal rounds half away from zero at the given decimal places.
func RoundNormal(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// RoundDown truncates toward zero at the given decimal places.
func RoundDown(d decimal.Decimal, places int32) decimal.Decimal {
	return d.RoundDown(places)
}

// RoundUp rounds away from zero at the given decimal places.
func RoundUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.RoundUp(places)
}

// DecimalPlaces returns the number of significant digits after the decimal
// point, ignoring trailing zeros an arithmetic result may carry.
func DecimalPlaces(d decimal.Decimal) int32 {
	places := int32(0)
	for !d.Truncate(places).Equal(d) {
		places++
	}
	return places
}

// PriceValid reports whether the price lies inside the closed interval
// [tick, 1-tick].
func PriceValid(price decimal.Decimal, tick clobtypes.TickSize) bool {
	t := tick.Decimal()
	return price.GreaterThanOrEqual(t) && price.LessThanOrEqual(decimal.NewFromInt(1).Sub(t))
}

// RawAmounts is the intermediate result of amount rounding: maker and taker
// legs still in human units, not yet scaled to 6-decimal integers.
type RawAmounts struct {
	Side     clobtypes.Side
	MakerAmt decimal.Decimal
	TakerAmt decimal.Decimal
}

// clampAmount enforces the amount-precision invariant on a derived leg.
// First try a cheap round up at amount+4 places so no notional value is
// silently lost; only if the result is still over-precise round down at the
// hard limit.
func clampAmount(amt decimal.Decimal, cfg RoundConfig) decimal.Decimal {
	if DecimalPlaces(amt) > cfg.Amount {
		amt = RoundUp(amt, cfg.Amount+4)
		if DecimalPlaces(amt) > cfg.Amount {
			amt = RoundDown(amt, cfg.Amount)
		}
	}
	return amt
}

// OrderRawAmounts converts a limit order's price and size into the two
// order legs. The returned amounts are guaranteed to have at most
// cfg.Amount decimal places.
func OrderRawAmounts(side clobtypes.Side, size, price decimal.Decimal, cfg RoundConfig) RawAmounts {
	rawPrice := RoundNormal(price, cfg.Price)

	if side == clobtypes.SideBuy {
		rawTaker := RoundDown(size, cfg.Size)
		rawMaker := clampAmount(rawTaker.Mul(rawPrice), cfg)
		return RawAmounts{Side: side, MakerAmt: rawMaker, TakerAmt: rawTaker}
	}

	rawMaker := RoundDown(size, cfg.Size)
	rawTaker := clampAmount(rawMaker.Mul(rawPrice), cfg)
	return RawAmounts{Side: side, MakerAmt: rawMaker, TakerAmt: rawTaker}
}

// MarketOrderRawAmounts mirrors OrderRawAmounts for market orders, where
// the caller supplies a notional amount instead of a size. For a buy the
// taker leg is derived by dividing the notional by the price.
func MarketOrderRawAmounts(side clobtypes.Side, amount, price decimal.Decimal, cfg RoundConfig) RawAmounts {
	rawPrice := RoundNormal(price, cfg.Price)

	if side == clobtypes.SideBuy {
		rawMaker := RoundDown(amount, cfg.Size)
		rawTaker := clampAmount(rawMaker.Div(rawPrice), cfg)
		return RawAmounts{Side: side, MakerAmt: rawMaker, TakerAmt: rawTaker}
	}

	rawMaker := RoundDown(amount, cfg.Size)
	rawTaker := clampAmount(rawMaker.Mul(rawPrice), cfg)
	return RawAmounts{Side: side, MakerAmt: rawMaker, TakerAmt: rawTaker}
}

// ToTokenDecimals scales a human-unit amount to the 6-decimal fixed-point
// integer representation used on chain.
func ToTokenDecimals(amt decimal.Decimal) *big.Int {
	scaled := amt.Shift(6)
	if DecimalPlaces(scaled) > 0 {
		scaled = RoundNormal(scaled, 0)
	}
	return scaled.BigInt()
}
