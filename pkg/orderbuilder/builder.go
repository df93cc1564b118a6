package orderbuilder

import (
	"context"
	"strconv"

	"github.com/GoPolymarket/go-clob-client/pkg/auth"
	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// OrderBuilder assembles and signs exchange orders. It is stateless apart
// from its configuration; concurrent builds are independent.
type OrderBuilder struct {
	chain    clobtypes.Chain
	provider auth.Provider
	sigType  clobtypes.SignatureType
	funder   *common.Address
	exchange ExchangeSigner
}

func NewOrderBuilder(chain clobtypes.Chain, provider auth.Provider) *OrderBuilder {
	return &OrderBuilder{
		chain:    chain,
		provider: provider,
		sigType:  clobtypes.SignatureEOA,
		exchange: NewExchangeSigner(),
	}
}

// WithSignatureType stamps orders with the given on-chain verification tag.
func (b *OrderBuilder) WithSignatureType(t clobtypes.SignatureType) *OrderBuilder {
	b.sigType = t
	return b
}

// WithFunder sets the maker address when funds are held somewhere other than
// the signing wallet (proxy and safe setups).
func (b *OrderBuilder) WithFunder(addr common.Address) *OrderBuilder {
	b.funder = &addr
	return b
}

// WithExchangeSigner substitutes the order-signing primitive.
func (b *OrderBuilder) WithExchangeSigner(s ExchangeSigner) *OrderBuilder {
	b.exchange = s
	return b
}

// BuildOrder validates, rounds and signs a limit order.
func (b *OrderBuilder) BuildOrder(ctx context.Context, order *clobtypes.UserOrder, opts clobtypes.CreateOrderOptions) (*clobtypes.SignedOrder, error) {
	cfg, err := RoundConfigFor(opts.TickSize)
	if err != nil {
		return nil, err
	}

	if !PriceValid(order.Price, opts.TickSize) {
		tick := opts.TickSize.Decimal()
		return nil, &clobtypes.InvalidPriceError{
			Price: order.Price.String(),
			Min:   tick.String(),
			Max:   decimal.NewFromInt(1).Sub(tick).String(),
		}
	}

	feeRateBps, err := resolveFeeRate(order.FeeRateBps, opts.MarketFeeRateBps)
	if err != nil {
		return nil, err
	}

	raw := OrderRawAmounts(order.Side, order.Size, order.Price, cfg)

	return b.signAssembled(ctx, order.TokenID, raw, feeRateBps, order.Nonce, order.Expiration, order.Taker, opts.NegRisk)
}

// BuildMarketOrder validates, rounds and signs a market order whose
// execution price has already been resolved (either caller-supplied or via
// the market price resolver).
func (b *OrderBuilder) BuildMarketOrder(ctx context.Context, order *clobtypes.UserMarketOrder, opts clobtypes.CreateOrderOptions) (*clobtypes.SignedOrder, error) {
	if order.Price == nil || order.Price.IsZero() {
		return nil, clobtypes.ErrNoMatch
	}
	price := *order.Price

	cfg, err := RoundConfigFor(opts.TickSize)
	if err != nil {
		return nil, err
	}

	if !PriceValid(price, opts.TickSize) {
		tick := opts.TickSize.Decimal()
		return nil, &clobtypes.InvalidPriceError{
			Price: price.String(),
			Min:   tick.String(),
			Max:   decimal.NewFromInt(1).Sub(tick).String(),
		}
	}

	feeRateBps, err := resolveFeeRate(order.FeeRateBps, opts.MarketFeeRateBps)
	if err != nil {
		return nil, err
	}

	raw := MarketOrderRawAmounts(order.Side, order.Amount, price, cfg)

	// Market orders carry no expiration.
	return b.signAssembled(ctx, order.TokenID, raw, feeRateBps, order.Nonce, nil, order.Taker, opts.NegRisk)
}

func (b *OrderBuilder) signAssembled(ctx context.Context, tokenID string, raw RawAmounts, feeRateBps int64, nonce, expiration *int64, taker *common.Address, negRisk bool) (*clobtypes.SignedOrder, error) {
	signer, err := b.provider.SignerFor(ctx)
	if err != nil {
		return nil, err
	}

	contracts, err := GetContractConfig(b.chain)
	if err != nil {
		return nil, err
	}

	maker := signer.Address()
	if b.funder != nil {
		maker = *b.funder
	}

	takerAddr := common.Address{}
	if taker != nil {
		takerAddr = *taker
	}

	data := &clobtypes.OrderData{
		Maker:         maker,
		Taker:         takerAddr,
		TokenID:       tokenID,
		MakerAmount:   ToTokenDecimals(raw.MakerAmt).String(),
		TakerAmount:   ToTokenDecimals(raw.TakerAmt).String(),
		Side:          raw.Side,
		FeeRateBps:    strconv.FormatInt(feeRateBps, 10),
		Nonce:         strconv.FormatInt(orZeroInt(nonce), 10),
		Signer:        signer.Address(),
		Expiration:    strconv.FormatInt(orZeroInt(expiration), 10),
		SignatureType: b.sigType,
	}

	return b.exchange.BuildSignedOrder(ctx, signer, data, contracts.VerifyingContract(negRisk))
}

// resolveFeeRate reconciles a caller-supplied fee rate with the market's.
// A non-zero market rate is mandatory; a conflicting override is rejected
// before any cryptographic work.
func resolveFeeRate(userRate *int64, marketRate int64) (int64, error) {
	if userRate == nil {
		return marketRate, nil
	}
	if marketRate != 0 && *userRate != marketRate {
		return 0, &clobtypes.InvalidFeeRateError{UserFeeRate: *userRate, MarketFeeRate: marketRate}
	}
	return *userRate, nil
}

func orZeroInt(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
