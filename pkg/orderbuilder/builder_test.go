package orderbuilder

import (
	"context"
	"testing"

	"github.com/GoPolymarket/go-clob-client/pkg/auth"
	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func testProvider(t *testing.T, chain clobtypes.Chain) (auth.Provider, *auth.Signer) {
	t.Helper()
	signer, err := auth.NewSigner(testPrivateKey, chain)
	require.NoError(t, err)
	return auth.NewStaticProvider(signer), signer
}

// capturingSigner records the OrderData and verifying contract it was handed.
type capturingSigner struct {
	data     *clobtypes.OrderData
	contract common.Address
}

func (c *capturingSigner) BuildSignedOrder(_ context.Context, signer *auth.Signer, data *clobtypes.OrderData, verifyingContract common.Address) (*clobtypes.SignedOrder, error) {
	c.data = data
	c.contract = verifyingContract
	return &clobtypes.SignedOrder{
		Maker:       data.Maker.Hex(),
		Signer:      data.Signer.Hex(),
		Taker:       data.Taker.Hex(),
		TokenID:     data.TokenID,
		MakerAmount: data.MakerAmount,
		TakerAmount: data.TakerAmount,
		Side:        data.Side,
	}, nil
}

func TestBuildOrder_ScalesAndRoutes(t *testing.T) {
	provider, signer := testProvider(t, clobtypes.ChainPolygon)
	capture := &capturingSigner{}
	builder := NewOrderBuilder(clobtypes.ChainPolygon, provider).WithExchangeSigner(capture)

	order := &clobtypes.UserOrder{
		TokenID: "123456",
		Price:   dec("0.55"),
		Size:    dec("100"),
		Side:    clobtypes.SideBuy,
	}
	signed, err := builder.BuildOrder(context.Background(), order, clobtypes.CreateOrderOptions{
		TickSize: clobtypes.TickSize001,
	})
	require.NoError(t, err)

	assert.Equal(t, "55000000", signed.MakerAmount)
	assert.Equal(t, "100000000", signed.TakerAmount)
	assert.Equal(t, clobtypes.SideBuy, signed.Side)
	assert.Equal(t, signer.Address().Hex(), signed.Maker)
	assert.Equal(t, signer.Address().Hex(), signed.Signer)
	assert.Equal(t, common.Address{}.Hex(), signed.Taker)

	assert.Equal(t, polygonContracts.Exchange, capture.contract)
	assert.Equal(t, "0", capture.data.Nonce)
	assert.Equal(t, "0", capture.data.Expiration)
	assert.Equal(t, "0", capture.data.FeeRateBps)
}

func TestBuildOrder_NegRiskRouting(t *testing.T) {
	provider, _ := testProvider(t, clobtypes.ChainPolygon)
	capture := &capturingSigner{}
	builder := NewOrderBuilder(clobtypes.ChainPolygon, provider).WithExchangeSigner(capture)

	order := &clobtypes.UserOrder{
		TokenID: "1",
		Price:   dec("0.5"),
		Size:    dec("10"),
		Side:    clobtypes.SideSell,
	}
	_, err := builder.BuildOrder(context.Background(), order, clobtypes.CreateOrderOptions{
		TickSize: clobtypes.TickSize001,
		NegRisk:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, polygonContracts.NegRiskExchange, capture.contract)
}

func TestBuildOrder_InvalidPrice(t *testing.T) {
	provider, _ := testProvider(t, clobtypes.ChainPolygon)
	builder := NewOrderBuilder(clobtypes.ChainPolygon, provider)

	order := &clobtypes.UserOrder{
		TokenID: "1",
		Price:   dec("0.05"),
		Size:    dec("10"),
		Side:    clobtypes.SideBuy,
	}
	_, err := builder.BuildOrder(context.Background(), order, clobtypes.CreateOrderOptions{
		TickSize: clobtypes.TickSize01,
	})

	var priceErr *clobtypes.InvalidPriceError
	require.ErrorAs(t, err, &priceErr)
	assert.Equal(t, "0.1", priceErr.Min)
	assert.Equal(t, "0.9", priceErr.Max)
}

func TestBuildOrder_FeeRateConflict(t *testing.T) {
	provider, _ := testProvider(t, clobtypes.ChainPolygon)
	builder := NewOrderBuilder(clobtypes.ChainPolygon, provider)

	userRate := int64(50)
	order := &clobtypes.UserOrder{
		TokenID:    "1",
		Price:      dec("0.5"),
		Size:       dec("10"),
		Side:       clobtypes.SideBuy,
		FeeRateBps: &userRate,
	}
	_, err := builder.BuildOrder(context.Background(), order, clobtypes.CreateOrderOptions{
		TickSize:         clobtypes.TickSize001,
		MarketFeeRateBps: 100,
	})

	var feeErr *clobtypes.InvalidFeeRateError
	require.ErrorAs(t, err, &feeErr)
	assert.Equal(t, int64(50), feeErr.UserFeeRate)
	assert.Equal(t, int64(100), feeErr.MarketFeeRate)
}

func TestBuildOrder_MarketFeeRateAdopted(t *testing.T) {
	provider, _ := testProvider(t, clobtypes.ChainPolygon)
	capture := &capturingSigner{}
	builder := NewOrderBuilder(clobtypes.ChainPolygon, provider).WithExchangeSigner(capture)

	order := &clobtypes.UserOrder{
		TokenID: "1",
		Price:   dec("0.5"),
		Size:    dec("10"),
		Side:    clobtypes.SideBuy,
	}
	_, err := builder.BuildOrder(context.Background(), order, clobtypes.CreateOrderOptions{
		TickSize:         clobtypes.TickSize001,
		MarketFeeRateBps: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, "100", capture.data.FeeRateBps)
}

func TestBuildOrder_FunderAndSignatureType(t *testing.T) {
	provider, signer := testProvider(t, clobtypes.ChainPolygon)
	capture := &capturingSigner{}
	funder := common.HexToAddress("0x00000000000000000000000000000000000000AA")

	builder := NewOrderBuilder(clobtypes.ChainPolygon, provider).
		WithExchangeSigner(capture).
		WithSignatureType(clobtypes.SignaturePolyProxy).
		WithFunder(funder)

	order := &clobtypes.UserOrder{
		TokenID: "1",
		Price:   dec("0.5"),
		Size:    dec("10"),
		Side:    clobtypes.SideBuy,
	}
	_, err := builder.BuildOrder(context.Background(), order, clobtypes.CreateOrderOptions{
		TickSize: clobtypes.TickSize001,
	})
	require.NoError(t, err)

	assert.Equal(t, funder, capture.data.Maker)
	assert.Equal(t, signer.Address(), capture.data.Signer)
	assert.Equal(t, clobtypes.SignaturePolyProxy, capture.data.SignatureType)
}

func TestBuildMarketOrder_RequiresPrice(t *testing.T) {
	provider, _ := testProvider(t, clobtypes.ChainPolygon)
	builder := NewOrderBuilder(clobtypes.ChainPolygon, provider)

	order := &clobtypes.UserMarketOrder{
		TokenID: "1",
		Amount:  dec("100"),
		Side:    clobtypes.SideBuy,
	}
	_, err := builder.BuildMarketOrder(context.Background(), order, clobtypes.CreateOrderOptions{
		TickSize: clobtypes.TickSize001,
	})
	assert.ErrorIs(t, err, clobtypes.ErrNoMatch)
}

func TestBuildMarketOrder_NoExpiration(t *testing.T) {
	provider, _ := testProvider(t, clobtypes.ChainPolygon)
	capture := &capturingSigner{}
	builder := NewOrderBuilder(clobtypes.ChainPolygon, provider).WithExchangeSigner(capture)

	price := dec("0.5")
	order := &clobtypes.UserMarketOrder{
		TokenID: "1",
		Amount:  dec("100"),
		Price:   &price,
		Side:    clobtypes.SideBuy,
	}
	_, err := builder.BuildMarketOrder(context.Background(), order, clobtypes.CreateOrderOptions{
		TickSize: clobtypes.TickSize001,
	})
	require.NoError(t, err)
	assert.Equal(t, "0", capture.data.Expiration)
	assert.Equal(t, "100000000", capture.data.MakerAmount)
	assert.Equal(t, "200000000", capture.data.TakerAmount)
}
