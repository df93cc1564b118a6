package orderbuilder

import (
	"context"
	"math/big"
	"testing"

	"github.com/GoPolymarket/go-clob-client/pkg/auth"
	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bigFromInt(v int64) *big.Int {
	return big.NewInt(v)
}

func bigFromString(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return v
}

func testOrderData(signer *auth.Signer) *clobtypes.OrderData {
	return &clobtypes.OrderData{
		Maker:         signer.Address(),
		Signer:        signer.Address(),
		Taker:         common.Address{},
		TokenID:       "999",
		MakerAmount:   "1000000",
		TakerAmount:   "500000",
		Side:          clobtypes.SideBuy,
		FeeRateBps:    "0",
		Nonce:         "1",
		Expiration:    "1800000000",
		SignatureType: clobtypes.SignatureEOA,
	}
}

func TestBuildSignedOrder(t *testing.T) {
	signer, err := auth.NewSigner(testPrivateKey, clobtypes.ChainPolygon)
	require.NoError(t, err)

	es := NewExchangeSigner().WithSaltGenerator(func() int64 { return 123 })

	signed, err := es.BuildSignedOrder(context.Background(), signer, testOrderData(signer), polygonContracts.Exchange)
	require.NoError(t, err)

	assert.Equal(t, int64(123), signed.Salt)
	assert.Equal(t, signer.Address().Hex(), signed.Maker)
	assert.Equal(t, "999", signed.TokenID)
	assert.Equal(t, "1000000", signed.MakerAmount)
	assert.Equal(t, "500000", signed.TakerAmount)
	assert.Equal(t, clobtypes.SideBuy, signed.Side)
	assert.Equal(t, 0, signed.SignatureType)
	assert.Equal(t, 132, len(signed.Signature))
	assert.Equal(t, "0x", signed.Signature[:2])
}

func TestBuildSignedOrder_Deterministic(t *testing.T) {
	signer, err := auth.NewSigner(testPrivateKey, clobtypes.ChainPolygon)
	require.NoError(t, err)

	es := NewExchangeSigner().WithSaltGenerator(func() int64 { return 42 })

	a, err := es.BuildSignedOrder(context.Background(), signer, testOrderData(signer), polygonContracts.Exchange)
	require.NoError(t, err)
	b, err := es.BuildSignedOrder(context.Background(), signer, testOrderData(signer), polygonContracts.Exchange)
	require.NoError(t, err)
	assert.Equal(t, a.Signature, b.Signature)

	// A different verifying contract yields a different domain, so the
	// signature must change.
	c, err := es.BuildSignedOrder(context.Background(), signer, testOrderData(signer), polygonContracts.NegRiskExchange)
	require.NoError(t, err)
	assert.NotEqual(t, a.Signature, c.Signature)
}

func TestBuildSignedOrder_SignatureRecovers(t *testing.T) {
	signer, err := auth.NewSigner(testPrivateKey, clobtypes.ChainPolygon)
	require.NoError(t, err)

	data := testOrderData(signer)
	salt := int64(7)
	es := NewExchangeSigner().WithSaltGenerator(func() int64 { return salt })

	signed, err := es.BuildSignedOrder(context.Background(), signer, data, polygonContracts.Exchange)
	require.NoError(t, err)

	// Recompute the digest the same way and recover the signing address.
	structHash := hashOrder(bigFromInt(salt), data,
		bigFromString(t, data.TokenID),
		bigFromString(t, data.MakerAmount),
		bigFromString(t, data.TakerAmount),
		bigFromString(t, data.Expiration),
		bigFromString(t, data.Nonce),
		bigFromString(t, data.FeeRateBps))
	separator := exchangeDomainSeparator(signer.ChainID(), polygonContracts.Exchange)
	digest := crypto.Keccak256([]byte{0x19, 0x01}, separator.Bytes(), structHash)

	sig := common.FromHex(signed.Signature)
	require.Len(t, sig, 65)
	sig[64] -= 27

	pub, err := crypto.SigToPub(digest, sig)
	require.NoError(t, err)
	assert.Equal(t, signer.Address(), crypto.PubkeyToAddress(*pub))
}

func TestBuildSignedOrder_BadInputs(t *testing.T) {
	signer, err := auth.NewSigner(testPrivateKey, clobtypes.ChainPolygon)
	require.NoError(t, err)
	es := NewExchangeSigner()

	data := testOrderData(signer)
	data.TokenID = "not-a-number"
	_, err = es.BuildSignedOrder(context.Background(), signer, data, polygonContracts.Exchange)
	assert.Error(t, err)

	_, err = es.BuildSignedOrder(context.Background(), signer, nil, polygonContracts.Exchange)
	assert.Error(t, err)
}

func TestGenerateSalt_NonNegative(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.GreaterOrEqual(t, generateSalt(), int64(0))
	}
}
