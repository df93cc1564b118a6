package orderbuilder

import (
	"context"
	"fmt"
	"math/big"
	"math/rand"
	"time"

	"github.com/GoPolymarket/go-clob-client/pkg/auth"
	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
)

// EIP-712 constants of the CTF exchange order domain.
const (
	ExchangeDomainName    = "Polymarket CTF Exchange"
	ExchangeDomainVersion = "1"
)

var (
	exchangeDomainTypeHash = crypto.Keccak256Hash([]byte("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"))

	orderTypeHash = crypto.Keccak256Hash([]byte("Order(uint256 salt,address maker,address signer,address taker,uint256 tokenId,uint256 makerAmount,uint256 takerAmount,uint256 expiration,uint256 nonce,uint256 feeRateBps,uint8 side,uint8 signatureType)"))
)

// ExchangeSigner is the order-signing primitive: it ABI-encodes OrderData,
// hashes it against the exchange domain and produces the final signature.
// It is an interface so tests can substitute a deterministic implementation.
type ExchangeSigner interface {
	BuildSignedOrder(ctx context.Context, signer *auth.Signer, data *clobtypes.OrderData, verifyingContract common.Address) (*clobtypes.SignedOrder, error)
}

// EIP712ExchangeSigner is the default ExchangeSigner backed by go-ethereum
// keccak/ECDSA primitives.
type EIP712ExchangeSigner struct {
	saltFn func() int64
}

func NewExchangeSigner() *EIP712ExchangeSigner {
	return &EIP712ExchangeSigner{saltFn: generateSalt}
}

// WithSaltGenerator overrides the salt source, mainly for regression tests.
func (s *EIP712ExchangeSigner) WithSaltGenerator(fn func() int64) *EIP712ExchangeSigner {
	s.saltFn = fn
	return s
}

// generateSalt follows the upstream seed scheme: current time jittered by a
// random factor, producing a positive int64.
func generateSalt() int64 {
	return int64(float64(time.Now().UnixMilli()) * rand.Float64())
}

func (s *EIP712ExchangeSigner) BuildSignedOrder(ctx context.Context, signer *auth.Signer, data *clobtypes.OrderData, verifyingContract common.Address) (*clobtypes.SignedOrder, error) {
	if data == nil {
		return nil, fmt.Errorf("order data is required")
	}

	salt := s.saltFn()

	tokenID, ok := new(big.Int).SetString(data.TokenID, 10)
	if !ok {
		return nil, fmt.Errorf("invalid token id %q", data.TokenID)
	}
	makerAmount, ok := new(big.Int).SetString(data.MakerAmount, 10)
	if !ok {
		return nil, fmt.Errorf("invalid maker amount %q", data.MakerAmount)
	}
	takerAmount, ok := new(big.Int).SetString(data.TakerAmount, 10)
	if !ok {
		return nil, fmt.Errorf("invalid taker amount %q", data.TakerAmount)
	}
	expiration, ok := new(big.Int).SetString(orZero(data.Expiration), 10)
	if !ok {
		return nil, fmt.Errorf("invalid expiration %q", data.Expiration)
	}
	nonce, ok := new(big.Int).SetString(orZero(data.Nonce), 10)
	if !ok {
		return nil, fmt.Errorf("invalid nonce %q", data.Nonce)
	}
	feeRateBps, ok := new(big.Int).SetString(orZero(data.FeeRateBps), 10)
	if !ok {
		return nil, fmt.Errorf("invalid fee rate %q", data.FeeRateBps)
	}

	structHash := hashOrder(big.NewInt(salt), data, tokenID, makerAmount, takerAmount, expiration, nonce, feeRateBps)
	separator := exchangeDomainSeparator(signer.ChainID(), verifyingContract)
	digest := crypto.Keccak256([]byte{0x19, 0x01}, separator.Bytes(), structHash)

	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, err
	}

	return &clobtypes.SignedOrder{
		Salt:          salt,
		Maker:         data.Maker.Hex(),
		Signer:        data.Signer.Hex(),
		Taker:         data.Taker.Hex(),
		TokenID:       tokenID.String(),
		MakerAmount:   makerAmount.String(),
		TakerAmount:   takerAmount.String(),
		Expiration:    expiration.String(),
		Nonce:         nonce.String(),
		FeeRateBps:    feeRateBps.String(),
		Side:          data.Side,
		SignatureType: int(data.SignatureType),
		Signature:     "0x" + common.Bytes2Hex(sig),
	}, nil
}

// exchangeDomainSeparator is keccak256(abi.encode(typeHash, keccak256(name),
// keccak256(version), chainId, verifyingContract)).
func exchangeDomainSeparator(chainID *big.Int, verifyingContract common.Address) common.Hash {
	data := make([]byte, 32*5)
	copy(data[0:32], exchangeDomainTypeHash.Bytes())
	copy(data[32:64], crypto.Keccak256([]byte(ExchangeDomainName)))
	copy(data[64:96], crypto.Keccak256([]byte(ExchangeDomainVersion)))
	copy(data[96:128], math.U256Bytes(chainID))
	copy(data[128+12:160], verifyingContract.Bytes())
	return crypto.Keccak256Hash(data)
}

// hashOrder ABI-encodes the 12 order fields after the type hash, each in its
// own 32-byte slot, and hashes the result.
func hashOrder(salt *big.Int, data *clobtypes.OrderData, tokenID, makerAmount, takerAmount, expiration, nonce, feeRateBps *big.Int) []byte {
	buf := make([]byte, 32*13)

	copy(buf[0:32], orderTypeHash.Bytes())
	copy(buf[32:64], math.U256Bytes(salt))
	copy(buf[64+12:96], data.Maker.Bytes())
	copy(buf[96+12:128], data.Signer.Bytes())
	copy(buf[128+12:160], data.Taker.Bytes())
	copy(buf[160:192], math.U256Bytes(tokenID))
	copy(buf[192:224], math.U256Bytes(makerAmount))
	copy(buf[224:256], math.U256Bytes(takerAmount))
	copy(buf[256:288], math.U256Bytes(expiration))
	copy(buf[288:320], math.U256Bytes(nonce))
	copy(buf[320:352], math.U256Bytes(feeRateBps))
	copy(buf[352:384], math.U256Bytes(big.NewInt(int64(data.Side.Uint8()))))
	copy(buf[384:416], math.U256Bytes(big.NewInt(int64(data.SignatureType))))

	return crypto.Keccak256(buf)
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
