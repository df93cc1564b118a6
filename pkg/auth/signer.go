package auth

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer wraps an ECDSA private key together with the chain it signs for.
type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
	chainID *big.Int
}

// NewSigner parses a hex private key (0x prefix optional) and derives the
// signing address.
func NewSigner(privateKeyHex string, chainID clobtypes.Chain) (*Signer, error) {
	if privateKeyHex == "" {
		return nil, fmt.Errorf("private key is required")
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	publicKey, ok := key.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("error casting public key to ECDSA")
	}

	return &Signer{
		key:     key,
		address: crypto.PubkeyToAddress(*publicKey),
		chainID: big.NewInt(chainID.ID()),
	}, nil
}

func (s *Signer) Address() common.Address {
	return s.address
}

func (s *Signer) ChainID() *big.Int {
	return new(big.Int).Set(s.chainID)
}

// Sign produces a 65-byte r||s||v signature over a 32-byte digest, with V
// normalized to 27/28 as the exchange expects.
func (s *Signer) Sign(digest []byte) ([]byte, error) {
	sig, err := crypto.Sign(digest, s.key)
	if err != nil {
		return nil, &clobtypes.SigningError{Cause: err}
	}
	if sig[64] < 27 {
		sig[64] += 27
	}
	return sig, nil
}

// Provider produces the signer to use for one call. The indirection exists
// so callers can resolve keys dynamically (per tenant, from a KMS, ...)
// without the order builder knowing.
type Provider interface {
	SignerFor(ctx context.Context) (*Signer, error)
}

// StaticProvider always returns the statically configured signer.
type StaticProvider struct {
	signer *Signer
}

func NewStaticProvider(signer *Signer) *StaticProvider {
	return &StaticProvider{signer: signer}
}

func (p *StaticProvider) SignerFor(context.Context) (*Signer, error) {
	if p == nil || p.signer == nil {
		return nil, clobtypes.ErrL1AuthUnavailable
	}
	return p.signer, nil
}
