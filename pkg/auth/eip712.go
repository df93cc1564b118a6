package auth

import (
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
)

// EIP-712 constants for CLOB session authentication. The auth domain has no
// verifying contract: it proves wallet ownership, not an on-chain action.
const (
	ClobAuthDomainName    = "ClobAuthDomain"
	ClobAuthDomainVersion = "1"

	// MsgToSign is the fixed attestation literal the exchange expects.
	MsgToSign = "This message attests that I control the given wallet"
)

var (
	// clobAuthDomainTypeHash covers the three-field domain (name, version, chainId).
	clobAuthDomainTypeHash = crypto.Keccak256Hash([]byte("EIP712Domain(string name,string version,uint256 chainId)"))

	clobAuthTypeHash = crypto.Keccak256Hash([]byte("ClobAuth(address address,string timestamp,uint256 nonce,string message)"))
)

// ClobAuth is the typed message signed to prove control of a wallet.
type ClobAuth struct {
	Address   common.Address
	Timestamp string
	Nonce     *big.Int
	Message   string
}

// domainSeparator is keccak256(abi.encode(typeHash, keccak256(name), keccak256(version), chainId)).
func clobAuthDomainSeparator(chainID *big.Int) common.Hash {
	data := make([]byte, 32*4)
	copy(data[0:32], clobAuthDomainTypeHash.Bytes())
	copy(data[32:64], crypto.Keccak256([]byte(ClobAuthDomainName)))
	copy(data[64:96], crypto.Keccak256([]byte(ClobAuthDomainVersion)))
	copy(data[96:128], math.U256Bytes(chainID))
	return crypto.Keccak256Hash(data)
}

// structHash encodes the fields in declared order; dynamic fields (timestamp,
// message) enter as their keccak256 hashes per EIP-712.
func (a *ClobAuth) structHash() common.Hash {
	data := make([]byte, 32*5)
	copy(data[0:32], clobAuthTypeHash.Bytes())
	copy(data[32+12:64], a.Address.Bytes())
	copy(data[64:96], crypto.Keccak256([]byte(a.Timestamp)))
	copy(data[96:128], math.U256Bytes(a.Nonce))
	copy(data[128:160], crypto.Keccak256([]byte(a.Message)))
	return crypto.Keccak256Hash(data)
}

// Digest is keccak256(0x19 0x01 || domainSeparator || structHash).
func (a *ClobAuth) Digest(chainID *big.Int) []byte {
	sep := clobAuthDomainSeparator(chainID)
	return crypto.Keccak256([]byte{0x19, 0x01}, sep.Bytes(), a.structHash().Bytes())
}

// BuildClobAuthSignature signs the wallet-ownership attestation and returns
// the 0x-prefixed 130-hex-char signature used in L1 headers.
func BuildClobAuthSignature(signer *Signer, timestamp int64, nonce int64) (string, error) {
	auth := &ClobAuth{
		Address:   signer.Address(),
		Timestamp: strconv.FormatInt(timestamp, 10),
		Nonce:     big.NewInt(nonce),
		Message:   MsgToSign,
	}

	sig, err := signer.Sign(auth.Digest(signer.ChainID()))
	if err != nil {
		return "", err
	}
	return "0x" + common.Bytes2Hex(sig), nil
}
