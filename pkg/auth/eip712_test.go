package auth

import (
	"math/big"
	"testing"

	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known hardhat development key, never used on a real network.
const testPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func TestBuildClobAuthSignature_KnownVector(t *testing.T) {
	signer, err := NewSigner(testPrivateKey, clobtypes.ChainAmoy)
	require.NoError(t, err)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", signer.Address().Hex())

	sig, err := BuildClobAuthSignature(signer, 10000000, 23)
	require.NoError(t, err)

	expected := "0xf62319a987514da40e57e2f4d7529f7bac38f0355bd88bb5adbb3768d80de6c1682518e0af677d5260366425f4361e7b70c25ae232aff0ab2331e2b164a1aedc1b"
	assert.Equal(t, expected, sig)
}

func TestBuildClobAuthSignature_Shape(t *testing.T) {
	key, _ := crypto.GenerateKey()
	keyHex := hexutil.Encode(crypto.FromECDSA(key))

	signer, err := NewSigner(keyHex, clobtypes.ChainPolygon)
	require.NoError(t, err)

	sig, err := BuildClobAuthSignature(signer, 1700000000, 0)
	require.NoError(t, err)

	assert.Equal(t, 132, len(sig)) // 0x + 65 bytes * 2
	assert.Equal(t, "0x", sig[:2])

	v := sig[len(sig)-2:]
	assert.Contains(t, []string{"1b", "1c"}, v)
}

func TestBuildClobAuthSignature_DependsOnInputs(t *testing.T) {
	signer, err := NewSigner(testPrivateKey, clobtypes.ChainPolygon)
	require.NoError(t, err)

	base, err := BuildClobAuthSignature(signer, 10000000, 23)
	require.NoError(t, err)

	otherTs, err := BuildClobAuthSignature(signer, 10000001, 23)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherTs)

	otherNonce, err := BuildClobAuthSignature(signer, 10000000, 24)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherNonce)
}

func TestClobAuthDigest_RecoversSigner(t *testing.T) {
	signer, err := NewSigner(testPrivateKey, clobtypes.ChainAmoy)
	require.NoError(t, err)

	auth := &ClobAuth{
		Address:   signer.Address(),
		Timestamp: "10000000",
		Nonce:     big.NewInt(23),
		Message:   MsgToSign,
	}
	digest := auth.Digest(signer.ChainID())

	sig, err := signer.Sign(digest)
	require.NoError(t, err)

	// Recovery expects V in {0,1}.
	recSig := make([]byte, 65)
	copy(recSig, sig)
	recSig[64] -= 27

	pub, err := crypto.SigToPub(digest, recSig)
	require.NoError(t, err)
	assert.Equal(t, signer.Address(), crypto.PubkeyToAddress(*pub))
}
