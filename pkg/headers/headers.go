// Package headers assembles the exchange's session-layer header sets from
// the two signature kinds: EIP-712 wallet attestations (L1, key management)
// and HMAC request signatures (L2, trading).
package headers

// Header keys for L1 and L2 authentication.
const (
	PolyAddress    = "POLY_ADDRESS"
	PolySignature  = "POLY_SIGNATURE"
	PolyTimestamp  = "POLY_TIMESTAMP"
	PolyNonce      = "POLY_NONCE"
	PolyApiKey     = "POLY_API_KEY"
	PolyPassphrase = "POLY_PASSPHRASE"
)

// Header keys for the builder signature layer.
const (
	PolyBuilderApiKey     = "POLY_BUILDER_API_KEY"
	PolyBuilderTimestamp  = "POLY_BUILDER_TIMESTAMP"
	PolyBuilderPassphrase = "POLY_BUILDER_PASSPHRASE"
	PolyBuilderSignature  = "POLY_BUILDER_SIGNATURE"
)
