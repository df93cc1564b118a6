package clobtypes

// ApiCreds are the L2 credentials issued by the exchange: a key, a base64
// secret for HMAC signing and a passphrase echoed back on each request.
type ApiCreds struct {
	Key        string `json:"apiKey"`
	Secret     string `json:"secret"`
	Passphrase string `json:"passphrase"`
}

// BuilderApiCreds identify a third-party order-flow originator. They are
// issued independently of the user's own credentials.
type BuilderApiCreds struct {
	Key        string `json:"apiKey"`
	Secret     string `json:"secret"`
	Passphrase string `json:"passphrase"`
}

// BuilderHeaderPayload is the independently produced builder signature
// bundle attached on top of L2 headers.
type BuilderHeaderPayload struct {
	ApiKey     string
	Timestamp  string
	Passphrase string
	Signature  string
}

// ApiKeysResponse lists the API keys registered for a wallet.
type ApiKeysResponse struct {
	ApiKeys []string `json:"apiKeys"`
}

// ServerTimeResponse is the exchange clock, in unix seconds.
type ServerTimeResponse int64

// BanStatus reports whether the account is restricted to closing positions.
type BanStatus struct {
	ClosedOnly bool `json:"closed_only"`
}

// BalanceAllowance reports collateral or conditional token balances.
type BalanceAllowance struct {
	Balance   string `json:"balance"`
	Allowance string `json:"allowance"`
}

// AssetType selects which balance to query.
type AssetType string

const (
	AssetTypeCollateral  AssetType = "COLLATERAL"
	AssetTypeConditional AssetType = "CONDITIONAL"
)
