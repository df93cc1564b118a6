package headers

import (
	"strconv"
	"time"

	"github.com/GoPolymarket/go-clob-client/pkg/auth"
)

// CreateL1Headers builds the wallet-proof header set used for API key
// management. Nonce defaults to 0 and timestamp to the current unix time
// when the caller passes nil.
func CreateL1Headers(signer *auth.Signer, nonce *int64, timestamp *int64) (map[string]string, error) {
	ts := time.Now().Unix()
	if timestamp != nil {
		ts = *timestamp
	}
	n := int64(0)
	if nonce != nil {
		n = *nonce
	}

	sig, err := auth.BuildClobAuthSignature(signer, ts, n)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		PolyAddress:   signer.Address().Hex(),
		PolySignature: sig,
		PolyTimestamp: strconv.FormatInt(ts, 10),
		PolyNonce:     strconv.FormatInt(n, 10),
	}, nil
}
