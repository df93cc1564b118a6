package headers

import (
	"strconv"
	"time"

	"github.com/GoPolymarket/go-clob-client/pkg/auth"
	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/ethereum/go-ethereum/common"
)

// CreateL2Headers builds the HMAC-credential header set used for trading
// calls. The signature covers timestamp+method+path+body so any replayed or
// altered request fails verification.
func CreateL2Headers(address common.Address, creds *clobtypes.ApiCreds, method, requestPath, body string, timestamp *int64) (map[string]string, error) {
	if creds == nil {
		return nil, clobtypes.ErrL2AuthUnavailable
	}

	ts := time.Now().Unix()
	if timestamp != nil {
		ts = *timestamp
	}

	sig, err := auth.BuildHMACSignature(creds.Secret, ts, method, requestPath, body)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		PolyAddress:    address.Hex(),
		PolySignature:  sig,
		PolyTimestamp:  strconv.FormatInt(ts, 10),
		PolyApiKey:     creds.Key,
		PolyPassphrase: creds.Passphrase,
	}, nil
}
