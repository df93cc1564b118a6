package headers

import (
	"strconv"
	"time"

	"github.com/GoPolymarket/go-clob-client/pkg/auth"
	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
)

// BuildBuilderPayload signs the request a second time with the builder's own
// credentials, identifying the order-flow originator independently of the
// user's L2 signature.
func BuildBuilderPayload(creds *clobtypes.BuilderApiCreds, method, requestPath, body string, timestamp *int64) (*clobtypes.BuilderHeaderPayload, error) {
	if creds == nil {
		return nil, clobtypes.ErrBuilderAuthUnavailable
	}

	ts := time.Now().Unix()
	if timestamp != nil {
		ts = *timestamp
	}

	sig, err := auth.BuildHMACSignature(creds.Secret, ts, method, requestPath, body)
	if err != nil {
		return nil, err
	}

	return &clobtypes.BuilderHeaderPayload{
		ApiKey:     creds.Key,
		Timestamp:  strconv.FormatInt(ts, 10),
		Passphrase: creds.Passphrase,
		Signature:  sig,
	}, nil
}

// InjectBuilderHeaders augments an L2 header map with a builder payload.
// A nil payload leaves the map untouched so requests without a builder
// attribution still go through as plain L2.
func InjectBuilderHeaders(l2 map[string]string, payload *clobtypes.BuilderHeaderPayload) map[string]string {
	if payload == nil {
		return l2
	}
	l2[PolyBuilderApiKey] = payload.ApiKey
	l2[PolyBuilderTimestamp] = payload.Timestamp
	l2[PolyBuilderPassphrase] = payload.Passphrase
	l2[PolyBuilderSignature] = payload.Signature
	return l2
}
