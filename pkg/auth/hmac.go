package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
)

// BuildHMACSignature produces the L2 request signature.
//
// The canonical message is timestamp || method || path || body with no
// separators; the body is simply omitted when empty. Compatibility contract:
// the secret issued by the exchange is encoded with the URL-safe base64
// alphabet and is decoded as such here. The output is standard base64 made
// URL-safe by character replacement, keeping the '=' padding.
func BuildHMACSignature(secret string, timestamp int64, method, requestPath, body string) (string, error) {
	key, err := base64.URLEncoding.DecodeString(secret)
	if err != nil {
		return "", &clobtypes.EncodingError{Cause: err}
	}

	message := strconv.FormatInt(timestamp, 10) + method + requestPath + body

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(message))

	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	sig = strings.ReplaceAll(sig, "+", "-")
	sig = strings.ReplaceAll(sig, "/", "_")
	return sig, nil
}
