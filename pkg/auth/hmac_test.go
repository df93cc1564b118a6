package auth

import (
	"testing"

	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "aFRjtLLvvPwrGtYv6xNSam4avBBnvoOWPFc7SAtf1tY="

func TestBuildHMACSignature_KnownVector(t *testing.T) {
	sig, err := BuildHMACSignature(testSecret, 1000000, "test-sign", "/orders", `{"hash": "0x123"}`)
	require.NoError(t, err)
	assert.Equal(t, "ZwAdJKvoFRVSfy3zAEGWShYLTpgKXZgOEhSGRrbhdHk=", sig)
}

func TestBuildHMACSignature_Deterministic(t *testing.T) {
	a, err := BuildHMACSignature(testSecret, 1000000, "GET", "/orders", "")
	require.NoError(t, err)
	b, err := BuildHMACSignature(testSecret, 1000000, "GET", "/orders", "")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildHMACSignature_CoversAllFields(t *testing.T) {
	base, err := BuildHMACSignature(testSecret, 1000000, "POST", "/order", `{"a":1}`)
	require.NoError(t, err)

	cases := map[string]func() (string, error){
		"timestamp": func() (string, error) {
			return BuildHMACSignature(testSecret, 1000001, "POST", "/order", `{"a":1}`)
		},
		"method": func() (string, error) {
			return BuildHMACSignature(testSecret, 1000000, "DELETE", "/order", `{"a":1}`)
		},
		"path": func() (string, error) {
			return BuildHMACSignature(testSecret, 1000000, "POST", "/orders", `{"a":1}`)
		},
		"body": func() (string, error) {
			return BuildHMACSignature(testSecret, 1000000, "POST", "/order", `{"a":2}`)
		},
	}
	for name, fn := range cases {
		sig, err := fn()
		require.NoError(t, err)
		assert.NotEqual(t, base, sig, "changing %s must change the signature", name)
	}
}

func TestBuildHMACSignature_URLSafeOutput(t *testing.T) {
	// Probe a range of inputs; none of the outputs may contain '+' or '/'.
	for ts := int64(0); ts < 50; ts++ {
		sig, err := BuildHMACSignature(testSecret, ts, "GET", "/books", "")
		require.NoError(t, err)
		assert.NotContains(t, sig, "+")
		assert.NotContains(t, sig, "/")
	}
}

func TestBuildHMACSignature_BadSecret(t *testing.T) {
	_, err := BuildHMACSignature("not-base64!!!", 1000000, "GET", "/orders", "")
	require.Error(t, err)

	var encErr *clobtypes.EncodingError
	assert.ErrorAs(t, err, &encErr)
}
