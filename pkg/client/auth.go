package client

import (
	"context"
	"net/http"

	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
)

// CreateApiKey registers a fresh set of L2 credentials for the signing
// wallet. The nonce selects which credential slot to mint; zero is the
// default slot.
func (c *Client) CreateApiKey(ctx context.Context, nonce *int64) (*clobtypes.ApiCreds, error) {
	var creds clobtypes.ApiCreds
	if err := c.l1Request(ctx, http.MethodPost, endpointCreateApiKey, nonce, nil, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// DeriveApiKey recovers the credentials previously minted for the signing
// wallet and nonce without creating a new set.
func (c *Client) DeriveApiKey(ctx context.Context, nonce *int64) (*clobtypes.ApiCreds, error) {
	var creds clobtypes.ApiCreds
	if err := c.l1Request(ctx, http.MethodGet, endpointDeriveApiKey, nonce, nil, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// CreateOrDeriveApiKey returns working credentials for the wallet: it first
// tries to derive an existing set and only mints a new one when derivation
// fails. The result is not installed on the client; call SetApiCreds.
func (c *Client) CreateOrDeriveApiKey(ctx context.Context, nonce *int64) (*clobtypes.ApiCreds, error) {
	creds, err := c.DeriveApiKey(ctx, nonce)
	if err == nil && creds.Key != "" {
		return creds, nil
	}
	return c.CreateApiKey(ctx, nonce)
}

// GetApiKeys lists the API keys registered for the authenticated wallet.
func (c *Client) GetApiKeys(ctx context.Context) (*clobtypes.ApiKeysResponse, error) {
	var resp clobtypes.ApiKeysResponse
	if err := c.l2Request(ctx, http.MethodGet, endpointGetApiKeys, nil, nil, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteApiKey revokes the credentials the client is currently using.
func (c *Client) DeleteApiKey(ctx context.Context) error {
	return c.l2Request(ctx, http.MethodDelete, endpointDeleteApiKey, nil, nil, nil, false)
}

// GetClosedOnlyMode reports whether the account may only close positions.
func (c *Client) GetClosedOnlyMode(ctx context.Context) (*clobtypes.BanStatus, error) {
	var resp clobtypes.BanStatus
	if err := c.l2Request(ctx, http.MethodGet, endpointClosedOnly, nil, nil, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}
