// Package client is the enclosing CLOB client: it owns the HTTP plumbing,
// the per-token metadata caches and the authenticated endpoint surface, and
// delegates order construction to pkg/orderbuilder.
package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GoPolymarket/go-clob-client/pkg/auth"
	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/GoPolymarket/go-clob-client/pkg/headers"
	"github.com/GoPolymarket/go-clob-client/pkg/orderbuilder"
	"github.com/ethereum/go-ethereum/common"
)

const DefaultBaseURL = "https://clob.polymarket.com"

type Client struct {
	baseURL    string
	httpClient *http.Client
	chain      clobtypes.Chain

	provider     auth.Provider
	creds        *clobtypes.ApiCreds
	builderCreds *clobtypes.BuilderApiCreds

	builder *orderbuilder.OrderBuilder

	useServerTime bool
	cache         MetadataCache
}

type Option func(*Client)

// WithPrivateKey configures a static L1 signer from a hex private key.
func WithPrivateKey(privateKeyHex string) Option {
	return func(c *Client) {
		signer, err := auth.NewSigner(privateKeyHex, c.chain)
		if err != nil {
			return
		}
		c.provider = auth.NewStaticProvider(signer)
	}
}

// WithSignerProvider configures a dynamically resolved signer.
func WithSignerProvider(p auth.Provider) Option {
	return func(c *Client) { c.provider = p }
}

// WithApiCreds configures the L2 credentials used for trading calls.
func WithApiCreds(creds clobtypes.ApiCreds) Option {
	return func(c *Client) { c.creds = &creds }
}

// WithBuilderCreds attaches third-party builder credentials; order placement
// then carries the builder-augmented header set.
func WithBuilderCreds(creds clobtypes.BuilderApiCreds) Option {
	return func(c *Client) { c.builderCreds = &creds }
}

// WithHTTPClient overrides the transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithServerTime makes authenticated calls stamp headers with the exchange
// clock instead of the local one.
func WithServerTime() Option {
	return func(c *Client) { c.useServerTime = true }
}

// WithMetadataCache substitutes the tick-size/neg-risk/fee-rate cache.
func WithMetadataCache(cache MetadataCache) Option {
	return func(c *Client) { c.cache = cache }
}

func NewClient(baseURL string, chain clobtypes.Chain, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		chain:      chain,
		cache:      NewMemoryCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.provider != nil {
		c.builder = orderbuilder.NewOrderBuilder(chain, c.provider)
	}
	return c
}

// Builder exposes the order builder for configuration (signature type,
// funder, substitute exchange signer). Nil without an L1 signer.
func (c *Client) Builder() *orderbuilder.OrderBuilder {
	return c.builder
}

// SetApiCreds installs L2 credentials after construction, typically the
// result of CreateOrDeriveApiKey.
func (c *Client) SetApiCreds(creds clobtypes.ApiCreds) {
	c.creds = &creds
}

func (c *Client) canL1Auth() error {
	if c.provider == nil {
		return clobtypes.ErrL1AuthUnavailable
	}
	return nil
}

func (c *Client) canL2Auth() error {
	if err := c.canL1Auth(); err != nil {
		return err
	}
	if c.creds == nil {
		return clobtypes.ErrL2AuthUnavailable
	}
	return nil
}

// GetServerTime returns the exchange clock in unix seconds.
func (c *Client) GetServerTime(ctx context.Context) (int64, error) {
	var t clobtypes.ServerTimeResponse
	if err := c.doRequest(ctx, http.MethodGet, endpointTime, nil, nil, nil, &t); err != nil {
		return 0, err
	}
	return int64(t), nil
}

// timestamp resolves the header timestamp for authenticated calls.
func (c *Client) timestamp(ctx context.Context) (*int64, error) {
	if !c.useServerTime {
		return nil, nil
	}
	t, err := c.GetServerTime(ctx)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) signerAddress(ctx context.Context) (common.Address, error) {
	signer, err := c.provider.SignerFor(ctx)
	if err != nil {
		return common.Address{}, err
	}
	return signer.Address(), nil
}

// l1Request signs the request with a fresh wallet attestation.
func (c *Client) l1Request(ctx context.Context, method, path string, nonce *int64, body any, out any) error {
	if err := c.canL1Auth(); err != nil {
		return err
	}
	signer, err := c.provider.SignerFor(ctx)
	if err != nil {
		return err
	}
	ts, err := c.timestamp(ctx)
	if err != nil {
		return err
	}

	hdrs, err := headers.CreateL1Headers(signer, nonce, ts)
	if err != nil {
		return err
	}

	raw, err := marshalBody(body)
	if err != nil {
		return err
	}
	return c.doRequest(ctx, method, path, nil, hdrs, raw, out)
}

// l2Request signs the serialized body with the account HMAC secret. The
// exact bytes that were signed are the bytes sent.
func (c *Client) l2Request(ctx context.Context, method, path string, query url.Values, body any, out any, withBuilder bool) error {
	if err := c.canL2Auth(); err != nil {
		return err
	}
	addr, err := c.signerAddress(ctx)
	if err != nil {
		return err
	}
	ts, err := c.timestamp(ctx)
	if err != nil {
		return err
	}

	raw, err := marshalBody(body)
	if err != nil {
		return err
	}

	hdrs, err := headers.CreateL2Headers(addr, c.creds, method, path, string(raw), ts)
	if err != nil {
		return err
	}

	if withBuilder && c.builderCreds != nil {
		payload, err := headers.BuildBuilderPayload(c.builderCreds, method, path, string(raw), ts)
		if err != nil {
			return err
		}
		hdrs = headers.InjectBuilderHeaders(hdrs, payload)
	}

	return c.doRequest(ctx, method, path, query, hdrs, raw, out)
}
