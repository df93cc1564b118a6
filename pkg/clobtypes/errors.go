package clobtypes

import (
	"errors"
	"fmt"
)

// Sentinel errors for the order construction pipeline. Validation errors are
// detected before any cryptographic work and are never retried.
var (
	// ErrNoMatch means a market order could not be priced against the book.
	ErrNoMatch = errors.New("no match found in orderbook")

	// ErrNoOrderbook means no book snapshot is available for the token.
	ErrNoOrderbook = errors.New("no orderbook available")

	// ErrL1AuthUnavailable means a private key signer is required.
	ErrL1AuthUnavailable = errors.New("signer is needed to interact with this endpoint")

	// ErrL2AuthUnavailable means API credentials are required.
	ErrL2AuthUnavailable = errors.New("api credentials are needed to interact with this endpoint")

	// ErrBuilderAuthUnavailable means builder API credentials are required.
	ErrBuilderAuthUnavailable = errors.New("builder api credentials are needed to interact with this endpoint")
)

// InvalidPriceError reports a price outside the [tick, 1-tick] band.
type InvalidPriceError struct {
	Price, Min, Max string
}

func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("invalid price (%s), min: %s - max: %s", e.Price, e.Min, e.Max)
}

// InvalidTickSizeError reports a caller tick size coarser than reality allows.
type InvalidTickSizeError struct {
	TickSize, MinTickSize TickSize
}

func (e *InvalidTickSizeError) Error() string {
	return fmt.Sprintf("invalid tick size (%s), minimum for the market is %s", e.TickSize, e.MinTickSize)
}

// InvalidFeeRateError reports a user fee rate conflicting with the market's.
type InvalidFeeRateError struct {
	UserFeeRate, MarketFeeRate int64
}

func (e *InvalidFeeRateError) Error() string {
	return fmt.Sprintf("invalid user provided fee rate: %d, fee rate for the market must be %d",
		e.UserFeeRate, e.MarketFeeRate)
}

// SigningError wraps a failure of the underlying cryptographic primitive.
// These are fatal for the current call; the message is preserved verbatim.
type SigningError struct {
	Cause error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("signing failed: %v", e.Cause)
}

func (e *SigningError) Unwrap() error {
	return e.Cause
}

// EncodingError reports a malformed input (e.g. a bad base64 secret),
// distinct from signature failures.
type EncodingError struct {
	Cause error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding failed: %v", e.Cause)
}

func (e *EncodingError) Unwrap() error {
	return e.Cause
}
