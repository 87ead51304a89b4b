package types

import (
	"errors"
	"fmt"
)

// Error categories. Every decode failure wraps ErrMalformed and every
// authority recovery failure wraps ErrRecovery.
var (
	ErrMalformed = errors.New("malformed encoding")
	ErrRecovery  = errors.New("authority recovery failed")
)

// Decode errors.
var (
	ErrMalformedAccessList    = fmt.Errorf("accesslist: %w", ErrMalformed)
	ErrMalformedAuthorization = fmt.Errorf("setcode: %w", ErrMalformed)
	ErrInvalidYParity         = fmt.Errorf("%w: y-parity must be 0 or 1", ErrMalformedAuthorization)
)

// Recovery errors.
var (
	ErrInvalidSignatureValues = fmt.Errorf("setcode: %w: invalid signature values", ErrRecovery)
	ErrNoRecoverableKey       = fmt.Errorf("setcode: %w: no public key for signature", ErrRecovery)
)

// Policy errors returned only by the validity helpers.
var (
	ErrChainMismatch          = errors.New("setcode: authorization chain id does not match")
	ErrEmptyAuthorizationList = errors.New("setcode: authorization list is empty")
	ErrNonceOverflow          = errors.New("setcode: authorization nonce must be below 2^64-1")
	ErrSignatureHighS         = errors.New("setcode: signature s value is in the upper half of the curve order")
)
