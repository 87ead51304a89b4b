package types

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/eth2030/typedtx/crypto"
)

// Signature is a detached secp256k1 signature over an authorization's
// signing hash.
type Signature struct {
	YParity uint8
	R       uint256.Int
	S       uint256.Int
}

// NewSignature builds a Signature from a 65-byte R || S || V signature as
// produced by go-ethereum's crypto.Sign.
func NewSignature(sig []byte) (Signature, error) {
	if len(sig) != crypto.SignatureLength {
		return Signature{}, fmt.Errorf("%w: want %d signature bytes, got %d",
			ErrInvalidSignatureValues, crypto.SignatureLength, len(sig))
	}
	var out Signature
	out.R.SetBytes32(sig[:32])
	out.S.SetBytes32(sig[32:64])
	out.YParity = sig[64]
	if out.YParity > 1 {
		return Signature{}, fmt.Errorf("%w: y-parity %d", ErrInvalidSignatureValues, out.YParity)
	}
	return out, nil
}

// Bytes returns the 65-byte R || S || V form.
func (sig Signature) Bytes() []byte {
	return crypto.CompactSignature(sig.YParity, &sig.R, &sig.S)
}

// ValidateValues checks that r and s are in [1, n-1] and the y-parity is 0
// or 1. With requireLowS it also enforces the EIP-2 bound s <= n/2, which
// is a policy check and not part of recovery.
func (sig Signature) ValidateValues(requireLowS bool) error {
	err := crypto.ValidateSignatureValues(sig.YParity, &sig.R, &sig.S, requireLowS)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, crypto.ErrMalleableS):
		return ErrSignatureHighS
	default:
		return fmt.Errorf("%w: %w", ErrInvalidSignatureValues, err)
	}
}
