package crypto

import (
	"errors"

	"github.com/holiman/uint256"
)

var (
	// Secp256k1N is the order of the secp256k1 curve.
	Secp256k1N = uint256.MustFromHex("0xfffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")

	// Secp256k1HalfN is half the order, the EIP-2 upper bound for s.
	Secp256k1HalfN = new(uint256.Int).Rsh(Secp256k1N, 1)
)

var (
	ErrInvalidRecoveryID = errors.New("crypto: recovery id must be 0 or 1")
	ErrInvalidR          = errors.New("crypto: r must be in [1, n-1]")
	ErrInvalidS          = errors.New("crypto: s must be in [1, n-1]")
	ErrMalleableS        = errors.New("crypto: s is in the upper half of the curve order")
)

// ValidateSignatureValues checks that v, r, s form a structurally valid
// secp256k1 signature. When lowS is set, s must also lie in the lower half
// of the curve order.
func ValidateSignatureValues(v byte, r, s *uint256.Int, lowS bool) error {
	if v > 1 {
		return ErrInvalidRecoveryID
	}
	if r.IsZero() || !r.Lt(Secp256k1N) {
		return ErrInvalidR
	}
	if s.IsZero() || !s.Lt(Secp256k1N) {
		return ErrInvalidS
	}
	if lowS && s.Gt(Secp256k1HalfN) {
		return ErrMalleableS
	}
	return nil
}

// CompactSignature packs r, s and the y-parity into the 65-byte R || S || V
// layout expected by Recoverer.
func CompactSignature(v byte, r, s *uint256.Int) []byte {
	sig := make([]byte, SignatureLength)
	r.WriteToSlice(sig[:32])
	s.WriteToSlice(sig[32:64])
	sig[64] = v
	return sig
}
