// Package crypto provides the hashing and public key recovery capabilities
// that authorization recovery is built on. Secp256k1 is the default Backend.
package crypto

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// SignatureLength is the length of a recoverable signature: R || S || V.
const SignatureLength = 65

var ErrInvalidPubkey = errors.New("crypto: recovered public key is not 65-byte uncompressed")

// Hasher computes the Keccak-256 digest of the concatenated inputs.
type Hasher interface {
	Keccak256Hash(data ...[]byte) common.Hash
}

// Recoverer recovers the uncompressed (65-byte, 0x04 prefixed) public key
// that produced sig over digest. sig is R (32) || S (32) || V (1) with V
// being the raw y-parity.
type Recoverer interface {
	Ecrecover(digest common.Hash, sig []byte) ([]byte, error)
}

// Backend bundles both capabilities.
type Backend interface {
	Hasher
	Recoverer
}

// Secp256k1 is the default backend: x/crypto keccak and go-ethereum's
// secp256k1 recovery.
var Secp256k1 Backend = secp256k1Backend{}

type secp256k1Backend struct{}

func (secp256k1Backend) Keccak256Hash(data ...[]byte) common.Hash {
	return Keccak256Hash(data...)
}

func (secp256k1Backend) Ecrecover(digest common.Hash, sig []byte) ([]byte, error) {
	return gethcrypto.Ecrecover(digest[:], sig)
}

// PubkeyToAddress derives the account address of an uncompressed public key:
// the low 20 bytes of keccak256(X || Y).
func PubkeyToAddress(h Hasher, pub []byte) (common.Address, error) {
	if len(pub) != 65 || pub[0] != 0x04 {
		return common.Address{}, ErrInvalidPubkey
	}
	hash := h.Keccak256Hash(pub[1:])
	return common.BytesToAddress(hash[12:]), nil
}
