package types

import (
	"crypto/ecdsa"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// SignAuthorization signs auth with prv. The returned value already has
// its authority memoized, since the signer is known.
func SignAuthorization(prv *ecdsa.PrivateKey, auth Authorization) (SignedAuthorization, error) {
	hash := auth.SigningHash()
	raw, err := gethcrypto.Sign(hash[:], prv)
	if err != nil {
		return SignedAuthorization{}, err
	}
	sig, err := NewSignature(raw)
	if err != nil {
		return SignedAuthorization{}, err
	}
	sa := NewSignedAuthorization(auth, sig)
	signer := gethcrypto.PubkeyToAddress(prv.PublicKey)
	sa.authority.once.Do(func() {
		sa.authority.addr = signer
		sa.authority.done.Store(true)
	})
	return sa, nil
}
