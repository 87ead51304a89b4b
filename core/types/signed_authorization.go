package types

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/holiman/uint256"

	"github.com/eth2030/typedtx/crypto"
)

var (
	authorityRecoveredCounter = metrics.NewRegisteredCounter("typedtx/authority/recovered", nil)
	authorityFailedCounter    = metrics.NewRegisteredCounter("typedtx/authority/failed", nil)
	authorityCacheHitCounter  = metrics.NewRegisteredCounter("typedtx/authority/cachehit", nil)
)

// SignedAuthorization is an Authorization with its detached signature. The
// recovered authority is computed on first use and memoized. The memo is
// not part of the value's identity: compare with Equal or Key, not ==.
//
// Copies share the memo. The authorization and signature never change
// after construction.
type SignedAuthorization struct {
	inner Authorization
	sig   Signature

	authority *authorityCell
}

// authorityCell is a single-assignment slot. done is set after addr and
// err are written, so a reader that observes done also observes the result.
type authorityCell struct {
	once sync.Once
	done atomic.Bool
	addr common.Address
	err  error
}

// AuthorizationKey is the comparable identity of a SignedAuthorization,
// usable as a map key.
type AuthorizationKey struct {
	Authorization
	Signature
}

// NewSignedAuthorization pairs an authorization with its signature.
func NewSignedAuthorization(auth Authorization, sig Signature) SignedAuthorization {
	return SignedAuthorization{inner: auth, sig: sig, authority: new(authorityCell)}
}

// Authorization returns the signed payload.
func (sa SignedAuthorization) Authorization() Authorization { return sa.inner }

// Signature returns the attached signature.
func (sa SignedAuthorization) Signature() Signature { return sa.sig }

// ChainID returns a copy of the authorization's chain id.
func (sa SignedAuthorization) ChainID() *uint256.Int {
	id := sa.inner.ChainID
	return &id
}

// Address returns the delegation target.
func (sa SignedAuthorization) Address() common.Address { return sa.inner.Address }

// Nonce returns the authority nonce the authorization is bound to.
func (sa SignedAuthorization) Nonce() uint64 { return sa.inner.Nonce }

// Key returns the identity of the value.
func (sa SignedAuthorization) Key() AuthorizationKey {
	return AuthorizationKey{Authorization: sa.inner, Signature: sa.sig}
}

// Equal reports whether both values carry the same authorization and
// signature, regardless of whether either authority has been recovered.
func (sa SignedAuthorization) Equal(other SignedAuthorization) bool {
	return sa.inner == other.inner && sa.sig == other.sig
}

// Authority recovers the signer with the default secp256k1 backend.
func (sa SignedAuthorization) Authority() (common.Address, error) {
	return sa.RecoverAuthority(crypto.Secp256k1)
}

// RecoverAuthority returns the address that signed the authorization. The
// first call computes the result with b; later calls, including concurrent
// ones, return the memoized address or error without touching b.
func (sa SignedAuthorization) RecoverAuthority(b crypto.Backend) (common.Address, error) {
	cell := sa.authority
	if cell == nil {
		// Zero value built outside the constructors: nothing to memoize into.
		return recoverAuthority(sa.inner, sa.sig, b)
	}
	computed := false
	cell.once.Do(func() {
		computed = true
		cell.addr, cell.err = recoverAuthority(sa.inner, sa.sig, b)
		cell.done.Store(true)
	})
	if !computed {
		authorityCacheHitCounter.Inc(1)
	}
	return cell.addr, cell.err
}

// IsRecovered reports whether the authority has already been computed.
func (sa SignedAuthorization) IsRecovered() bool {
	return sa.authority != nil && sa.authority.done.Load()
}

// Recovered resolves the authority and returns the payload paired with the
// outcome.
func (sa SignedAuthorization) Recovered() RecoveredAuthorization {
	addr, err := sa.Authority()
	return RecoveredAuthorization{
		Authorization: sa.inner,
		Authority:     RecoveredAuthority{Address: addr, Err: err},
	}
}

func recoverAuthority(auth Authorization, sig Signature, b crypto.Backend) (common.Address, error) {
	if err := sig.ValidateValues(false); err != nil {
		authorityFailedCounter.Inc(1)
		return common.Address{}, err
	}
	digest := auth.SigningHashWith(b)
	pub, err := b.Ecrecover(digest, sig.Bytes())
	if err != nil {
		authorityFailedCounter.Inc(1)
		log.Trace("Authorization signature not recoverable", "address", auth.Address, "nonce", auth.Nonce, "err", err)
		return common.Address{}, fmt.Errorf("%w: %w", ErrNoRecoverableKey, err)
	}
	addr, err := crypto.PubkeyToAddress(b, pub)
	if err != nil {
		authorityFailedCounter.Inc(1)
		return common.Address{}, fmt.Errorf("%w: %w", ErrNoRecoverableKey, err)
	}
	authorityRecoveredCounter.Inc(1)
	return addr, nil
}

// RecoveredAuthority is the outcome of recovering one authority: either a
// valid address or the reason recovery failed.
type RecoveredAuthority struct {
	Address common.Address
	Err     error
}

// Valid reports whether recovery succeeded.
func (r RecoveredAuthority) Valid() bool { return r.Err == nil }

// RecoveredAuthorization is an authorization paired with its recovered
// authority.
type RecoveredAuthorization struct {
	Authorization Authorization
	Authority     RecoveredAuthority
}
