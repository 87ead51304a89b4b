package types

import (
	"fmt"
	"io"
	"iter"
	"math"

	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/eth2030/typedtx/crypto"
)

// AuthorizationList is the authorization list of a set-code transaction.
// Entries keep their wire order; entries with the same target or the same
// authority are all retained.
type AuthorizationList []SignedAuthorization

// Authorities lazily recovers each entry's authority in list order using
// the default backend. A failed entry does not stop the traversal.
func (l AuthorizationList) Authorities() iter.Seq2[int, RecoveredAuthority] {
	return l.AuthoritiesWith(crypto.Secp256k1)
}

// AuthoritiesWith is Authorities with an explicit backend.
func (l AuthorizationList) AuthoritiesWith(b crypto.Backend) iter.Seq2[int, RecoveredAuthority] {
	return func(yield func(int, RecoveredAuthority) bool) {
		for i := range l {
			addr, err := l[i].RecoverAuthority(b)
			if err != nil {
				log.Debug("Authority recovery failed", "index", i, "target", l[i].inner.Address, "err", err)
			}
			if !yield(i, RecoveredAuthority{Address: addr, Err: err}) {
				return
			}
		}
	}
}

// RecoverAll resolves every authority and returns the results in list order.
func (l AuthorizationList) RecoverAll() []RecoveredAuthorization {
	out := make([]RecoveredAuthorization, 0, len(l))
	for i, authority := range l.Authorities() {
		out = append(out, RecoveredAuthorization{Authorization: l[i].inner, Authority: authority})
	}
	return out
}

// Applicable counts the entries whose chain id allows them on chainID.
func (l AuthorizationList) Applicable(chainID *uint256.Int) int {
	n := 0
	for i := range l {
		if l[i].inner.AppliesToChain(chainID) {
			n++
		}
	}
	return n
}

// ValidateBasic performs the stateless checks shared by every consumer of a
// set-code authorization list: the list is non-empty, every signature has
// r and s in range, and every nonce is below 2^64-1. It does not recover
// authorities and does not check chain ids.
func (l AuthorizationList) ValidateBasic() error {
	if len(l) == 0 {
		return ErrEmptyAuthorizationList
	}
	for i := range l {
		if l[i].inner.Nonce == math.MaxUint64 {
			return fmt.Errorf("authorization %d: %w", i, ErrNonceOverflow)
		}
		if err := l[i].sig.ValidateValues(false); err != nil {
			return fmt.Errorf("authorization %d: %w", i, err)
		}
	}
	return nil
}

// CheckChain returns ErrChainMismatch if the authorization may not be used
// on chainID.
func CheckChain(auth Authorization, chainID *uint256.Int) error {
	if auth.AppliesToChain(chainID) {
		return nil
	}
	chain := "none"
	if chainID != nil {
		chain = chainID.Dec()
	}
	return fmt.Errorf("%w: authorization=%s chain=%s", ErrChainMismatch, auth.ChainID.Dec(), chain)
}

// EncodeAuthorizationList returns the canonical encoding of l.
func EncodeAuthorizationList(l AuthorizationList) []byte {
	w := rlp.NewEncoderBuffer(nil)
	l.encode(w)
	return w.ToBytes()
}

// DecodeAuthorizationList decodes a complete authorization list.
func DecodeAuthorizationList(b []byte) (AuthorizationList, error) {
	var l AuthorizationList
	if err := rlp.DecodeBytes(b, &l); err != nil {
		return nil, wrapMalformed(ErrMalformedAuthorization, err)
	}
	return l, nil
}

// EncodeRLP implements rlp.Encoder.
func (l AuthorizationList) EncodeRLP(w io.Writer) error {
	buf := rlp.NewEncoderBuffer(w)
	l.encode(buf)
	return buf.Flush()
}

func (l AuthorizationList) encode(w rlp.EncoderBuffer) {
	outer := w.List()
	for i := range l {
		l[i].encode(w)
	}
	w.ListEnd(outer)
}

// DecodeRLP implements rlp.Decoder.
func (l *AuthorizationList) DecodeRLP(s *rlp.Stream) error {
	if _, err := s.List(); err != nil {
		return wrapMalformed(ErrMalformedAuthorization, err)
	}
	dec := AuthorizationList{}
	for i := 0; s.MoreDataInList(); i++ {
		var sa SignedAuthorization
		if err := sa.DecodeRLP(s); err != nil {
			return fmt.Errorf("authorization %d: %w", i, err)
		}
		dec = append(dec, sa)
	}
	if err := s.ListEnd(); err != nil {
		return wrapMalformed(ErrMalformedAuthorization, err)
	}
	*l = dec
	return nil
}
