package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/eth2030/typedtx/crypto"
)

// Authorization is the unsigned payload of an EIP-7702 authorization tuple.
// A zero ChainID makes the authorization valid on every chain.
type Authorization struct {
	ChainID uint256.Int
	Address common.Address
	Nonce   uint64
}

// NewAuthorization builds an authorization from a uint64 chain id.
func NewAuthorization(chainID uint64, addr common.Address, nonce uint64) Authorization {
	return Authorization{
		ChainID: *uint256.NewInt(chainID),
		Address: addr,
		Nonce:   nonce,
	}
}

// SigningPreimage returns the exact bytes whose keccak256 digest is signed:
// 0x05 || rlp([chain_id, address, nonce]).
func (a Authorization) SigningPreimage() []byte {
	w := rlp.NewEncoderBuffer(nil)
	a.encode(w)
	return w.AppendToBytes([]byte{AuthMagic})
}

// SigningHash computes the EIP-7702 authorization signing hash:
// keccak256(0x05 || rlp([chain_id, address, nonce]))
func (a Authorization) SigningHash() common.Hash {
	return a.SigningHashWith(crypto.Secp256k1)
}

// SigningHashWith computes the signing hash using the supplied hasher.
func (a Authorization) SigningHashWith(h crypto.Hasher) common.Hash {
	return h.Keccak256Hash(a.SigningPreimage())
}

// AppliesToChain reports whether the authorization may be applied on the
// given chain: a zero chain id matches any chain, otherwise the ids must be
// equal. A nil chainID only matches the wildcard.
func (a Authorization) AppliesToChain(chainID *uint256.Int) bool {
	if a.ChainID.IsZero() {
		return true
	}
	return chainID != nil && a.ChainID.Eq(chainID)
}

// AppliesToChainID is AppliesToChain for a uint64 chain id.
func (a Authorization) AppliesToChainID(chainID uint64) bool {
	return a.AppliesToChain(uint256.NewInt(chainID))
}

// WithSignature attaches a signature produced off-band.
func (a Authorization) WithSignature(sig Signature) SignedAuthorization {
	return NewSignedAuthorization(a, sig)
}

func (a Authorization) encode(w rlp.EncoderBuffer) {
	l := w.List()
	a.encodeFields(w)
	w.ListEnd(l)
}

func (a Authorization) encodeFields(w rlp.EncoderBuffer) {
	writeQuantity(w, &a.ChainID)
	w.WriteBytes(a.Address[:])
	writeUint64(w, a.Nonce)
}

func (a Authorization) fieldsSize() int {
	return quantitySize(&a.ChainID) + stringSize(common.AddressLength) + rlp.IntSize(a.Nonce)
}

func decodeAuthorizationFields(s *rlp.Stream, a *Authorization) error {
	if err := readQuantity(s, &a.ChainID); err != nil {
		return wrapField("chain id", err)
	}
	if err := s.ReadBytes(a.Address[:]); err != nil {
		return wrapField("address", err)
	}
	nonce, err := readUint64(s)
	if err != nil {
		return wrapField("nonce", err)
	}
	a.Nonce = nonce
	return nil
}
