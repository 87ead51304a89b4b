package types

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

// All integer fields of access lists and authorizations go through the
// helpers below: big-endian, no leading zero bytes, zero encoded as the
// empty string.

func writeQuantity(w rlp.EncoderBuffer, v *uint256.Int) {
	w.WriteUint256(v)
}

func writeUint64(w rlp.EncoderBuffer, v uint64) {
	w.WriteUint64(v)
}

// readQuantity decodes a canonical integer of at most 32 bytes.
func readQuantity(s *rlp.Stream, dst *uint256.Int) error {
	return s.ReadUint256(dst)
}

// readUint64 decodes a canonical integer of at most 8 bytes.
func readUint64(s *rlp.Stream) (uint64, error) {
	return s.Uint64()
}

// quantitySize is the encoded length of v.
func quantitySize(v *uint256.Int) int {
	if v.IsUint64() {
		return rlp.IntSize(v.Uint64())
	}
	return 1 + v.ByteLen()
}

// stringSize is the encoded length of a byte string of n bytes, n != 1.
func stringSize(n int) int {
	if n <= 55 {
		return 1 + n
	}
	return 1 + intByteLen(uint64(n)) + n
}

// listSize is the encoded length of a list with the given payload length.
func listSize(payload int) int {
	return int(rlp.ListSize(uint64(payload)))
}

func intByteLen(v uint64) int {
	n := 0
	for ; v > 0; v >>= 8 {
		n++
	}
	return n
}
