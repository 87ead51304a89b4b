package types

import (
	"slices"

	"github.com/ethereum/go-ethereum/common"
)

// AccessList is an EIP-2930 access list: the addresses and storage slots a
// transaction declares up front. Order and duplicates are preserved exactly
// as given since both affect the encoded bytes.
type AccessList []AccessTuple

// AccessTuple is the element type of an access list.
type AccessTuple struct {
	Address     common.Address `json:"address"`
	StorageKeys []common.Hash  `json:"storageKeys"`
}

// Len returns the number of address entries.
func (al AccessList) Len() int { return len(al) }

// StorageKeys returns the total number of storage keys in the access list.
func (al AccessList) StorageKeys() int {
	sum := 0
	for _, tuple := range al {
		sum += len(tuple.StorageKeys)
	}
	return sum
}

// EncodedSize returns the length of the canonical encoding without
// performing it.
func (al AccessList) EncodedSize() int {
	return listSize(al.payloadSize())
}

func (al AccessList) payloadSize() int {
	size := 0
	for _, tuple := range al {
		size += tuple.encodedSize()
	}
	return size
}

func (t AccessTuple) encodedSize() int {
	keys := len(t.StorageKeys) * stringSize(common.HashLength)
	return listSize(stringSize(common.AddressLength) + listSize(keys))
}

// Equal reports whether both lists hold the same tuples in the same order.
// A nil list equals an empty one.
func (al AccessList) Equal(other AccessList) bool {
	return slices.EqualFunc(al, other, func(a, b AccessTuple) bool {
		return a.Address == b.Address && slices.Equal(a.StorageKeys, b.StorageKeys)
	})
}

// Copy returns a deep copy of the access list.
func (al AccessList) Copy() AccessList {
	if al == nil {
		return nil
	}
	cpy := make(AccessList, len(al))
	for i, tuple := range al {
		cpy[i] = AccessTuple{
			Address:     tuple.Address,
			StorageKeys: slices.Clone(tuple.StorageKeys),
		}
	}
	return cpy
}
