package types

import (
	"errors"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// EncodeAccessList returns the canonical encoding
// [[address, [key, ...]], ...] of al.
func EncodeAccessList(al AccessList) []byte {
	w := rlp.NewEncoderBuffer(nil)
	al.encode(w)
	return w.ToBytes()
}

// DecodeAccessList decodes a complete access list. Trailing bytes after the
// outer list are rejected.
func DecodeAccessList(b []byte) (AccessList, error) {
	var al AccessList
	if err := rlp.DecodeBytes(b, &al); err != nil {
		return nil, wrapMalformed(ErrMalformedAccessList, err)
	}
	return al, nil
}

// EncodeRLP implements rlp.Encoder.
func (al AccessList) EncodeRLP(w io.Writer) error {
	buf := rlp.NewEncoderBuffer(w)
	al.encode(buf)
	return buf.Flush()
}

func (al AccessList) encode(w rlp.EncoderBuffer) {
	outer := w.List()
	for _, tuple := range al {
		item := w.List()
		w.WriteBytes(tuple.Address[:])
		keys := w.List()
		for _, key := range tuple.StorageKeys {
			w.WriteBytes(key[:])
		}
		w.ListEnd(keys)
		w.ListEnd(item)
	}
	w.ListEnd(outer)
}

// DecodeRLP implements rlp.Decoder. On error the receiver is left untouched.
func (al *AccessList) DecodeRLP(s *rlp.Stream) error {
	if _, err := s.List(); err != nil {
		return wrapMalformed(ErrMalformedAccessList, err)
	}
	dec := AccessList{}
	for i := 0; s.MoreDataInList(); i++ {
		tuple, err := decodeAccessTuple(s)
		if err != nil {
			return fmt.Errorf("%w: tuple %d: %w", ErrMalformedAccessList, i, err)
		}
		dec = append(dec, tuple)
	}
	if err := s.ListEnd(); err != nil {
		return wrapMalformed(ErrMalformedAccessList, err)
	}
	*al = dec
	return nil
}

func decodeAccessTuple(s *rlp.Stream) (AccessTuple, error) {
	var tuple AccessTuple
	if _, err := s.List(); err != nil {
		return tuple, err
	}
	if err := s.ReadBytes(tuple.Address[:]); err != nil {
		return tuple, fmt.Errorf("address: %w", err)
	}
	if _, err := s.List(); err != nil {
		return tuple, fmt.Errorf("storage keys: %w", err)
	}
	tuple.StorageKeys = []common.Hash{}
	for s.MoreDataInList() {
		var key common.Hash
		if err := s.ReadBytes(key[:]); err != nil {
			return tuple, fmt.Errorf("storage key %d: %w", len(tuple.StorageKeys), err)
		}
		tuple.StorageKeys = append(tuple.StorageKeys, key)
	}
	if err := s.ListEnd(); err != nil {
		return tuple, fmt.Errorf("storage keys: %w", err)
	}
	// A third element makes the tuple malformed.
	if err := s.ListEnd(); err != nil {
		return tuple, fmt.Errorf("tuple must have exactly two elements: %w", err)
	}
	return tuple, nil
}

// wrapMalformed tags err with the given category unless it already is.
func wrapMalformed(category, err error) error {
	if errors.Is(err, category) {
		return err
	}
	return fmt.Errorf("%w: %w", category, err)
}
