package types

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"
)

// EncodeRLP implements rlp.Encoder as [chain_id, address, nonce].
func (a Authorization) EncodeRLP(w io.Writer) error {
	buf := rlp.NewEncoderBuffer(w)
	a.encode(buf)
	return buf.Flush()
}

// DecodeRLP implements rlp.Decoder.
func (a *Authorization) DecodeRLP(s *rlp.Stream) error {
	if _, err := s.List(); err != nil {
		return wrapMalformed(ErrMalformedAuthorization, err)
	}
	var dec Authorization
	if err := decodeAuthorizationFields(s, &dec); err != nil {
		return err
	}
	if err := s.ListEnd(); err != nil {
		return fmt.Errorf("%w: authorization must have exactly 3 elements: %w", ErrMalformedAuthorization, err)
	}
	*a = dec
	return nil
}

// EncodeSignedAuthorization returns the canonical encoding
// [chain_id, address, nonce, y_parity, r, s].
func EncodeSignedAuthorization(sa SignedAuthorization) []byte {
	w := rlp.NewEncoderBuffer(nil)
	sa.encode(w)
	return w.ToBytes()
}

// DecodeSignedAuthorization decodes a single signed authorization. Trailing
// bytes are rejected.
func DecodeSignedAuthorization(b []byte) (SignedAuthorization, error) {
	var sa SignedAuthorization
	if err := rlp.DecodeBytes(b, &sa); err != nil {
		return SignedAuthorization{}, wrapMalformed(ErrMalformedAuthorization, err)
	}
	return sa, nil
}

// EncodeRLP implements rlp.Encoder.
func (sa SignedAuthorization) EncodeRLP(w io.Writer) error {
	buf := rlp.NewEncoderBuffer(w)
	sa.encode(buf)
	return buf.Flush()
}

func (sa SignedAuthorization) encode(w rlp.EncoderBuffer) {
	l := w.List()
	sa.inner.encodeFields(w)
	writeUint64(w, uint64(sa.sig.YParity))
	writeQuantity(w, &sa.sig.R)
	writeQuantity(w, &sa.sig.S)
	w.ListEnd(l)
}

// EncodedSize returns the length of the canonical encoding.
func (sa SignedAuthorization) EncodedSize() int {
	payload := sa.inner.fieldsSize() +
		rlp.IntSize(uint64(sa.sig.YParity)) +
		quantitySize(&sa.sig.R) +
		quantitySize(&sa.sig.S)
	return listSize(payload)
}

// DecodeRLP implements rlp.Decoder. The decoded value gets a fresh memo.
func (sa *SignedAuthorization) DecodeRLP(s *rlp.Stream) error {
	if _, err := s.List(); err != nil {
		return wrapMalformed(ErrMalformedAuthorization, err)
	}
	var (
		auth Authorization
		sig  Signature
	)
	if err := decodeAuthorizationFields(s, &auth); err != nil {
		return err
	}
	yParity, err := readUint64(s)
	if err != nil {
		return wrapField("y-parity", err)
	}
	if yParity > 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidYParity, yParity)
	}
	sig.YParity = uint8(yParity)
	if err := readQuantity(s, &sig.R); err != nil {
		return wrapField("r", err)
	}
	if err := readQuantity(s, &sig.S); err != nil {
		return wrapField("s", err)
	}
	if err := s.ListEnd(); err != nil {
		return fmt.Errorf("%w: signed authorization must have exactly 6 elements: %w", ErrMalformedAuthorization, err)
	}
	*sa = NewSignedAuthorization(auth, sig)
	return nil
}

func wrapField(field string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrMalformedAuthorization, field, err)
}
