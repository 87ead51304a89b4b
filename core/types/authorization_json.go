package types

import (
	"encoding/json"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

type authorizationJSON struct {
	ChainID *hexutil.U256   `json:"chainId"`
	Address *common.Address `json:"address"`
	Nonce   *hexutil.Uint64 `json:"nonce"`
}

type signedAuthorizationJSON struct {
	ChainID *hexutil.U256   `json:"chainId"`
	Address *common.Address `json:"address"`
	Nonce   *hexutil.Uint64 `json:"nonce"`
	YParity *hexutil.Uint64 `json:"yParity"`
	R       *hexutil.U256   `json:"r"`
	S       *hexutil.U256   `json:"s"`
}

var (
	errMissingChainID = errors.New("missing required field 'chainId'")
	errMissingAddress = errors.New("missing required field 'address'")
	errMissingNonce   = errors.New("missing required field 'nonce'")
	errMissingYParity = errors.New("missing required field 'yParity'")
	errMissingR       = errors.New("missing required field 'r'")
	errMissingS       = errors.New("missing required field 's'")
)

// MarshalJSON implements json.Marshaler.
func (a Authorization) MarshalJSON() ([]byte, error) {
	nonce := hexutil.Uint64(a.Nonce)
	return json.Marshal(authorizationJSON{
		ChainID: (*hexutil.U256)(&a.ChainID),
		Address: &a.Address,
		Nonce:   &nonce,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Authorization) UnmarshalJSON(input []byte) error {
	var dec authorizationJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	switch {
	case dec.ChainID == nil:
		return errMissingChainID
	case dec.Address == nil:
		return errMissingAddress
	case dec.Nonce == nil:
		return errMissingNonce
	}
	a.ChainID = uint256.Int(*dec.ChainID)
	a.Address = *dec.Address
	a.Nonce = uint64(*dec.Nonce)
	return nil
}

// MarshalJSON implements json.Marshaler. The authority is not part of the
// text form.
func (sa SignedAuthorization) MarshalJSON() ([]byte, error) {
	nonce := hexutil.Uint64(sa.inner.Nonce)
	yParity := hexutil.Uint64(sa.sig.YParity)
	return json.Marshal(signedAuthorizationJSON{
		ChainID: (*hexutil.U256)(&sa.inner.ChainID),
		Address: &sa.inner.Address,
		Nonce:   &nonce,
		YParity: &yParity,
		R:       (*hexutil.U256)(&sa.sig.R),
		S:       (*hexutil.U256)(&sa.sig.S),
	})
}

// UnmarshalJSON implements json.Unmarshaler. A y-parity other than 0 or 1
// is rejected like it is on the wire.
func (sa *SignedAuthorization) UnmarshalJSON(input []byte) error {
	var dec signedAuthorizationJSON
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	switch {
	case dec.ChainID == nil:
		return errMissingChainID
	case dec.Address == nil:
		return errMissingAddress
	case dec.Nonce == nil:
		return errMissingNonce
	case dec.YParity == nil:
		return errMissingYParity
	case dec.R == nil:
		return errMissingR
	case dec.S == nil:
		return errMissingS
	}
	if *dec.YParity > 1 {
		return ErrInvalidYParity
	}
	auth := Authorization{
		ChainID: uint256.Int(*dec.ChainID),
		Address: *dec.Address,
		Nonce:   uint64(*dec.Nonce),
	}
	sig := Signature{
		YParity: uint8(*dec.YParity),
		R:       uint256.Int(*dec.R),
		S:       uint256.Int(*dec.S),
	}
	*sa = NewSignedAuthorization(auth, sig)
	return nil
}
