package crypto

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// A signature over keccak256(0x05 || rlp([0, 0x11..11, 0])) by the key
// b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291.
var (
	testDigest = common.HexToHash("0xbce043d2be6b6a6257ca659ae30d27657722aeedb466b2256c750e0de08654ba")
	testR      = uint256.MustFromHex("0x81ae61dbf46852a28fb87a3f28e34e161353b5ffa73515453542c0d096245e26")
	testS      = uint256.MustFromHex("0x16443cdcac9f7f46c925b75dac806d4e1e53ff06bb81fbcebe3cece3e26eddb9")
	testSigner = common.HexToAddress("0x71562b71999873db5b286df957af199ec94617f7")
)

func TestValidateSignatureValues(t *testing.T) {
	one := uint256.NewInt(1)
	nMinus1 := new(uint256.Int).SubUint64(Secp256k1N, 1)
	aboveHalf := new(uint256.Int).AddUint64(Secp256k1HalfN, 1)
	tests := []struct {
		name string
		v    byte
		r, s *uint256.Int
		lowS bool
		want error
	}{
		{"minimal", 0, one, one, true, nil},
		{"maximal", 1, nMinus1, nMinus1, false, nil},
		{"half n with low-s", 0, one, Secp256k1HalfN, true, nil},
		{"above half n", 0, one, aboveHalf, false, nil},
		{"above half n with low-s", 0, one, aboveHalf, true, ErrMalleableS},
		{"v 2", 2, one, one, false, ErrInvalidRecoveryID},
		{"r zero", 0, new(uint256.Int), one, false, ErrInvalidR},
		{"r n", 0, Secp256k1N, one, false, ErrInvalidR},
		{"s zero", 0, one, new(uint256.Int), false, ErrInvalidS},
		{"s n", 0, one, Secp256k1N, false, ErrInvalidS},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignatureValues(tt.v, tt.r, tt.s, tt.lowS)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCompactSignature(t *testing.T) {
	sig := CompactSignature(1, uint256.NewInt(2), uint256.NewInt(3))
	if len(sig) != SignatureLength {
		t.Fatalf("length %d, want %d", len(sig), SignatureLength)
	}
	want := make([]byte, SignatureLength)
	want[31], want[63], want[64] = 2, 3, 1
	if !bytes.Equal(sig, want) {
		t.Fatalf("got %x, want %x", sig, want)
	}
}

func TestSecp256k1Recover(t *testing.T) {
	pub, err := Secp256k1.Ecrecover(testDigest, CompactSignature(1, testR, testS))
	if err != nil {
		t.Fatalf("ecrecover: %v", err)
	}
	addr, err := PubkeyToAddress(Secp256k1, pub)
	if err != nil {
		t.Fatal(err)
	}
	if addr != testSigner {
		t.Fatalf("got %v, want %v", addr, testSigner)
	}

	key, err := gethcrypto.HexToECDSA("b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pub, gethcrypto.FromECDSAPub(&key.PublicKey)) {
		t.Fatal("recovered key does not match the signing key")
	}
}

func TestSecp256k1RecoverWrongParity(t *testing.T) {
	pub, err := Secp256k1.Ecrecover(testDigest, CompactSignature(0, testR, testS))
	if err != nil {
		// Either outcome is acceptable as long as it is not the signer.
		return
	}
	addr, err := PubkeyToAddress(Secp256k1, pub)
	if err != nil {
		t.Fatal(err)
	}
	if addr == testSigner {
		t.Fatal("flipped parity recovered the original signer")
	}
}

func TestPubkeyToAddressInvalid(t *testing.T) {
	for _, pub := range [][]byte{nil, make([]byte, 64), make([]byte, 65), append([]byte{0x02}, make([]byte, 32)...)} {
		if _, err := PubkeyToAddress(Secp256k1, pub); !errors.Is(err, ErrInvalidPubkey) {
			t.Errorf("pub %x: got %v, want ErrInvalidPubkey", pub, err)
		}
	}
}
