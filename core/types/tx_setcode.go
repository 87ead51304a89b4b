package types

// AuthMagic is the domain separator prefixed to an encoded authorization
// before hashing: keccak256(0x05 || rlp([chain_id, address, nonce])).
const AuthMagic byte = 0x05
