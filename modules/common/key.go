package common

import "math/big"

const KeyLen = 32

// Key carries derived symmetric key material, e.g. the scrypt output
// that seals a keystore file.
type Key [KeyLen]byte

func (k *Key) SetBytes(b []byte) {
	if len(b) > len(k) {
		b = b[len(b)-KeyLen:]
	}
	copy(k[:], b)
}

func (k *Key) Bytes() []byte {
	return k[:]
}

func (k Key) Hex() string {
	buf := make([]byte, len(k)*2+2)
	copy(buf[:2], []byte("0x"))
	encode(buf[2:], k[:])
	return string(buf)
}

func (k Key) BigInt() *big.Int {
	return new(big.Int).SetBytes(k[:])
}

func BytesToKey(b []byte) Key {
	var k Key
	k.SetBytes(b)
	return k
}

func HexToKey(s string) Key {
	if has0xPrefix(s) {
		s = s[2:]
	}

	b := decode(s)
	return BytesToKey(b)
}
