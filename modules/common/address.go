package common

import (
	"math/big"
	"strings"
)

const AddrLen = 8

// AddrPrefix tags every wallet address in its display form.
const AddrPrefix = "AIA-QTL-"

type Address [AddrLen]byte

func (a *Address) SetBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddrLen:]
	}
	copy(a[AddrLen-len(b):], b)
}

func (a Address) Bytes() []byte {
	return a[:]
}

// String renders the canonical wallet form: AIA-QTL- plus 16 uppercase
// hex characters.
func (a Address) String() string {
	return AddrPrefix + a.hexUpper()
}

func (a Address) Hex() string {
	buf := make([]byte, len(a)*2+2)
	copy(buf[:2], []byte("0x"))
	encode(buf[2:], a[:])
	return string(buf)
}

func (a Address) BigInt() *big.Int {
	return new(big.Int).SetBytes(a.Bytes())
}

func BytesToAddress(b []byte) Address {
	var addr Address
	addr.SetBytes(b)
	return addr
}

func HexToAddress(s string) Address {
	if has0xPrefix(s) {
		s = s[2:]
	}
	b := decode(s)
	return BytesToAddress(b)
}

// StringToAddress parses the canonical wallet form; the prefix is
// optional and hex case is ignored.
func StringToAddress(s string) Address {
	if hasAddrPrefix(s) {
		s = s[len(AddrPrefix):]
	}
	b := decode(s)
	return BytesToAddress(b)
}

func (a Address) hexUpper() string {
	buf := make([]byte, AddrLen*2)
	encode(buf, a[:])
	return strings.ToUpper(string(buf))
}
