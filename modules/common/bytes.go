package common

import (
	"encoding/hex"
)

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && s[1] == 'x'
}

func hasAddrPrefix(s string) bool {
	return len(s) >= len(AddrPrefix) && s[:len(AddrPrefix)] == AddrPrefix
}

func EncodeToHex(data []byte) string {
	buf := make([]byte, len(data)*2+2)
	copy(buf[:2], []byte("0x"))
	encode(buf[2:], data)

	return string(buf)
}

func Decode(s string) []byte {
	if has0xPrefix(s) {
		s = s[2:]
	}
	return decode(s)
}

func encode(dst []byte, src []byte) []byte {
	hex.Encode(dst, src)
	return dst
}

func decode(s string) []byte {
	b, _ := hex.DecodeString(s)
	return b
}
