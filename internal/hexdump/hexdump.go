// Package hexdump formats raw bytes for diagnostics.
package hexdump

import (
	"encoding/hex"
	"strings"
)

const upperDigits = "0123456789ABCDEF"

// ToHex renders b on one line as space separated uppercase byte pairs.
func ToHex(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(b)*3 - 1)
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(upperDigits[v>>4])
		sb.WriteByte(upperDigits[v&0x0F])
	}
	return sb.String()
}

// Dump renders b as an offset-prefixed multi-line listing.
func Dump(b []byte) string {
	return hex.Dump(b)
}
