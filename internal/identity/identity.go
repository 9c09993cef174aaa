// Package identity canonicalizes the identity handles the registry is keyed
// by. Handles are opaque strings supplied by the wallet/identity provider,
// with one exception: Ethereum-style hex addresses are case-insensitive, so
// they are rewritten to their EIP-55 checksum spelling before use.
package identity

import (
	"encoding/hex"
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/sha3"
)

var (
	ErrEmpty   = errors.New("identity cannot be empty")
	ErrInvalid = errors.New("invalid identity")
)

const addressHexLen = 40

// Normalize returns the canonical form of s.
func Normalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmpty
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return "", ErrInvalid
	}
	if IsAddress(s) {
		return Checksum(s), nil
	}
	return s, nil
}

// IsAddress reports whether s is a 0x-prefixed 20-byte hex address.
func IsAddress(s string) bool {
	if len(s) != addressHexLen+2 || !(strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		return false
	}
	_, err := hex.DecodeString(s[2:])
	return err == nil
}

// Checksum applies EIP-55 mixed-case encoding to a hex address. The caller
// must have checked IsAddress.
func Checksum(addr string) string {
	lower := strings.ToLower(addr[2:])

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	digest := h.Sum(nil)

	out := make([]byte, 0, len(addr))
	out = append(out, '0', 'x')
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if c >= 'a' && c <= 'f' {
			nibble := digest[i/2]
			if i%2 == 0 {
				nibble >>= 4
			}
			if nibble&0x0f >= 8 {
				c -= 'a' - 'A'
			}
		}
		out = append(out, c)
	}
	return string(out)
}
