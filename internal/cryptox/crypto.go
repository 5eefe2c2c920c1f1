// Package cryptox implements the textbook RSA signature check used by the
// login protocol, together with the integer/byte-string codec it relies on.
//
// The scheme has no padding: a signature s is valid for a message m under the
// public key (e, n) iff s^e mod n, serialized big-endian without leading
// zeros, equals the raw bytes of m. This is kept unchanged for
// compatibility with existing keys and signers. It is malleable and, for
// small exponents, forgeable for short messages; do not reuse it elsewhere.
package cryptox

import (
	"bytes"
	"math/big"
)

// KeyBase is the base in which public key components are stored.
const KeyBase = 10

// SignatureBase is the base in which users enter signatures.
const SignatureBase = 10

// IntToBytes serializes a non-negative integer as a minimal big-endian byte
// string. Zero is encoded as the empty string.
func IntToBytes(n *big.Int) []byte {
	return n.Bytes()
}

// BytesToInt interprets b as an unsigned big-endian integer. It is the
// inverse of IntToBytes for inputs without leading zero bytes.
func BytesToInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// ParseInteger parses a non-negative integer written in the given base.
// Signs, prefixes and separators are rejected.
func ParseInteger(s string, base int) (*big.Int, bool) {
	if s == "" || s[0] == '-' || s[0] == '+' || s[0] == '_' {
		return nil, false
	}
	if base == 0 {
		return nil, false
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok || n.Sign() < 0 {
		return nil, false
	}
	return n, true
}

// Verify reports whether sig is a textbook RSA signature of message under
// the public key (e, n).
func Verify(message []byte, sig, e, n *big.Int) bool {
	if sig == nil || e == nil || n == nil {
		return false
	}
	if n.Sign() <= 0 || e.Sign() < 0 || sig.Sign() < 0 {
		return false
	}

	m := new(big.Int).Exp(sig, e, n)
	return bytes.Equal(IntToBytes(m), message)
}

// VerifyStrings parses the signature and key components and runs Verify.
// Any parse failure yields false.
func VerifyStrings(message, signature, exponent, modulus string) bool {
	sig, ok := ParseInteger(signature, SignatureBase)
	if !ok {
		return false
	}
	e, ok := ParseInteger(exponent, KeyBase)
	if !ok {
		return false
	}
	n, ok := ParseInteger(modulus, KeyBase)
	if !ok {
		return false
	}
	return Verify([]byte(message), sig, e, n)
}
