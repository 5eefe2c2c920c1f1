package common

import (
	"math/rand"
	"time"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandString returns n characters drawn from an alphanumeric alphabet.
//
// The generator is reseeded from the wall clock on every call, so two calls
// within the same nanosecond tick yield the same string and the output is
// predictable to anyone who can guess the time. This matches the behaviour
// the login protocol has always had and is a known weakness; it is not
// suitable for secrets.
func RandString(n int) string {
	if n <= 0 {
		return ""
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(b)
}

// IsNumString reports whether s is a non-empty string of ASCII decimal digits.
func IsNumString(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
