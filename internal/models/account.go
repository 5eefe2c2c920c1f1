// Package models defines the data persisted by postit and the process-local
// session value.
package models

import "time"

// PublicKey is an RSA public key as stored: decimal exponent and modulus.
type PublicKey struct {
	Exponent string
	Modulus  string
}

// Account is a registered identity. Name and Key never change after creation.
type Account struct {
	ID        int64
	Name      string
	Key       PublicKey
	CreatedAt time.Time
}

// Age returns how long the account has existed at now, truncated to seconds
// since creation times are stored with second precision.
func (a Account) Age(now time.Time) time.Duration {
	return time.Duration(now.Unix()-a.CreatedAt.Unix()) * time.Second
}
