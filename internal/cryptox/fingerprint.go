package cryptox

import (
	"encoding/hex"

	"github.com/dmitrijs2005/postit/internal/models"
	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a short hex fingerprint of a public key.
//
// It hashes "exponent:modulus" with BLAKE2b-256 and keeps the first 10 bytes.
func Fingerprint(key models.PublicKey) string {
	sum := blake2b.Sum256([]byte(key.Exponent + ":" + key.Modulus))
	return hex.EncodeToString(sum[:10])
}
