package session

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPasswordSuffix hashes the last three characters of a password, scoped
// to the credential-check domain: hex(sha256(domain + ":" + suffix)), one
// round. Shorter passwords hash whatever characters exist. The full password
// is never submitted to the check.
func HashPasswordSuffix(domain, password string) string {
	runes := []rune(password)
	if len(runes) > 3 {
		runes = runes[len(runes)-3:]
	}
	sum := sha256.Sum256([]byte(domain + ":" + string(runes)))
	return hex.EncodeToString(sum[:])
}
