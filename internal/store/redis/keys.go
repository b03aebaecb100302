package redis

import (
	"crypto/sha256"
	"encoding/hex"
)

const keyPrefix = "linksaver"

// metadataKey derives a fixed-length cache key from a URL. URLs can be
// arbitrarily long, so the key carries a hash instead of the raw value.
func metadataKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return keyPrefix + ":meta:" + hex.EncodeToString(sum[:16])
}

func revokedKey(tokenID string) string {
	return keyPrefix + ":revoked:" + tokenID
}
