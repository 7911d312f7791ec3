// Package identity derives the internal user ID used as the language store key
// and sent to the backend as userId.
package identity

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
)

// Length is the number of hex characters kept from the digest.
const Length = 24

// Map returns the first 24 lowercase hex characters of the SHA-1 digest of a
// channel-native identifier (a phone number or a stringified chat ID).
// Truncation makes collisions possible; they are not mitigated.
func Map(nativeID string) string {
	sum := sha1.Sum([]byte(nativeID))
	return hex.EncodeToString(sum[:])[:Length]
}

// MapInt maps a numeric chat-platform user ID.
func MapInt(nativeID int64) string {
	return Map(strconv.FormatInt(nativeID, 10))
}
