// Package catalog loads the static listings source and serves immutable
// snapshots of it to the rest of the bot.
package catalog

import (
	"crypto/md5"
	"encoding/hex"
)

// Listing is one property entry. Immutable after load.
type Listing struct {
	Title    string
	Location string
	Bedrooms string
	Price    int
	ImageURL string
	URL      string
}

// Identity returns a deterministic 32-hex-char fingerprint of a listing
// URL. It is used as a compact opaque token in callback payloads instead
// of the URL itself; it is an identifier, not a security boundary.
func Identity(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}
