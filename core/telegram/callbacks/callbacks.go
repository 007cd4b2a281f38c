// Package callbacks parses Telebot inline-button callback data.
//
// Buttons carry a delimiter-joined action string: `\f<unique>|<payload>`,
// e.g. "location|Nairobi" or "savefav|<32-hex digest>". The delimiter must
// not appear inside payload values; location names are title-cased words
// and digests are hex, so neither can contain '|'.
package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Parse splits Telebot's \f<unique>|<payload> encoding into its parts.
// The payload may be empty ("back" carries none).
func Parse(cb *tele.Callback) (unique, payload string) {
	if cb == nil {
		return "", ""
	}
	raw := strings.TrimPrefix(cb.Data, "\\f")
	unique, payload, _ = strings.Cut(raw, "|")
	return strings.TrimSpace(unique), payload
}

// Key returns cb.Unique if present; otherwise parses it from Data.
func Key(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	if cb.Unique != "" {
		return cb.Unique
	}
	k, _ := Parse(cb)
	return k
}

// Payload returns the argument after '|', parsed from Data.
// cb.Unique may be empty in generic OnCallback, so Data is authoritative.
func Payload(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	_, payload := Parse(cb)
	return payload
}
