package catalog

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// BedroomsUnknown is the sentinel for a blank or unparseable bedrooms field.
const BedroomsUnknown = "Unknown"

// BedroomsBedsitter is the canonical label for zero-bedroom units.
const BedroomsBedsitter = "Bedsitter"

var bedsitterSynonyms = map[string]struct{}{
	"bedsitter":  {},
	"bedsit":     {},
	"bed sitter": {},
}

// NormalizeBedrooms canonicalizes the free-form bedrooms column.
// Numeric text (including "2.0") becomes the integer's decimal form,
// zero becomes "Bedsitter", known synonyms collapse to "Bedsitter",
// blank becomes "Unknown", and anything else passes through trimmed.
func NormalizeBedrooms(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return BedroomsUnknown
	}
	if n, ok := wholeInt(s); ok {
		if n == 0 {
			return BedroomsBedsitter
		}
		return strconv.Itoa(n)
	}
	if _, ok := bedsitterSynonyms[strings.ToLower(s)]; ok {
		return BedroomsBedsitter
	}
	return s
}

// ParsePrice coerces price text to an integer, truncating decimals.
// Any parse failure yields 0; a malformed price never aborts a load.
func ParsePrice(raw string) int {
	n, ok := wholeInt(strings.TrimSpace(raw))
	if !ok {
		return 0
	}
	return n
}

// wholeInt parses s as a float and truncates it to an int. NaN,
// infinities and values outside the int range are rejected: converting
// those is undefined in Go and would surface as MinInt garbage.
func wholeInt(s string) (int, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int(f), true
}

// TitleCase trims the input and capitalizes the first letter of each
// whitespace-separated word, lowercasing the rest ("NAIROBI west" ->
// "Nairobi West"). Locations are normalized this way at load time so
// button payload matching is exact.
func TitleCase(raw string) string {
	fields := strings.Fields(raw)
	for i, word := range fields {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		fields[i] = string(runes)
	}
	return strings.Join(fields, " ")
}
