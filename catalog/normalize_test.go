package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBedrooms(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"blank", "", "Unknown"},
		{"whitespace only", "   ", "Unknown"},
		{"zero", "0", "Bedsitter"},
		{"zero float", "0.0", "Bedsitter"},
		{"integer", "2", "2"},
		{"float coerced", "2.0", "2"},
		{"float truncated", "3.7", "3"},
		{"padded", " 4 ", "4"},
		{"synonym lower", "bedsit", "Bedsitter"},
		{"synonym mixed case", "BedSitter", "Bedsitter"},
		{"synonym spaced", "bed sitter", "Bedsitter"},
		{"pass-through", "studio", "studio"},
		{"pass-through trimmed", " loft ", "loft"},
		{"nan passes through", "nan", "nan"},
		{"inf passes through", "inf", "inf"},
		{"negative inf passes through", "-Inf", "-Inf"},
		{"overflow passes through", "1e300", "1e300"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeBedrooms(tt.in))
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"integer", "1500", 1500},
		{"decimal truncated", "1500.50", 1500},
		{"padded", " 2000 ", 2000},
		{"blank", "", 0},
		{"non-numeric", "N/A", 0},
		{"garbage", "KSh 12,000", 0},
		{"nan", "nan", 0},
		{"inf", "inf", 0},
		{"negative inf", "-inf", 0},
		{"overflow", "1e300", 0},
		{"negative overflow", "-1e300", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePrice(tt.in))
		})
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"nairobi", "Nairobi"},
		{"nairobi west", "Nairobi West"},
		{"NAIROBI", "Nairobi"},
		{"  kiambu  road  ", "Kiambu Road"},
		{"", ""},
		// Words split on whitespace only; letters after an apostrophe
		// or hyphen stay lowercase, and interior runs collapse.
		{"o'brien estate", "O'brien Estate"},
		{"kahawa-sukari", "Kahawa-sukari"},
		{"thika\tsuper  highway", "Thika Super Highway"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TitleCase(tt.in), "input %q", tt.in)
	}
}
