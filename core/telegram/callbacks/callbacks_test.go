package callbacks

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		unique  string
		payload string
	}{
		{"location with payload", "\\flocation|Kiambu Town", "location", "Kiambu Town"},
		{"save with digest", "\\fsavefav|9e107d9d372bb6826bd81d3542a419d6", "savefav", "9e107d9d372bb6826bd81d3542a419d6"},
		{"back without payload", "\\fback", "back", ""},
		{"no marker prefix", "removefav|abc", "removefav", "abc"},
		{"empty data", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unique, payload := Parse(&tele.Callback{Data: tt.data})
			if unique != tt.unique || payload != tt.payload {
				t.Fatalf("Parse(%q) = (%q, %q), want (%q, %q)",
					tt.data, unique, payload, tt.unique, tt.payload)
			}
		})
	}
}

func TestParseNilCallback(t *testing.T) {
	unique, payload := Parse(nil)
	if unique != "" || payload != "" {
		t.Fatalf("Parse(nil) = (%q, %q), want empty", unique, payload)
	}
}
