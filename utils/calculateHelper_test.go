package utils_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/torquehub/garage_backend/utils"
)

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestRound2(t *testing.T) {
	cases := []struct{ in, want string }{
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"2.005", "2.01"},
		{"-2.345", "-2.35"},
		{"10", "10.00"},
	}
	for _, tc := range cases {
		got := utils.Round2(mustDec(t, tc.in))
		if !got.Equal(mustDec(t, tc.want)) {
			t.Errorf("Round2(%s): got %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestCalculatePercentAmount(t *testing.T) {
	cases := []struct{ base, percent, want string }{
		{"100", "10", "10.00"},
		{"90", "10", "9.00"},
		{"33.33", "7.5", "2.50"},
		{"100", "0", "0.00"},
		{"0", "50", "0.00"},
	}
	for _, tc := range cases {
		got := utils.CalculatePercentAmount(mustDec(t, tc.base), mustDec(t, tc.percent))
		if !got.Equal(mustDec(t, tc.want)) {
			t.Errorf("CalculatePercentAmount(%s, %s): got %s, want %s", tc.base, tc.percent, got, tc.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct{ in, want string }{
		{"12.34", "12.34"},
		{"  7.5  ", "7.5"},
		{"-3", "-3"},
		{"", "0"},
		{"   ", "0"},
		{"abc", "0"},
		{"12.3.4", "0"},
	}
	for _, tc := range cases {
		got := utils.ParseAmount(tc.in)
		if !got.Equal(mustDec(t, tc.want)) {
			t.Errorf("ParseAmount(%q): got %s, want %s", tc.in, got, tc.want)
		}
	}
}
