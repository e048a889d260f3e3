package services

import (
	"math"
	"testing"
	"time"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		raw    string
		want   uint64
		wantOK bool
	}{
		{"1,000,000+", 1000000, true},
		{"10+", 10, true},
		{"2,345", 2345, true},
		{"0", 0, true},
		{" 159 ", 159, true},
		{"Free", 0, false},
		{"", 0, false},
		{"+", 0, false},
		{"3.0M", 0, false},
		{"Varies with device", 0, false},
		{"12abc", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseCount(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseCount(%q) = (%d, %t); want (%d, %t)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"4.1", 4.1},
		{"5", 5},
		{"19", 19},
	}
	for _, tt := range tests {
		if got := ParseRating(tt.raw); got != tt.want {
			t.Errorf("ParseRating(%q) = %v; want %v", tt.raw, got, tt.want)
		}
	}

	for _, raw := range []string{"", "NaN", "nan", "n/a", "abc"} {
		if got := ParseRating(raw); !math.IsNaN(got) {
			t.Errorf("ParseRating(%q) = %v; want NaN", raw, got)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("January 7, 2018")
	if !ok {
		t.Fatal("ParseDate should accept a long-form date")
	}
	if got.Year() != 2018 || got.Month() != time.January || got.Day() != 7 {
		t.Errorf("ParseDate = %v; want 2018-01-07", got)
	}

	for _, raw := range []string{"", "nan", "Varies with device"} {
		if _, ok := ParseDate(raw); ok {
			t.Errorf("ParseDate(%q) should fail", raw)
		}
	}
}

func TestNormaliseLabel(t *testing.T) {
	if got := NormaliseLabel("nan"); got != "" {
		t.Errorf("NormaliseLabel(nan) = %q; want empty", got)
	}
	if got := NormaliseLabel("Positive"); got != "Positive" {
		t.Errorf("NormaliseLabel(Positive) = %q", got)
	}
}
