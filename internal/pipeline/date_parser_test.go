package pipeline

import (
	"testing"
	"time"
)

func TestParseDateRobust(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2026-03-15", time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)},
		{"03-Sep-25", time.Date(2025, 9, 3, 23, 59, 59, 0, time.UTC)},
		{"15 October 2026", time.Date(2026, 10, 15, 23, 59, 59, 0, time.UTC)},
		{"October 15, 2026", time.Date(2026, 10, 15, 23, 59, 59, 0, time.UTC)},
		{"Jan 7, 2027", time.Date(2027, 1, 7, 23, 59, 59, 0, time.UTC)},
		{"15.03.2026", time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)},
		{"Deadline: 2026-04-01", time.Date(2026, 4, 1, 23, 59, 59, 0, time.UTC)},
		{"Closing date: 20 Apr 2026", time.Date(2026, 4, 20, 23, 59, 59, 0, time.UTC)},
		{"Proposals must arrive by 5 May 2026 at the latest", time.Date(2026, 5, 5, 23, 59, 59, 0, time.UTC)},
		// UK day-first slash date: month field exceeds 12 so day/month swap.
		{"25/03/2026", time.Date(2026, 3, 25, 23, 59, 59, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDateRobust(tt.input)
			if err != nil {
				t.Fatalf("parseDateRobust(%q): %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseDateRobust(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDateRobustRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "soonish", "TBD", "ongoing"} {
		if _, err := parseDateRobust(input); err == nil {
			t.Errorf("parseDateRobust(%q) should fail", input)
		}
	}
}

func TestParseDateTimestampKeepsTime(t *testing.T) {
	got, err := parseDateRobust("2026-03-15T09:30:00Z")
	if err != nil {
		t.Fatal(err)
	}
	if got.Hour() != 9 || got.Minute() != 30 {
		t.Errorf("explicit timestamps must keep their time of day, got %v", got)
	}
}

func TestParseAmountRobust(t *testing.T) {
	tests := []struct {
		input        string
		wantMin      float64
		wantMax      float64
		wantCurrency string
	}{
		{"USD 50,000", 50000, 50000, "USD"},
		{"EUR 25,000", 25000, 25000, "EUR"},
		{"€10,000 - €20,000", 10000, 20000, "EUR"},
		{"Budget: $30,000 to $45,000", 30000, 45000, "USD"},
		{"up to GBP 100,000", 0, 100000, "GBP"},
		{"at least CHF 8,000", 8000, 0, "CHF"},
		{"1,250,000.50 dollars", 1250000.50, 1250000.50, "USD"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			min, max, currency := parseAmountRobust(tt.input, "USD")
			if min != tt.wantMin || max != tt.wantMax {
				t.Errorf("amounts = [%.2f, %.2f], want [%.2f, %.2f]", min, max, tt.wantMin, tt.wantMax)
			}
			if currency != tt.wantCurrency {
				t.Errorf("currency = %q, want %q", currency, tt.wantCurrency)
			}
		})
	}
}

func TestParseAmountRobustNoAmount(t *testing.T) {
	min, max, currency := parseAmountRobust("a generous amount", "USD")
	if min != 0 || max != 0 || currency != "" {
		t.Errorf("got [%.2f, %.2f, %q], want zero values", min, max, currency)
	}
}
