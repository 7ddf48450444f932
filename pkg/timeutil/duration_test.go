package timeutil

import (
	"testing"
	"time"
)

func TestParseWindowEmpty(t *testing.T) {
	w, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !w.IsZero() {
		t.Fatalf("expected zero window, got %+v", w)
	}
}

func TestParseWindowComposite(t *testing.T) {
	w, err := ParseWindow("1y2m3w4d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Window{Years: 1, Months: 2, Days: 25}
	if w != want {
		t.Fatalf("expected %+v, got %+v", want, w)
	}
	if w.String() != "1y2m3w4d" {
		t.Fatalf("unexpected label: %s", w.String())
	}
}

func TestParseWindowUnits(t *testing.T) {
	tests := map[string]Window{
		"12w":      {Days: 84},
		"6 months": {Months: 6},
		"2Y":       {Years: 2},
		"10d":      {Days: 10},
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := ParseWindow(in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != want {
				t.Fatalf("expected %+v, got %+v", want, got)
			}
		})
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, in := range []string{"noop", "3h", "0w", "5"} {
		if _, err := ParseWindow(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestWindowSince(t *testing.T) {
	now := time.Date(2021, time.March, 31, 12, 0, 0, 0, time.UTC)
	got := Window{Months: 1}.Since(now)
	// AddDate normalizes February 31st.
	want := time.Date(2021, time.March, 3, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
