package application

import (
	"testing"
	"time"
)

func TestRoundHours(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		hours float64
		want  float64
	}{
		{name: "whole hours untouched", hours: 8, want: 8},
		{name: "two decimals untouched", hours: 7.25, want: 7.25},
		{name: "extra precision trimmed", hours: 8.123, want: 8.12},
		{name: "half rounds to even down", hours: 0.125, want: 0.12},
		{name: "half rounds to even up", hours: 0.375, want: 0.38},
		{name: "negative durations keep sign", hours: -1.125, want: -1.12},
		{name: "zero", hours: 0, want: 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := RoundHours(tc.hours); got != tc.want {
				t.Fatalf("RoundHours(%v) = %v, want %v", tc.hours, got, tc.want)
			}
		})
	}
}

func TestDateOf(t *testing.T) {
	t.Parallel()

	instant := time.Date(2025, time.June, 15, 23, 45, 12, 0, time.Local)
	date := DateOf(instant)

	want := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.Local)
	if !date.Equal(want) {
		t.Fatalf("DateOf(%v) = %v, want %v", instant, date, want)
	}

	// A session that started before midnight stays attributed to its
	// clock-in day even when inspected the next morning.
	if DateOf(instant.Add(30 * time.Minute)).Equal(date) {
		t.Fatalf("expected the next day after crossing midnight")
	}
}
