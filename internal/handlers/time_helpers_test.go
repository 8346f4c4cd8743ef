package handlers

import (
	"testing"
	"time"

	"github.com/matchsage/booking-api/internal/httperr"
	"github.com/matchsage/booking-api/internal/timezone"
)

func TestParseSlot(t *testing.T) {
	loc := timezone.Location("")

	cases := []struct {
		name  string
		date  string
		clock string
		want  time.Time
		fails bool
	}{
		{name: "date and clock", date: "2030-01-10", clock: "10:30", want: time.Date(2030, 1, 10, 10, 30, 0, 0, loc)},
		{name: "clock with seconds", date: "2030-01-10", clock: "10:30:00", want: time.Date(2030, 1, 10, 10, 30, 0, 0, loc)},
		{name: "rfc3339 date", date: "2030-01-10T03:00:00Z", want: time.Date(2030, 1, 10, 3, 0, 0, 0, time.UTC)},
		{name: "bad clock", date: "2030-01-10", clock: "25:00", fails: true},
		{name: "bare date", date: "2030-01-10", fails: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseSlot(tc.date, tc.clock)
			if tc.fails {
				if err == nil {
					t.Fatalf("expected an error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDurationFromMinutes(t *testing.T) {
	cases := []struct {
		min   int
		want  time.Duration
		fails bool
	}{
		{min: 0, want: 0},
		{min: 90, want: 90 * time.Minute},
		{min: maxSlotMinutes, want: 24 * time.Hour},
		{min: -30, fails: true},
		{min: maxSlotMinutes + 1, fails: true},
		{min: 1 << 38, fails: true},
	}

	for _, tc := range cases {
		got, err := durationFromMinutes(tc.min)
		if tc.fails {
			if !httperr.IsBusiness(err, "invalid_time_window") {
				t.Fatalf("durationFromMinutes(%d): expected invalid_time_window, got %s %v", tc.min, got, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("durationFromMinutes(%d) = %s, %v; want %s", tc.min, got, err, tc.want)
		}
	}
}
