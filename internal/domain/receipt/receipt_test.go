package receipt

import (
	"testing"
	"time"
)

func TestPrice(t *testing.T) {
	cases := []struct {
		name     string
		rate     float64
		reserved time.Duration
		want     float64
	}{
		{"one hour", 250, time.Hour, 250},
		{"ninety minutes", 100, 90 * time.Minute, 150},
		{"rounded to cents", 10, 20 * time.Minute, 3.33},
		{"no rate", 0, time.Hour, 0},
		{"empty window", 100, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Price(tc.rate, tc.reserved); got != tc.want {
				t.Fatalf("Price(%v, %s) = %v, want %v", tc.rate, tc.reserved, got, tc.want)
			}
		})
	}
}
