package timezone

import "testing"

func TestLocationFallsBackToDefault(t *testing.T) {
	if got := Location("Not/AZone").String(); got != Default() {
		t.Fatalf("expected fallback to %s, got %s", Default(), got)
	}
	if got := Location("UTC").String(); got != "UTC" {
		t.Fatalf("unexpected location: %s", got)
	}
}

func TestParseDateTime(t *testing.T) {
	ts, err := ParseDateTime("2026-03-02", "10:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.Hour() != 10 || ts.Minute() != 30 || ts.Location().String() != Default() {
		t.Fatalf("unexpected time: %v", ts)
	}

	if _, err := ParseDateTime("2026-13-02", "10:30"); err == nil {
		t.Fatalf("expected error for invalid month")
	}
}

func TestSetDefaultIgnoresInvalid(t *testing.T) {
	before := Default()
	SetDefault("Mars/Olympus")
	if Default() != before {
		t.Fatalf("invalid zone should be ignored")
	}
}
