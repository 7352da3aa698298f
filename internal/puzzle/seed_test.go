package puzzle

import (
	"testing"
	"time"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func TestDailySeed_Deterministic(t *testing.T) {
	d := date(t, "2024-03-04")
	if a, b := DailySeed(d, "s1"), DailySeed(d, "s1"); a != b {
		t.Errorf("same inputs produced different seeds: %d != %d", a, b)
	}
}

func TestDailySeed_SecretChangesSeed(t *testing.T) {
	d := date(t, "2024-03-04")
	if DailySeed(d, "s1") == DailySeed(d, "s2") {
		t.Error("different secrets produced the same seed")
	}
}

func TestDailySeed_DateChangesSeed(t *testing.T) {
	if DailySeed(date(t, "2024-03-04"), "s1") == DailySeed(date(t, "2024-03-05"), "s1") {
		t.Error("different dates produced the same seed")
	}
}

func TestDailySeed_FitsInUint32(t *testing.T) {
	secrets := []string{"s1", "s2", "default-secret", ""}
	for _, secret := range secrets {
		for day := 1; day <= 28; day++ {
			d := time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC)
			seed := DailySeed(d, secret)
			if seed < 0 || seed > 0xFFFFFFFF {
				t.Fatalf("seed %d for %s/%q outside 32-bit range", seed, d.Format(DateFormat), secret)
			}
		}
	}
}

func TestDailySeed_IgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, time.March, 4, 8, 30, 0, 0, time.UTC)
	evening := time.Date(2024, time.March, 4, 23, 59, 59, 0, time.UTC)
	if DailySeed(morning, "s1") != DailySeed(evening, "s1") {
		t.Error("seed varied within a single calendar date")
	}
}
