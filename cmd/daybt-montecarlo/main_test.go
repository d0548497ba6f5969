package main

import "testing"

func TestParsePnLsSplitsAndTrims(t *testing.T) {
	got, err := parsePnLs("120, -45,80 , -200")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{120, -45, 80, -200}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestParsePnLsRejectsInvalidValue(t *testing.T) {
	if _, err := parsePnLs("100,abc,50"); err == nil {
		t.Fatal("expected error for non-numeric pnl")
	}
}
