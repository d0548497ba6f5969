package strategy

import (
	"testing"

	"daybt/internal/domain"
)

func TestResampleIfNeededAggregates5m(t *testing.T) {
	bars := make([]domain.Bar, 10)
	for i := range bars {
		bars[i] = domain.Bar{
			Timestamp: int64(i * 60),
			Open:      float64(i),
			High:      float64(i) + 1,
			Low:       float64(i) - 1,
			Close:     float64(i),
			Volume:    1,
		}
	}
	out := resampleIfNeeded(bars, domain.Timeframe5m)
	if len(out) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(out))
	}
	if out[0].Open != 0 || out[0].Close != 4 {
		t.Errorf("unexpected first bucket: %+v", out[0])
	}
	if out[0].Volume != 5 {
		t.Errorf("expected summed volume 5, got %d", out[0].Volume)
	}
}

func TestResampleIfNeeded1mIsNoOp(t *testing.T) {
	bars := []domain.Bar{{Timestamp: 0, Close: 1}}
	out := resampleIfNeeded(bars, domain.Timeframe1m)
	if len(out) != 1 {
		t.Fatalf("expected no-op passthrough, got %d bars", len(out))
	}
}

func TestReindexForwardFillHoldsValueUntilNextBucket(t *testing.T) {
	resampled := []domain.Bar{{Timestamp: 0}, {Timestamp: 300}}
	signal := []bool{true, false}
	original := make([]domain.Bar, 10)
	for i := range original {
		original[i] = domain.Bar{Timestamp: int64(i * 60)}
	}
	out := reindexForwardFill(resampled, signal, original)
	for i := 0; i < 5; i++ {
		if !out[i] {
			t.Errorf("expected true at %d before second bucket", i)
		}
	}
	for i := 5; i < 10; i++ {
		if out[i] {
			t.Errorf("expected false at %d after second bucket", i)
		}
	}
}
