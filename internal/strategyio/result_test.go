package strategyio

import (
	"testing"

	"daybt/internal/domain"
)

func TestEncodeDecodeResultRoundTrips(t *testing.T) {
	winRate := 50.0
	doc := domain.ResultDocument{
		AggregateMetrics: domain.AggregateMetrics{TotalDays: 2, TotalTrades: 3, WinRatePct: winRate},
		DayResults: []domain.DayStats{
			{Ticker: "AAPL", Date: "2026-01-05", TotalTrades: 2},
		},
		Trades: []domain.Trade{
			{Ticker: "AAPL", Date: "2026-01-05", Direction: domain.TradeLong, ExitReason: domain.ExitTP},
		},
		GlobalEquity:   []domain.EquityPoint{{Time: 1, Value: 10000}},
		GlobalDrawdown: []domain.EquityPoint{{Time: 1, Value: 0}},
	}

	out, err := EncodeResult(doc)
	if err != nil {
		t.Fatalf("EncodeResult: %v", err)
	}

	got, err := DecodeResult(out)
	if err != nil {
		t.Fatalf("DecodeResult: %v", err)
	}

	if got.AggregateMetrics.TotalDays != 2 || got.AggregateMetrics.TotalTrades != 3 {
		t.Errorf("unexpected aggregate metrics: %+v", got.AggregateMetrics)
	}
	if len(got.DayResults) != 1 || got.DayResults[0].Ticker != "AAPL" {
		t.Errorf("unexpected day results: %+v", got.DayResults)
	}
	if len(got.Trades) != 1 || got.Trades[0].ExitReason != domain.ExitTP {
		t.Errorf("unexpected trades: %+v", got.Trades)
	}
}
