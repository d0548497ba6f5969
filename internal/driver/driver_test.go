package driver

import (
	"context"
	"errors"
	"testing"

	"daybt/internal/domain"
)

func flatGroup(ticker, date string, n int, price float64) domain.DayGroup {
	bars := make([]domain.Bar, n)
	for i := range bars {
		bars[i] = domain.Bar{
			Timestamp: int64(1_700_000_000 + i*60),
			Open:      price,
			High:      price,
			Low:       price,
			Close:     price,
			Volume:    1000,
		}
	}
	return domain.DayGroup{Ticker: ticker, Date: date, Bars: bars}
}

func alwaysEnterStrategy() domain.StrategyDefinition {
	one := 0.0
	return domain.StrategyDefinition{
		Bias: domain.BiasLong,
		EntryLogic: domain.ConditionBlock{
			Timeframe: domain.Timeframe1m,
			RootCondition: &domain.Condition{
				Kind:       domain.ConditionIndicatorComparison,
				Source:     domain.IndicatorRef{Name: "Close"},
				Target:     domain.ComparisonTarget{Literal: &one},
				Comparator: domain.GreaterThan,
			},
		},
		ExitLogic: domain.ConditionBlock{Timeframe: domain.Timeframe1m},
	}
}

func TestRunEmptyGroupsErrors(t *testing.T) {
	_, err := Run(context.Background(), nil, alwaysEnterStrategy(), Options{Config: domain.DefaultBacktestConfig()})
	if !errors.Is(err, domain.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}

func TestRunPreservesGroupOrder(t *testing.T) {
	groups := []domain.DayGroup{
		flatGroup("AAPL", "2026-01-05", 10, 100),
		flatGroup("MSFT", "2026-01-05", 10, 200),
		flatGroup("AAPL", "2026-01-06", 10, 150),
	}
	doc, err := Run(context.Background(), groups, alwaysEnterStrategy(), Options{
		Config:     domain.DefaultBacktestConfig(),
		MaxWorkers: 4,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.DayResults) != 3 {
		t.Fatalf("expected 3 day results, got %d", len(doc.DayResults))
	}
	wantOrder := []string{"AAPL", "MSFT", "AAPL"}
	for i, want := range wantOrder {
		if doc.DayResults[i].Ticker != want {
			t.Errorf("index %d: expected ticker %s, got %s", i, want, doc.DayResults[i].Ticker)
		}
	}
	if len(doc.Trades) != 3 {
		t.Fatalf("expected 3 trades total, got %d", len(doc.Trades))
	}
	for _, tr := range doc.Trades {
		if tr.Ticker == "" || tr.Date == "" {
			t.Errorf("expected enriched ticker/date, got %+v", tr)
		}
	}
}

func TestRunSkipsShortDays(t *testing.T) {
	groups := []domain.DayGroup{flatGroup("AAPL", "2026-01-05", 3, 100)}
	doc, err := Run(context.Background(), groups, alwaysEnterStrategy(), Options{Config: domain.DefaultBacktestConfig()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.DayResults) != 0 {
		t.Errorf("expected day with <5 bars to be skipped, got %d results", len(doc.DayResults))
	}
}

func TestRunSkipsNoEntryDays(t *testing.T) {
	group := flatGroup("AAPL", "2026-01-05", 10, 100)
	def := domain.StrategyDefinition{
		Bias: domain.BiasLong,
		EntryLogic: domain.ConditionBlock{
			Timeframe: domain.Timeframe1m,
			RootCondition: &domain.Condition{
				Kind:       domain.ConditionIndicatorComparison,
				Source:     domain.IndicatorRef{Name: "Close"},
				Target:     domain.ComparisonTarget{Literal: ptrf(100000)},
				Comparator: domain.GreaterThan,
			},
		},
		ExitLogic: domain.ConditionBlock{Timeframe: domain.Timeframe1m},
	}
	doc, err := Run(context.Background(), []domain.DayGroup{group}, def, Options{Config: domain.DefaultBacktestConfig()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.DayResults) != 0 {
		t.Errorf("expected no-entry day to be skipped, got %d results", len(doc.DayResults))
	}
}

func ptrf(v float64) *float64 { return &v }
