package simulator

import (
	"math"
	"testing"

	"daybt/internal/domain"
)

func allTrueBars(n int) []bool {
	s := make([]bool, n)
	for i := range s {
		s[i] = true
	}
	return s
}

func TestFlatMarketNoStops(t *testing.T) {
	n := 10
	bars := make([]domain.Bar, n)
	for i := range bars {
		bars[i] = domain.Bar{Open: 100, High: 100, Low: 100, Close: 100, Volume: 1000}
	}
	sig := domain.Signals{
		Entries:   allTrueBars(n),
		Exits:     make([]bool, n),
		Direction: domain.DirectionLongOnly,
	}
	res := Simulate(bars, sig, domain.DefaultBacktestConfig())

	if len(res.Trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(res.Trades))
	}
	tr := res.Trades[0]
	if tr.EntryIdx != 1 || tr.ExitIdx != 9 {
		t.Errorf("expected entry_idx=1 exit_idx=9, got %d/%d", tr.EntryIdx, tr.ExitIdx)
	}
	if tr.EntryPrice != 100 || tr.ExitPrice != 100 {
		t.Errorf("expected entry/exit price 100, got %v/%v", tr.EntryPrice, tr.ExitPrice)
	}
	if tr.PnL != 0 {
		t.Errorf("expected pnl=0, got %v", tr.PnL)
	}
	if tr.ExitReason != domain.ExitEOD {
		t.Errorf("expected EOD exit, got %s", tr.ExitReason)
	}
	for i, v := range res.Equity {
		if v != 10000 {
			t.Errorf("expected constant equity 10000 at %d, got %v", i, v)
		}
	}
}

func TestLongSLHit(t *testing.T) {
	closes := []float64{100, 100, 102, 104, 106, 108, 110, 110, 110, 110}
	bars := make([]domain.Bar, len(closes))
	for i, c := range closes {
		bars[i] = domain.Bar{Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 1000}
	}
	// Bar 1 open = 100 (entry fill); bar 5 low drops to 97.
	bars[1].Open = 100
	bars[5].Low = 97

	sig := domain.Signals{
		Entries:   allTrueBars(len(bars)),
		Exits:     make([]bool, len(bars)),
		Direction: domain.DirectionLongOnly,
		SLStop:    ptrf(0.02),
	}
	res := Simulate(bars, sig, domain.DefaultBacktestConfig())
	if len(res.Trades) == 0 {
		t.Fatal("expected at least one trade")
	}
	tr := res.Trades[0]
	if tr.ExitReason != domain.ExitSL {
		t.Errorf("expected SL exit, got %s", tr.ExitReason)
	}
	if tr.ExitPrice != 98 {
		t.Errorf("expected exit_price=98, got %v", tr.ExitPrice)
	}
}

func TestShortTPHit(t *testing.T) {
	bars := []domain.Bar{
		{Open: 100, High: 101, Low: 99, Close: 100},
		{Open: 100, High: 101, Low: 99, Close: 100},
		{Open: 100, High: 101, Low: 99, Close: 100},
		{Open: 96, High: 96, Low: 94, Close: 95},
		{Open: 95, High: 96, Low: 94, Close: 95},
	}
	sig := domain.Signals{
		Entries:   allTrueBars(len(bars)),
		Exits:     make([]bool, len(bars)),
		Direction: domain.DirectionShortOnly,
		TPStop:    ptrf(0.05),
	}
	res := Simulate(bars, sig, domain.DefaultBacktestConfig())
	if len(res.Trades) == 0 {
		t.Fatal("expected at least one trade")
	}
	tr := res.Trades[0]
	if tr.ExitReason != domain.ExitTP {
		t.Errorf("expected TP exit, got %s", tr.ExitReason)
	}
	if tr.ExitPrice != 95 {
		t.Errorf("expected exit_price=95, got %v", tr.ExitPrice)
	}
}

func TestTrailingStopLong(t *testing.T) {
	closes := []float64{100, 102, 105, 103, 99}
	bars := make([]domain.Bar, len(closes))
	for i, c := range closes {
		bars[i] = domain.Bar{Open: c, High: c + 0.5, Low: c - 0.5, Close: c}
	}
	bars[4].Low = 99
	sig := domain.Signals{
		Entries:   allTrueBars(len(bars)),
		Exits:     make([]bool, len(bars)),
		Direction: domain.DirectionLongOnly,
		SLStop:    ptrf(0.03),
		SLTrail:   true,
	}
	res := Simulate(bars, sig, domain.DefaultBacktestConfig())
	if len(res.Trades) == 0 {
		t.Fatal("expected at least one trade")
	}
	tr := res.Trades[0]
	if tr.ExitReason != domain.ExitTrailing {
		t.Errorf("expected Trailing exit, got %s", tr.ExitReason)
	}
}

func TestEntryForbiddenOnLastBar(t *testing.T) {
	bars := []domain.Bar{
		{Open: 100, High: 100, Low: 100, Close: 100},
		{Open: 100, High: 100, Low: 100, Close: 100},
	}
	sig := domain.Signals{
		Entries:   []bool{false, true},
		Exits:     []bool{false, false},
		Direction: domain.DirectionLongOnly,
	}
	res := Simulate(bars, sig, domain.DefaultBacktestConfig())
	if len(res.Trades) != 0 {
		t.Errorf("expected no trades when only signal is on the last bar, got %d", len(res.Trades))
	}
}

func TestEquityZeroValueHasNoNaN(t *testing.T) {
	bars := []domain.Bar{{Open: 1, High: 1, Low: 1, Close: 1}}
	sig := domain.Signals{Entries: []bool{false}, Exits: []bool{false}, Direction: domain.DirectionLongOnly}
	res := Simulate(bars, sig, domain.DefaultBacktestConfig())
	if math.IsNaN(res.Equity[0]) {
		t.Error("equity must never be NaN")
	}
}

func ptrf(v float64) *float64 { return &v }
