// Package driver orchestrates the full pipeline for a backtest run: for
// each (ticker, trading_date) group it runs the Strategy Translator, the
// Portfolio Simulator, and the Per-Day Stats Extractor, then enriches
// trades and appends to the run's accumulators (spec.md §4.8).
package driver

import (
	"context"
	"sort"
	"time"

	"daybt/internal/domain"
	"daybt/internal/simulator"
	"daybt/internal/stats"
	"daybt/internal/strategy"
	"daybt/internal/util"
)

// Options controls concurrency and the backtest-level config for one Run.
type Options struct {
	Config     domain.BacktestConfig
	MaxWorkers int // 0 or 1 runs days sequentially
}

// Run executes the full pipeline over groups, which must already be sorted
// in the caller's desired output order — that order is preserved in every
// accumulator in the returned ResultDocument regardless of how many
// workers process days concurrently. Returns a *ValidationError wrapping
// domain.ErrEmptyInput if groups is empty.
func Run(ctx context.Context, groups []domain.DayGroup, def domain.StrategyDefinition, opts Options) (domain.ResultDocument, error) {
	if len(groups) == 0 {
		return domain.ResultDocument{}, &ValidationError{Err: domain.ErrEmptyInput}
	}

	outcomes := make([]*dayOutcome, len(groups))
	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = 1
	}
	pool := util.NewWorkerPool(workers)

	err := pool.Run(ctx, len(groups), func(_ context.Context, i int) error {
		outcomes[i] = processDay(groups[i], def, opts.Config)
		return nil
	})
	if err != nil {
		return domain.ResultDocument{}, err
	}

	doc := domain.ResultDocument{}
	var dayStatsList []domain.DayStats

	for _, out := range outcomes {
		if out == nil || out.skipped {
			continue
		}
		doc.Candles = append(doc.Candles, out.candles)
		doc.Trades = append(doc.Trades, out.trades...)
		doc.EquityCurves = append(doc.EquityCurves, out.equityCurve)
		dayStatsList = append(dayStatsList, out.dayStats)
	}

	doc.DayResults = dayStatsList
	doc.AggregateMetrics = stats.Aggregate(dayStatsList, doc.Trades)
	doc.GlobalEquity, doc.GlobalDrawdown = stats.ChainGlobalEquity(doc.EquityCurves, opts.Config.InitCash)

	return doc, nil
}

type dayOutcome struct {
	skipped     bool
	candles     domain.CandleSeries
	trades      []domain.Trade
	equityCurve domain.EquityCurve
	dayStats    domain.DayStats
}

// processDay runs one (ticker,date) group through C2→C3→C4. A day with
// fewer than 5 bars, a translator error, or no entry signal is a silent
// skip, not a fatal error (spec.md §7).
func processDay(group domain.DayGroup, def domain.StrategyDefinition, cfg domain.BacktestConfig) *dayOutcome {
	bars := group.Bars
	if len(bars) < 5 {
		return &dayOutcome{skipped: true}
	}

	sig, err := strategy.Translate(def, bars, group.Stats)
	if err != nil {
		return &dayOutcome{skipped: true}
	}

	if !anyTrue(sig.Entries) {
		return &dayOutcome{skipped: true}
	}

	simResult := simulator.Simulate(bars, sig, cfg)

	enriched := enrichTrades(simResult.Trades, group, def)

	dayStats := stats.ExtractDay(group.Ticker, group.Date, simResult.Equity, enriched)

	return &dayOutcome{
		candles:     toCandleSeries(group),
		trades:      enriched,
		equityCurve: toEquityCurve(group, simResult.Equity),
		dayStats:    dayStats,
	}
}

func anyTrue(bs []bool) bool {
	for _, b := range bs {
		if b {
			return true
		}
	}
	return false
}

func toCandleSeries(group domain.DayGroup) domain.CandleSeries {
	candles := make([]domain.Candle, len(group.Bars))
	for i, b := range group.Bars {
		candles[i] = domain.Candle{
			Time:   b.Timestamp,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}
	return domain.CandleSeries{Ticker: group.Ticker, Date: group.Date, Candles: candles}
}

func toEquityCurve(group domain.DayGroup, equity []float64) domain.EquityCurve {
	points := make([]domain.EquityPoint, len(equity))
	for i, v := range equity {
		ts := int64(0)
		if i < len(group.Bars) {
			ts = group.Bars[i].Timestamp
		}
		points[i] = domain.EquityPoint{Time: ts, Value: v}
	}
	return domain.EquityCurve{Ticker: group.Ticker, Date: group.Date, Equity: points}
}

// enrichTrades fills in the ticker/date/time/weekday/r_multiple fields the
// simulator itself does not know about.
func enrichTrades(trades []domain.Trade, group domain.DayGroup, def domain.StrategyDefinition) []domain.Trade {
	out := make([]domain.Trade, len(trades))
	for i, tr := range trades {
		tr.Ticker = group.Ticker
		tr.Date = group.Date

		if tr.EntryIdx < len(group.Bars) {
			tr.EntryTime = group.Bars[tr.EntryIdx].Timestamp
		}
		if tr.ExitIdx < len(group.Bars) {
			tr.ExitTime = group.Bars[tr.ExitIdx].Timestamp
		}

		entryDT := time.Unix(tr.EntryTime, 0).UTC()
		tr.EntryHour = entryDT.Hour()
		tr.EntryWeekday = int(entryDT.Weekday())

		tr.RMultiple = computeRMultiple(tr, def)

		out[i] = tr
	}
	return out
}

// computeRMultiple divides per-share PnL by the hard-stop risk-per-share,
// mirroring the original engine's r-multiple definition. Returns nil when
// no positive percentage hard stop is configured.
func computeRMultiple(tr domain.Trade, def domain.StrategyDefinition) *float64 {
	rm := def.RiskManagement
	if !rm.UseHardStop || rm.HardStop.Type != domain.HardStopPercentage || rm.HardStop.Value <= 0 {
		return nil
	}

	rRisk := tr.EntryPrice * (rm.HardStop.Value / 100)
	if rRisk <= 0 {
		return nil
	}

	var pnlPerShare float64
	if tr.Direction == domain.TradeLong {
		pnlPerShare = tr.ExitPrice - tr.EntryPrice
	} else {
		pnlPerShare = tr.EntryPrice - tr.ExitPrice
	}

	v := roundTo(pnlPerShare/rRisk, 2)
	return &v
}

func roundTo(v float64, decimals int) float64 {
	scale := 1.0
	for i := 0; i < decimals; i++ {
		scale *= 10
	}
	return float64(int64(v*scale+signOf(v)*0.5)) / scale
}

func signOf(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// SortGroups is a convenience for callers that have not already sorted
// their input into deterministic (ticker, date) order.
func SortGroups(groups []domain.DayGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Ticker != groups[j].Ticker {
			return groups[i].Ticker < groups[j].Ticker
		}
		return groups[i].Date < groups[j].Date
	})
}
