package resultstore

import (
	"fmt"
	"sort"

	"daybt/internal/domain"
)

// LoadResult reconstructs a best-effort ResultDocument for a previously
// archived run, for tools (daybt-tui) that look a run up by ID instead of
// reading a result-document JSON file directly. AggregateMetrics comes from
// the registry's summary columns; candles/trades/equity come from the
// Parquet archive. DayResults, GlobalEquity, and GlobalDrawdown are not
// persisted by WriteResult and come back empty — only daybt-run's direct
// JSON output carries the full per-day breakdown.
func LoadResult(registry *RunRegistry, archive *ParquetArchive, runID string) (domain.ResultDocument, error) {
	rec, err := registry.Get(runID)
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("looking up run %s: %w", runID, err)
	}

	candleRecords, err := archive.ReadCandles(runID)
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("reading archived candles: %w", err)
	}
	tradeRecords, err := archive.ReadTrades(runID)
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("reading archived trades: %w", err)
	}
	equityRecords, err := archive.ReadEquity(runID)
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("reading archived equity: %w", err)
	}

	doc := domain.ResultDocument{
		AggregateMetrics: domain.AggregateMetrics{
			TotalDays:      rec.TotalDays,
			TotalTrades:    rec.TotalTrades,
			TotalReturnPct: rec.TotalReturnPct,
		},
		Candles:      groupCandles(candleRecords),
		Trades:       tradesFromRecords(tradeRecords),
		EquityCurves: groupEquity(equityRecords),
	}
	return doc, nil
}

// seriesKey groups archived records back into per-(ticker,date) series.
type seriesKey struct{ ticker, date string }

func sortedKeys(order []seriesKey) []seriesKey {
	sort.Slice(order, func(i, j int) bool {
		if order[i].ticker != order[j].ticker {
			return order[i].ticker < order[j].ticker
		}
		return order[i].date < order[j].date
	})
	return order
}

func groupCandles(records []CandleRecord) []domain.CandleSeries {
	byKey := make(map[seriesKey]*domain.CandleSeries)
	var order []seriesKey
	for _, r := range records {
		k := seriesKey{r.Ticker, r.Date}
		series, ok := byKey[k]
		if !ok {
			series = &domain.CandleSeries{Ticker: r.Ticker, Date: r.Date}
			byKey[k] = series
			order = append(order, k)
		}
		series.Candles = append(series.Candles, domain.Candle{
			Time: r.Time, Open: r.Open, High: r.High, Low: r.Low, Close: r.Close, Volume: r.Volume,
		})
	}
	out := make([]domain.CandleSeries, 0, len(order))
	for _, k := range sortedKeys(order) {
		series := byKey[k]
		sort.Slice(series.Candles, func(i, j int) bool { return series.Candles[i].Time < series.Candles[j].Time })
		out = append(out, *series)
	}
	return out
}

func groupEquity(records []EquityRecord) []domain.EquityCurve {
	byKey := make(map[seriesKey]*domain.EquityCurve)
	var order []seriesKey
	for _, r := range records {
		k := seriesKey{r.Ticker, r.Date}
		curve, ok := byKey[k]
		if !ok {
			curve = &domain.EquityCurve{Ticker: r.Ticker, Date: r.Date}
			byKey[k] = curve
			order = append(order, k)
		}
		curve.Equity = append(curve.Equity, domain.EquityPoint{Time: r.Time, Value: r.Value})
	}
	out := make([]domain.EquityCurve, 0, len(order))
	for _, k := range sortedKeys(order) {
		curve := byKey[k]
		sort.Slice(curve.Equity, func(i, j int) bool { return curve.Equity[i].Time < curve.Equity[j].Time })
		out = append(out, *curve)
	}
	return out
}

func tradesFromRecords(records []TradeRecord) []domain.Trade {
	out := make([]domain.Trade, 0, len(records))
	for _, r := range records {
		out = append(out, domain.Trade{
			EntryIdx:     int(r.EntryIdx),
			ExitIdx:      int(r.ExitIdx),
			EntryPrice:   r.EntryPrice,
			ExitPrice:    r.ExitPrice,
			PnL:          r.PnL,
			ReturnPct:    r.ReturnPct,
			Direction:    domain.TradeDirection(r.Direction),
			Status:       "Closed",
			Size:         r.Size,
			ExitReason:   domain.ExitReason(r.ExitReason),
			Ticker:       r.Ticker,
			Date:         r.Date,
			EntryTime:    r.EntryTime,
			ExitTime:     r.ExitTime,
			EntryHour:    int(r.EntryHour),
			EntryWeekday: int(r.EntryWeekday),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryTime < out[j].EntryTime })
	return out
}
