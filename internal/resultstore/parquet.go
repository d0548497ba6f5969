// Package resultstore persists a backtest run's ResultDocument: a Parquet
// archive for the bulk time-series data (candles, trades, equity), and a
// SQLite registry for run metadata and lookup.
package resultstore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"

	"daybt/internal/domain"
)

// ParquetArchive writes one run's candles/trades/equity to Parquet files
// under a root directory, bucketed by calendar year so that a multi-year
// dataset doesn't force one unbounded file per run.
type ParquetArchive struct {
	RootDir string
}

// NewParquetArchive creates a ParquetArchive rooted at dir.
func NewParquetArchive(dir string) *ParquetArchive {
	return &ParquetArchive{RootDir: dir}
}

// CandleRecord is the Parquet schema for one archived bar.
type CandleRecord struct {
	Ticker string  `parquet:"ticker"`
	Date   string  `parquet:"date"`
	Time   int64   `parquet:"time,timestamp"`
	Open   float64 `parquet:"open"`
	High   float64 `parquet:"high"`
	Low    float64 `parquet:"low"`
	Close  float64 `parquet:"close"`
	Volume int64   `parquet:"volume"`
}

// TradeRecord is the Parquet schema for one archived closed trade.
type TradeRecord struct {
	Ticker       string  `parquet:"ticker"`
	Date         string  `parquet:"date"`
	EntryTime    int64   `parquet:"entry_time,timestamp"`
	ExitTime     int64   `parquet:"exit_time,timestamp"`
	EntryIdx     int32   `parquet:"entry_idx"`
	ExitIdx      int32   `parquet:"exit_idx"`
	EntryPrice   float64 `parquet:"entry_price"`
	ExitPrice    float64 `parquet:"exit_price"`
	PnL          float64 `parquet:"pnl"`
	ReturnPct    float64 `parquet:"return_pct"`
	Direction    string  `parquet:"direction"`
	Size         float64 `parquet:"size"`
	ExitReason   string  `parquet:"exit_reason"`
	EntryHour    int32   `parquet:"entry_hour"`
	EntryWeekday int32   `parquet:"entry_weekday"`
}

// EquityRecord is the Parquet schema for one archived equity-curve point.
type EquityRecord struct {
	Ticker string  `parquet:"ticker"`
	Date   string  `parquet:"date"`
	Time   int64   `parquet:"time,timestamp"`
	Value  float64 `parquet:"value"`
}

// WriteResult archives a full run's candles, trades, and equity curves
// under <RootDir>/<runID>/, one Parquet file per calendar year.
func (a *ParquetArchive) WriteResult(runID string, doc domain.ResultDocument) error {
	candlesByYear := make(map[int][]CandleRecord)
	for _, series := range doc.Candles {
		for _, c := range series.Candles {
			year := yearOf(c.Time)
			candlesByYear[year] = append(candlesByYear[year], CandleRecord{
				Ticker: series.Ticker, Date: series.Date, Time: c.Time,
				Open: c.Open, High: c.High, Low: c.Low, Close: c.Close, Volume: c.Volume,
			})
		}
	}

	tradesByYear := make(map[int][]TradeRecord)
	for _, t := range doc.Trades {
		year := yearOf(t.EntryTime)
		tradesByYear[year] = append(tradesByYear[year], TradeRecord{
			Ticker: t.Ticker, Date: t.Date,
			EntryTime: t.EntryTime, ExitTime: t.ExitTime,
			EntryIdx: int32(t.EntryIdx), ExitIdx: int32(t.ExitIdx),
			EntryPrice: t.EntryPrice, ExitPrice: t.ExitPrice,
			PnL: t.PnL, ReturnPct: t.ReturnPct,
			Direction: string(t.Direction), Size: t.Size,
			ExitReason: string(t.ExitReason),
			EntryHour:  int32(t.EntryHour), EntryWeekday: int32(t.EntryWeekday),
		})
	}

	equityByYear := make(map[int][]EquityRecord)
	for _, curve := range doc.EquityCurves {
		for _, p := range curve.Equity {
			year := yearOf(p.Time)
			equityByYear[year] = append(equityByYear[year], EquityRecord{
				Ticker: curve.Ticker, Date: curve.Date, Time: p.Time, Value: p.Value,
			})
		}
	}

	for year, records := range candlesByYear {
		if err := writeParquetFile(a.yearPath(runID, "candles", year), records); err != nil {
			return fmt.Errorf("writing candles for %d: %w", year, err)
		}
	}
	for year, records := range tradesByYear {
		if err := writeParquetFile(a.yearPath(runID, "trades", year), records); err != nil {
			return fmt.Errorf("writing trades for %d: %w", year, err)
		}
	}
	for year, records := range equityByYear {
		if err := writeParquetFile(a.yearPath(runID, "equity", year), records); err != nil {
			return fmt.Errorf("writing equity for %d: %w", year, err)
		}
	}
	return nil
}

// ReadTrades reads every archived TradeRecord for a run across all years.
func (a *ParquetArchive) ReadTrades(runID string) ([]TradeRecord, error) {
	return readAllYears[TradeRecord](a, runID, "trades-")
}

// ReadCandles reads every archived CandleRecord for a run across all years.
func (a *ParquetArchive) ReadCandles(runID string) ([]CandleRecord, error) {
	return readAllYears[CandleRecord](a, runID, "candles-")
}

// ReadEquity reads every archived EquityRecord for a run across all years.
func (a *ParquetArchive) ReadEquity(runID string) ([]EquityRecord, error) {
	return readAllYears[EquityRecord](a, runID, "equity-")
}

func readAllYears[T any](a *ParquetArchive, runID, prefix string) ([]T, error) {
	dir := filepath.Join(a.RootDir, runID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []T
	for _, e := range entries {
		if e.IsDir() || !hasPrefix(e.Name(), prefix) {
			continue
		}
		records, err := readParquetFile[T](filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		out = append(out, records...)
	}
	return out, nil
}

func (a *ParquetArchive) yearPath(runID, kind string, year int) string {
	return filepath.Join(a.RootDir, runID, fmt.Sprintf("%s-%d.parquet", kind, year))
}

func yearOf(epochSeconds int64) int {
	return time.Unix(epochSeconds, 0).UTC().Year()
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func writeParquetFile[T any](path string, records []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return parquet.WriteFile(path, records)
}

func readParquetFile[T any](path string) ([]T, error) {
	return parquet.ReadFile[T](path)
}
