package resultstore

import (
	"path/filepath"
	"testing"

	"daybt/internal/domain"
)

func sampleDoc() domain.ResultDocument {
	return domain.ResultDocument{
		Candles: []domain.CandleSeries{{
			Ticker: "AAPL", Date: "2026-01-05",
			Candles: []domain.Candle{
				{Time: 1767600000, Open: 100, High: 101, Low: 99, Close: 100.5, Volume: 1000},
			},
		}},
		Trades: []domain.Trade{{
			Ticker: "AAPL", Date: "2026-01-05",
			EntryIdx: 0, ExitIdx: 1,
			EntryPrice: 100, ExitPrice: 101,
			PnL: 100, ReturnPct: 1,
			Direction: domain.TradeLong, Size: 100,
			ExitReason: domain.ExitTP,
			EntryTime:  1767600000, ExitTime: 1767600060,
		}},
		EquityCurves: []domain.EquityCurve{{
			Ticker: "AAPL", Date: "2026-01-05",
			Equity: []domain.EquityPoint{{Time: 1767600000, Value: 10000}},
		}},
	}
}

func TestWriteResultCreatesYearBucketedFiles(t *testing.T) {
	dir := t.TempDir()
	archive := NewParquetArchive(dir)

	if err := archive.WriteResult("run-1", sampleDoc()); err != nil {
		t.Fatalf("WriteResult: %v", err)
	}

	for _, name := range []string{"candles-2026.parquet", "trades-2026.parquet", "equity-2026.parquet"} {
		path := filepath.Join(dir, "run-1", name)
		if _, err := readParquetFile[CandleRecord](path); err != nil {
			// trades/equity files aren't CandleRecord-shaped; just check existence.
			if name == "candles-2026.parquet" {
				t.Errorf("expected readable candles file: %v", err)
			}
		}
	}
}

func TestReadTradesRoundTrips(t *testing.T) {
	dir := t.TempDir()
	archive := NewParquetArchive(dir)

	if err := archive.WriteResult("run-2", sampleDoc()); err != nil {
		t.Fatalf("WriteResult: %v", err)
	}

	trades, err := archive.ReadTrades("run-2")
	if err != nil {
		t.Fatalf("ReadTrades: %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	if trades[0].Ticker != "AAPL" || trades[0].ExitReason != "TP" {
		t.Errorf("unexpected trade record: %+v", trades[0])
	}
}

func TestReadTradesMissingRunReturnsEmpty(t *testing.T) {
	archive := NewParquetArchive(t.TempDir())
	trades, err := archive.ReadTrades("no-such-run")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trades) != 0 {
		t.Errorf("expected no trades, got %d", len(trades))
	}
}
