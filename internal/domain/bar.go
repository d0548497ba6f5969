// Package domain defines the core data types shared by the indicator
// engine, strategy translator, portfolio simulator, and the statistics and
// reporting layers built on top of them.
package domain

// Bar is a single OHLCV observation for one minute (or, after resampling, a
// coarser bucket) of a trading session.
type Bar struct {
	Timestamp int64   `json:"timestamp"` // Unix epoch seconds
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
}

// DailyStats holds the scalar session statistics for one (ticker, date)
// pair, supplied by the collaborator's columnar query layer. A value counts
// as present only when its HasX flag is set; with the flag false the value
// is absent and the indicator series built from it is NaN, whatever number
// the field holds.
type DailyStats struct {
	PMHigh        float64
	PMLow         float64
	YesterdayHigh float64
	YesterdayLow  float64
	PreviousClose float64

	HasPMHigh        bool
	HasPMLow         bool
	HasYesterdayHigh bool
	HasYesterdayLow  bool
	HasPreviousClose bool
}

// DayGroup is one (ticker, date) pair's ordered bar sequence plus its
// session statistics, as materialized by the collaborator before the
// driver begins processing.
type DayGroup struct {
	Ticker string
	Date   string // YYYY-MM-DD
	Bars   []Bar
	Stats  DailyStats
}
