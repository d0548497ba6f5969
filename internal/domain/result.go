package domain

// BacktestConfig holds the run-level parameters passed in from the caller
// (spec.md §6). Fees and slippage are fractions of price per fill.
type BacktestConfig struct {
	InitCash float64
	Fees     float64
	Slippage float64
}

// DefaultBacktestConfig returns the documented defaults.
func DefaultBacktestConfig() BacktestConfig {
	return BacktestConfig{InitCash: 10000, Fees: 0, Slippage: 0}
}

// DayStats is one (ticker, date) pair's per-day statistics record (§4.4).
// Pointer fields are nil where the underlying value was NaN/Inf (the
// "safe-float filter" in §4.4/§7).
type DayStats struct {
	Ticker         string   `json:"ticker"`
	Date           string   `json:"date"`
	TotalReturnPct *float64 `json:"total_return_pct"`
	MaxDrawdownPct *float64 `json:"max_drawdown_pct"`
	WinRatePct     *float64 `json:"win_rate_pct"`
	TotalTrades    int      `json:"total_trades"`
	ProfitFactor   *float64 `json:"profit_factor"`
	SharpeRatio    *float64 `json:"sharpe_ratio"`
	SortinoRatio   *float64 `json:"sortino_ratio"`
	Expectancy     *float64 `json:"expectancy"`
	BestTradePct   *float64 `json:"best_trade_pct"`
	WorstTradePct  *float64 `json:"worst_trade_pct"`
	InitValue      float64  `json:"init_value"`
	EndValue       float64  `json:"end_value"`
}

// AggregateMetrics is the cross-day summary (§4.5).
type AggregateMetrics struct {
	TotalDays          int     `json:"total_days"`
	TotalTrades        int     `json:"total_trades"`
	WinRatePct         float64 `json:"win_rate_pct"`
	AvgReturnPerDayPct float64 `json:"avg_return_per_day_pct"`
	TotalReturnPct     float64 `json:"total_return_pct"`
	AvgSharpe          float64 `json:"avg_sharpe"`
	AvgMaxDDPct        float64 `json:"avg_max_dd_pct"`
	AvgProfitFactor    float64 `json:"avg_profit_factor"`
	AvgPnL             float64 `json:"avg_pnl"`
	TotalPnL           float64 `json:"total_pnl"`
}

// Candle is one bar as rendered in the result document (real epoch time).
type Candle struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// CandleSeries is one day's candles, keyed by (ticker, date).
type CandleSeries struct {
	Ticker  string   `json:"ticker"`
	Date    string   `json:"date"`
	Candles []Candle `json:"candles"`
}

// EquityPoint is one sample of an equity or drawdown curve.
type EquityPoint struct {
	Time  int64   `json:"time"`
	Value float64 `json:"value"`
}

// EquityCurve is one day's equity series, keyed by (ticker, date).
type EquityCurve struct {
	Ticker string        `json:"ticker"`
	Date   string        `json:"date"`
	Equity []EquityPoint `json:"equity"`
}

// ResultDocument is the externally serialized output of a full backtest
// run (spec.md §6).
type ResultDocument struct {
	AggregateMetrics AggregateMetrics `json:"aggregate_metrics"`
	DayResults       []DayStats       `json:"day_results"`
	Candles          []CandleSeries   `json:"candles"`
	Trades           []Trade          `json:"trades"`
	EquityCurves     []EquityCurve    `json:"equity_curves"`
	GlobalEquity     []EquityPoint    `json:"global_equity"`
	GlobalDrawdown   []EquityPoint    `json:"global_drawdown"`
}
