package domain

// ExitReason classifies why a trade was closed. The simulator assigns it
// directly per the exit-priority list (SL > TP > Signal > EOD); trailing
// stops report "Trailing" instead of "SL".
type ExitReason string

const (
	ExitSignal   ExitReason = "Signal"
	ExitSL       ExitReason = "SL"
	ExitTP       ExitReason = "TP"
	ExitTrailing ExitReason = "Trailing"
	ExitEOD      ExitReason = "EOD"
)

// TradeDirection mirrors Direction but as the per-trade label used in
// output documents ("Long"/"Short" rather than "longonly"/"shortonly").
type TradeDirection string

const (
	TradeLong  TradeDirection = "Long"
	TradeShort TradeDirection = "Short"
)

// Trade is one closed position produced by the portfolio simulator for a
// single day. EntryIdx/ExitIdx index into that day's bar slice.
type Trade struct {
	EntryIdx   int            `json:"entry_idx"`
	ExitIdx    int            `json:"exit_idx"`
	EntryPrice float64        `json:"entry_price"`
	ExitPrice  float64        `json:"exit_price"`
	PnL        float64        `json:"pnl"`
	ReturnPct  float64        `json:"return_pct"`
	Direction  TradeDirection `json:"direction"`
	Status     string         `json:"status"` // always "Closed" — the simulator never reports open positions
	Size       float64        `json:"size"`
	ExitReason ExitReason     `json:"exit_reason"`

	// Enrichment fields, filled in by the driver after the simulator runs.
	Ticker       string   `json:"ticker"`
	Date         string   `json:"date"`
	EntryTime    int64    `json:"entry_time"` // Unix epoch seconds
	ExitTime     int64    `json:"exit_time"`
	EntryHour    int      `json:"entry_hour"`
	EntryWeekday int      `json:"entry_weekday"` // time.Weekday: Sunday = 0
	RMultiple    *float64 `json:"r_multiple,omitempty"`
}

// SimResult is the Portfolio Simulator's raw output for one day, before
// trade enrichment.
type SimResult struct {
	Equity []float64
	Trades []Trade
}
