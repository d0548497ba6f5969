package strategyio

import (
	"encoding/json"
	"fmt"

	"daybt/internal/domain"
)

// wireBarGroup is the on-disk JSON shape of one (ticker, date) group of
// bars — the first of the two tabular collaborator inputs (spec.md §1):
// "intraday bars with columns {ticker, date, timestamp, open, high, low,
// close, volume}".
type wireBarGroup struct {
	Ticker string      `json:"ticker"`
	Date   string      `json:"date"`
	Bars   []domain.Bar `json:"bars"`
}

// wireDailyStats is the on-disk JSON shape of one (ticker, date)'s session
// levels — the second collaborator input, "daily statistics keyed by
// (ticker, date)". A field is "present" (Has* true in the decoded
// domain.DailyStats) only when its key appears in the JSON object at all,
// matching spec.md §3's "missing fields produce NaN" rule rather than
// treating a present zero as absent.
type wireDailyStats struct {
	Ticker        string   `json:"ticker"`
	Date          string   `json:"date"`
	PMHigh        *float64 `json:"pm_high"`
	PMLow         *float64 `json:"pm_low"`
	YesterdayHigh *float64 `json:"yesterday_high"`
	YesterdayLow  *float64 `json:"yesterday_low"`
	PreviousClose *float64 `json:"previous_close"`
}

// DecodeBarGroups parses the bars collaborator input: a JSON array of
// (ticker, date) bar groups, with no session-stats attached yet.
func DecodeBarGroups(data []byte) ([]domain.DayGroup, error) {
	var wireGroups []wireBarGroup
	if err := json.Unmarshal(data, &wireGroups); err != nil {
		return nil, fmt.Errorf("decoding bar groups: %w", err)
	}

	groups := make([]domain.DayGroup, len(wireGroups))
	for i, wg := range wireGroups {
		groups[i] = domain.DayGroup{Ticker: wg.Ticker, Date: wg.Date, Bars: wg.Bars}
	}
	return groups, nil
}

// DecodeDailyStats parses the daily-stats collaborator input: a JSON array
// keyed by (ticker, date), and returns it as a map ready to be merged onto
// bar groups by MergeDailyStats.
func DecodeDailyStats(data []byte) (map[dayKey]domain.DailyStats, error) {
	var wireStats []wireDailyStats
	if err := json.Unmarshal(data, &wireStats); err != nil {
		return nil, fmt.Errorf("decoding daily stats: %w", err)
	}

	out := make(map[dayKey]domain.DailyStats, len(wireStats))
	for _, ws := range wireStats {
		out[dayKey{ws.Ticker, ws.Date}] = decodeDailyStats(ws)
	}
	return out, nil
}

type dayKey struct {
	ticker string
	date   string
}

// MergeDailyStats attaches each group's matching DailyStats in place. A
// group with no matching (ticker, date) entry keeps a zero-valued
// DailyStats (every HasX flag false).
func MergeDailyStats(groups []domain.DayGroup, stats map[dayKey]domain.DailyStats) {
	for i := range groups {
		if s, ok := stats[dayKey{groups[i].Ticker, groups[i].Date}]; ok {
			groups[i].Stats = s
		}
	}
}

func decodeDailyStats(w wireDailyStats) domain.DailyStats {
	var stats domain.DailyStats
	if w.PMHigh != nil {
		stats.PMHigh = *w.PMHigh
		stats.HasPMHigh = true
	}
	if w.PMLow != nil {
		stats.PMLow = *w.PMLow
		stats.HasPMLow = true
	}
	if w.YesterdayHigh != nil {
		stats.YesterdayHigh = *w.YesterdayHigh
		stats.HasYesterdayHigh = true
	}
	if w.YesterdayLow != nil {
		stats.YesterdayLow = *w.YesterdayLow
		stats.HasYesterdayLow = true
	}
	if w.PreviousClose != nil {
		stats.PreviousClose = *w.PreviousClose
		stats.HasPreviousClose = true
	}
	return stats
}
