package stats

import "daybt/internal/domain"

// globalAxisBase/globalAxisStep define the synthetic time axis stamped onto
// the chained global equity/drawdown curves. Per-day curves carry real bar
// timestamps, but chaining multiple days (and tickers) end to end onto a
// real clock would leave overnight gaps and, once more than one ticker
// shares a date, non-monotonic or duplicate times. A synthetic, evenly
// spaced axis sidesteps both.
const (
	globalAxisBase int64 = 1_000_000_000
	globalAxisStep int64 = 60
)

// ChainGlobalEquity chains per-day equity curves (in input order) into one
// continuous global equity series plus its drawdown series (spec.md §4.6).
//
// Each day's points are shifted by an offset that makes its first point
// line up with carry, a running value initialized to initCash before the
// first day. The first day's curve therefore always starts at initCash,
// and is left unshifted whenever its own first value already equals
// initCash; the same rule guarantees exact
// continuity between every pair of adjacent days thereafter (resolves the
// spec's global-equity-chaining open question; see DESIGN.md).
func ChainGlobalEquity(dayEquities []domain.EquityCurve, initCash float64) ([]domain.EquityPoint, []domain.EquityPoint) {
	if len(dayEquities) == 0 {
		return nil, nil
	}

	var global []float64
	carry := initCash

	for _, day := range dayEquities {
		if len(day.Equity) == 0 {
			continue
		}
		dayStart := day.Equity[0].Value
		offset := carry - dayStart
		for _, pt := range day.Equity {
			global = append(global, pt.Value+offset)
		}
		carry = global[len(global)-1]
	}

	if len(global) == 0 {
		return nil, nil
	}

	runningMax := global[0]
	equity := make([]domain.EquityPoint, len(global))
	drawdown := make([]domain.EquityPoint, len(global))
	for i, v := range global {
		if v > runningMax {
			runningMax = v
		}
		dd := 0.0
		if runningMax > 0 {
			dd = (v/runningMax - 1) * 100
		}
		t := globalAxisBase + int64(i)*globalAxisStep
		equity[i] = domain.EquityPoint{Time: t, Value: round2(v)}
		drawdown[i] = domain.EquityPoint{Time: t, Value: round4(dd)}
	}

	return equity, drawdown
}
